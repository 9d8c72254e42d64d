// Package viz renders models and their summaries for the terminal.
//
//   - [RenderTree]: the feature tree with box-drawing guides
//   - [SummaryTable]: bodies in base-to-tip order with totals
//   - [MassProfile], [CentroidProfile]: asciigraph plots over the bodies
//
// Colors follow [CurrentTheme]; see [SetTheme] and [ThemeNames].
package viz
