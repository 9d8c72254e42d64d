package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/mbsim/internal/config"
	"github.com/san-kum/mbsim/internal/export"
	"github.com/san-kum/mbsim/internal/modeling"
	"github.com/san-kum/mbsim/internal/storage"
	"github.com/san-kum/mbsim/internal/tui"
	"github.com/san-kum/mbsim/internal/viz"
)

var (
	// Persistent flags
	dataDir      string
	backend      string
	theme        string
	settingsFile string
	verbose      bool

	preset  string
	format  string
	outFile string
	plain   bool

	// resolved in PersistentPreRunE
	cfg    *settings
	logger *slog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "mbsim",
		Short:         "multibody model builder",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			cfg = s
			logger = newLogger(s.LogLevel)
			viz.SetTheme(s.Theme)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", defaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", defaultBackend, "storage backend (file, sqlite)")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", defaultTheme, "color theme")
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "settings file (default ./mbsim.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	buildCmd := &cobra.Command{
		Use:   "build [file]",
		Short: "build a model and print its tree",
		Args:  cobra.MaximumNArgs(1),
		RunE:  buildModel,
	}
	buildCmd.Flags().StringVar(&preset, "preset", "", "use a preset model")
	buildCmd.Flags().BoolVar(&plain, "plain", false, "print the unstyled outline")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset models",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	saveCmd := &cobra.Command{
		Use:   "save [file]",
		Short: "build a model and store it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  saveModel,
	}
	saveCmd.Flags().StringVar(&preset, "preset", "", "use a preset model")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored models",
		RunE:  listModels,
	}

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "show a stored model",
		Args:  cobra.ExactArgs(1),
		RunE:  showModel,
	}

	exportCmd := &cobra.Command{
		Use:   "export [id]",
		Short: "export a stored model",
		Args:  cobra.ExactArgs(1),
		RunE:  exportModel,
	}
	exportCmd.Flags().StringVarP(&format, "format", "f", "json", fmt.Sprintf("output format %v", export.Formats()))
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "write to file instead of stdout")

	plotCmd := &cobra.Command{
		Use:   "plot [id]",
		Short: "plot mass and centroid along the tree",
		Args:  cobra.ExactArgs(1),
		RunE:  plotModel,
	}

	browseCmd := &cobra.Command{
		Use:   "browse [file]",
		Short: "browse a model interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  browseModel,
	}
	browseCmd.Flags().StringVar(&preset, "preset", "", "use a preset model")

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list color themes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range viz.ThemeNames() {
				t := viz.GetTheme(name)
				fmt.Println(viz.GradientText(name, t.Title, t.Accent))
			}
		},
	}

	rootCmd.AddCommand(buildCmd, presetsCmd, saveCmd, listCmd, showCmd, exportCmd, plotCmd, browseCmd, themesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig reads a model description from file, or from --preset, falling
// back to the default pendulum.
func loadConfig(args []string) (*config.Config, error) {
	switch {
	case len(args) > 0 && preset != "":
		return nil, fmt.Errorf("give either a file or --preset, not both")
	case len(args) > 0:
		c, err := config.Load(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", args[0], err)
		}
		return c, nil
	case preset != "":
		c := config.GetPreset(preset)
		if c == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		return c, nil
	}
	return config.DefaultConfig(), nil
}

func openStore() (storage.Backend, error) {
	st, err := storage.Open(cfg.Backend, cfg.DataDir, logger)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Backend, err)
	}
	return st, nil
}

func buildModel(cmd *cobra.Command, args []string) error {
	c, err := loadConfig(args)
	if err != nil {
		return err
	}
	sys, err := config.BuildSystem(c)
	if err != nil {
		return err
	}
	logger.Debug("built model", "name", c.Name, "bodies", len(c.Bodies), "joints", len(c.Joints))

	if plain {
		_, err := sys.WriteTo(os.Stdout)
		return err
	}
	fmt.Println(viz.RenderTree(sys))

	mb := sys.Multibodies()[0]
	summary, err := storage.Summarize(mb)
	if err != nil {
		fmt.Println(viz.BoxWithTitle("topology", err.Error(), 60))
		return nil
	}
	fmt.Println(viz.SummaryTable(c.Name, summary))
	return nil
}

func saveModel(cmd *cobra.Command, args []string) error {
	c, err := loadConfig(args)
	if err != nil {
		return err
	}
	mb, err := config.Build(c)
	if err != nil {
		return err
	}
	summary, err := storage.Summarize(mb)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := st.Save(c, summary)
	if err != nil {
		return err
	}

	fmt.Printf("model id: %s\n", id)
	fmt.Printf("bodies: %d  joints: %d  mobilities: %d  mass: %.4g\n",
		summary.Bodies, summary.Joints, summary.Mobilities, summary.TotalMass)
	return nil
}

func listModels(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	models, err := st.List()
	if err != nil {
		return err
	}
	if len(models) == 0 {
		fmt.Println("no models found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tBODIES\tJOINTS\tDOF\tMASS")
	for _, m := range models {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%.4g\n",
			m.ID,
			m.Name,
			m.Timestamp.Format("2006-01-02 15:04:05"),
			m.Summary.Bodies,
			m.Summary.Joints,
			m.Summary.Mobilities,
			m.Summary.TotalMass,
		)
	}
	return w.Flush()
}

// loadStored fetches a stored model's metadata and rebuilds its system.
func loadStored(id string) (*storage.Metadata, modeling.MultibodySystem, error) {
	st, err := openStore()
	if err != nil {
		return nil, modeling.MultibodySystem{}, err
	}
	defer st.Close()

	meta, err := st.Load(id)
	if err != nil {
		return nil, modeling.MultibodySystem{}, err
	}
	c, err := st.LoadModel(id)
	if err != nil {
		return nil, modeling.MultibodySystem{}, err
	}
	sys, err := config.BuildSystem(c)
	if err != nil {
		return nil, modeling.MultibodySystem{}, fmt.Errorf("rebuild %s: %w", id, err)
	}
	return meta, sys, nil
}

func showModel(cmd *cobra.Command, args []string) error {
	meta, sys, err := loadStored(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("model: %s\n", meta.Name)
	fmt.Printf("id: %s\n", meta.ID)
	fmt.Printf("saved: %s\n\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Println(viz.RenderTree(sys))
	fmt.Println(viz.SummaryTable(meta.Name, meta.Summary))
	return nil
}

func exportModel(cmd *cobra.Command, args []string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	_, sys, err := loadStored(args[0])
	if err != nil {
		return err
	}

	if outFile != "" {
		if err := export.WriteFile(outFile, f, sys); err != nil {
			return err
		}
		logger.Info("exported model", "id", args[0], "format", f, "path", outFile)
		return nil
	}
	return export.Write(os.Stdout, f, sys)
}

func plotModel(cmd *cobra.Command, args []string) error {
	meta, _, err := loadStored(args[0])
	if err != nil {
		return err
	}
	rows := meta.Summary.Rows
	if len(rows) == 0 {
		return fmt.Errorf("no bodies to plot")
	}

	fmt.Printf("model: %s\n", meta.Name)
	fmt.Printf("bodies: %d\n\n", len(rows))
	fmt.Println(viz.MassProfile(rows))
	fmt.Println()
	fmt.Println(viz.CentroidProfile(rows))
	return nil
}

func browseModel(cmd *cobra.Command, args []string) error {
	c, err := loadConfig(args)
	if err != nil {
		return err
	}
	sys, err := config.BuildSystem(c)
	if err != nil {
		return err
	}
	return tui.Browse(sys)
}
