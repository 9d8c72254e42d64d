package viz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/san-kum/mbsim/internal/config"
	"github.com/san-kum/mbsim/internal/modeling"
	"github.com/san-kum/mbsim/internal/storage"
)

func buildSummary(t *testing.T, preset string) storage.Summary {
	t.Helper()
	mb, err := config.Build(config.GetPreset(preset))
	if err != nil {
		t.Fatalf("build %s: %v", preset, err)
	}
	s, err := storage.Summarize(mb)
	if err != nil {
		t.Fatalf("summarize %s: %v", preset, err)
	}
	return s
}

func TestRenderTree(t *testing.T) {
	mb, err := config.Build(config.GetPreset("pendulum"))
	if err != nil {
		t.Fatal(err)
	}

	out := RenderTree(mb)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) < 5 {
		t.Fatalf("expected several lines, got %d:\n%s", len(lines), out)
	}

	for _, want := range []string{"Multibody", "Ground", "link1", "bob", "hinge", "torsion"} {
		if !strings.Contains(out, want) {
			t.Errorf("tree missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(stripANSI(lines[len(lines)-1]), "└── ") {
		t.Errorf("last line should close the tree: %q", lines[len(lines)-1])
	}
}

func TestBuildTree(t *testing.T) {
	nodes := func(depths ...int) []modeling.NodeInfo {
		out := make([]modeling.NodeInfo, len(depths))
		for i, d := range depths {
			out[i] = modeling.NodeInfo{Kind: "Real", Name: fmt.Sprintf("n%d", i), Depth: d}
		}
		return out
	}

	tests := []struct {
		name   string
		depths []int
		// each line must start with its guide, followed by the node
		want []string
	}{
		{"flat", []int{0, 1, 1}, []string{"Real n0", "├── Real n1", "└── Real n2"}},
		{"open branch", []int{0, 1, 2, 1}, []string{"Real n0", "├── Real n1", "│", "└── Real n3"}},
		{"closed branch", []int{0, 1, 2, 2}, []string{"Real n0", "└── Real n1", " ", " "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := stripANSI(buildTree(nodes(tt.depths...)).String())
			lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
			if len(lines) != len(tt.depths) {
				t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(tt.depths), out)
			}
			for i, line := range lines {
				if !strings.HasPrefix(line, tt.want[i]) {
					t.Errorf("line %d = %q, want prefix %q", i, line, tt.want[i])
				}
				if !strings.Contains(line, fmt.Sprintf("n%d", i)) {
					t.Errorf("line %d = %q, missing n%d", i, line, i)
				}
			}
		})
	}

	out := stripANSI(buildTree(nodes(0, 1, 2, 2)).String())
	if !strings.Contains(out, "├── Real n2") || !strings.Contains(out, "└── Real n3") {
		t.Errorf("nested guides missing:\n%s", out)
	}
}

func TestSummaryTable(t *testing.T) {
	out := SummaryTable("double_pendulum", buildSummary(t, "double_pendulum"))

	for _, want := range []string{"link1", "link2", "shoulder (torsion)", "bodies", "dof"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestMassProfile(t *testing.T) {
	if MassProfile(nil) != "" {
		t.Error("expected empty plot for no rows")
	}

	s := buildSummary(t, "gimbal_arm")
	out := MassProfile(s.Rows)
	if !strings.Contains(out, "Ground → base → arm → cable") {
		t.Errorf("caption missing:\n%s", out)
	}

	single := MassProfile(s.Rows[:1])
	if single == "" {
		t.Error("single body should still plot")
	}
}

func TestCentroidProfile(t *testing.T) {
	if CentroidProfile(nil) != "" {
		t.Error("expected empty plot for no rows")
	}
	out := CentroidProfile(buildSummary(t, "cartpole").Rows)
	if !strings.Contains(out, "centroid") {
		t.Errorf("caption missing:\n%s", out)
	}
}

func TestThemes(t *testing.T) {
	defer SetTheme(ThemeCyberpunk.Name)

	if len(ThemeNames()) != len(Themes) {
		t.Errorf("expected %d names", len(Themes))
	}
	SetTheme("retro")
	if CurrentTheme.Name != "retro" {
		t.Errorf("expected retro, got %s", CurrentTheme.Name)
	}
	if GetTheme("nope").Name != "cyberpunk" {
		t.Error("unknown theme should fall back to cyberpunk")
	}
}

func TestSparklineChart(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		width  int
		runes  int
	}{
		{"empty", nil, 5, 5},
		{"flat", []float64{1, 1, 1}, 3, 3},
		{"ramp", []float64{0, 1, 2, 3, 4, 5, 6, 7}, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(SparklineChart(tt.values, tt.width))
			if n := len([]rune(got)); n != tt.runes {
				t.Errorf("got %d runes (%q), want %d", n, got, tt.runes)
			}
		})
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
