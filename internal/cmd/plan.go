package cmd

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/cascade/internal/config"
	"github.com/Iron-Ham/cascade/internal/manifest"
	"github.com/Iron-Ham/cascade/internal/runner"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan [manifest]",
	Short: "Show the dispatch waves without running anything",
	Long: `Plan computes the wave schedule for a manifest: which tasks run
first, which run concurrently, and which must wait. Nothing is
executed.

Examples:
  # Plan cascade.yaml from the current directory
  cascade plan

  # Plan a specific manifest
  cascade plan build.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	path := "cascade.yaml"
	if len(args) == 1 {
		path = args[0]
	}

	m, err := manifest.Load(path)
	if err != nil {
		return err
	}

	waves, err := runner.New(cfg).Plan(m)
	if err != nil {
		return err
	}

	fmt.Println(renderPlan(path, waves, cfg.Output.Color, terminalWidth()))
	return nil
}

// renderPlan formats the wave schedule for the terminal, wrapping task
// lists to the available width.
func renderPlan(path string, waves [][]string, color bool, width int) string {
	var sb strings.Builder

	title := fmt.Sprintf("%s: %d waves", path, len(waves))
	if color {
		title = titleStyle.Render(title)
	}
	sb.WriteString(title)
	sb.WriteString("\n")

	for i, wave := range waves {
		label := fmt.Sprintf("wave %d", i)
		if color {
			label = waveStyle.Render(label)
		}
		sb.WriteString(fmt.Sprintf("  %s  %s\n", label, wrapNames(wave, width-12)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// wrapNames joins task names with commas, breaking onto continuation
// lines once a line would exceed the given width.
func wrapNames(names []string, width int) string {
	if width < 20 {
		width = 20
	}

	var lines []string
	line := ""
	for _, name := range names {
		if line == "" {
			line = name
			continue
		}
		if len(line)+len(name)+2 > width {
			lines = append(lines, line+",")
			line = name
			continue
		}
		line += ", " + name
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n          ")
}
