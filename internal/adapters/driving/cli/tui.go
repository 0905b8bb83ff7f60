package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/chatdigest/internal/adapters/driving/tui"
	"github.com/custodia-labs/chatdigest/internal/app"
	"github.com/custodia-labs/chatdigest/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal interface for browsing group summaries.

Search re-scores the summary index as you type. Topics lists tracked topics
across groups, and Groups opens any group's summary.

Controls:
  ↑/k, ↓/j - Navigate
  Tab      - Switch between query and results
  Enter    - Select / open summary
  s        - Toggle topic order
  Esc      - Back
  q        - Quit (from the menu)`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// newTUI builds the terminal app from the assembled services.
func newTUI(a *app.App) (*tui.App, error) {
	ports := tui.NewPorts(a.Search, a.Topics, a.Groups)
	ports.Dates = a.Dates
	t, err := tui.NewApp(ports)
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}
	return t, nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	t, err := newTUI(a)
	if err != nil {
		return err
	}
	t.WithContext(cmd.Context())

	// Log lines would corrupt the alternate screen.
	logger.SetQuiet(true)
	defer logger.SetQuiet(false)

	if err := t.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
