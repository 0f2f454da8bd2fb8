// ABOUTME: TUI subcommand
// ABOUTME: Launches the full-screen contact and note browser
package cli

import (
	"database/sql"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harperreed/dealflow/tui"
)

// TUICommand starts the interactive terminal interface.
func TUICommand(database *sql.DB) error {
	p := tea.NewProgram(tui.NewModel(database), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI failed: %w", err)
	}
	return nil
}
