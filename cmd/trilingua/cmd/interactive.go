package cmd

import (
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i", "ui"},
	Short:   "Launch interactive TUI",
	Long: `Launch the interactive terminal UI.

Features:
  - Type a word or sentence in any of the three languages and press Enter
  - Trilingual entry with furigana, examples, etymology and related words
  - Sentence mode with unit-level breakdown and grammar explanation
  - History browser with replay and CSV export

Controls:
  Enter    Analyze
  Ctrl+T   Toggle word/sentence mode
  Ctrl+O   Speak the headword
  Ctrl+Y   Copy the entry
  Tab      Switch between lookup and history
  Ctrl+C   Quit`,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
