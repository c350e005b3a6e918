package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, export or clear the lookup history",
	Long: `Manage the local lookup history (most recent 50 entries, newest first,
word entries deduplicated).

Examples:
  trilingua history
  trilingua history export --dir ~/Documents
  trilingua history clear`,
	RunE: runHistoryList,
}

var exportDir string

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the history as a CSV file",
	RunE:  runHistoryExport,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all history entries",
	RunE:  runHistoryClear,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyExportCmd.Flags().StringVarP(&exportDir, "dir", "d", ".", "directory to write the export to")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	items := a.store.Items()
	if len(items) == 0 {
		fmt.Println("History is empty.")
		return nil
	}

	for _, item := range items {
		when := item.Time().Format("2006-01-02 15:04")
		if w := item.Word; w != nil {
			fmt.Printf("%s  %s / %s / %s\n", when, w.CoreWord.JP, w.CoreWord.EN, w.CoreWord.ZH)
		} else {
			fmt.Printf("%s  %s\n", when, item.Label)
		}
	}
	fmt.Printf("\n%d entries.\n", len(items))
	return nil
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	path, err := a.store.ExportFile(exportDir)
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "History is empty, nothing exported.")
		return nil
	}
	fmt.Printf("Exported to %s\n", path)
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.store.Clear(); err != nil {
		return err
	}
	fmt.Println("History cleared.")
	return nil
}
