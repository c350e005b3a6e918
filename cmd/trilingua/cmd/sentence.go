package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/f3rmion/trilingua/internal/ruby"
	"github.com/f3rmion/trilingua/internal/trilingua"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var sentenceCmd = &cobra.Command{
	Use:   "sentence <text>",
	Short: "Analyze a sentence: breakdown, grammar and translations",
	Long: `Analyze a sentence in Japanese, English or Chinese and print:
  - A unit-level breakdown with readings, part of speech and meaning
  - A grammar explanation
  - Translations into all three languages

Examples:
  trilingua sentence 猫が好きです。
  trilingua sentence "The quick brown fox jumps over the lazy dog."`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSentence,
}

var sentenceNoHistory bool

func init() {
	rootCmd.AddCommand(sentenceCmd)
	sentenceCmd.Flags().BoolVar(&sentenceNoHistory, "no-history", false, "do not record this analysis in history")
}

func runSentence(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return fmt.Errorf("empty sentence")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), a.settings.Timeout())
	defer cancel()

	record, err := a.client.AnalyzeSentence(ctx, text)
	if err != nil {
		return err
	}

	printSentenceRecord(record)

	if !sentenceNoHistory {
		if _, err := a.store.Insert(trilingua.NewSentenceItem(record, "")); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not record history: %v\n", err)
		}
	}
	return nil
}

func printSentenceRecord(s *trilingua.SentenceRecord) {
	fmt.Printf("%s\n\n", s.Original)

	if len(s.Breakdown) > 0 {
		fmt.Printf("  Breakdown:\n")
		width := 0
		for _, u := range s.Breakdown {
			if w := runewidth.StringWidth(u.Word); w > width {
				width = w
			}
		}
		for _, u := range s.Breakdown {
			pad := strings.Repeat(" ", width-runewidth.StringWidth(u.Word)+2)
			line := "    " + u.Word + pad
			if u.Reading != "" {
				line += u.Reading + "  "
			}
			fmt.Printf("%s[%s] %s\n", line, u.PartOfSpeech, u.Meaning)
		}
	}

	if grammar := s.GrammarAnalysis.Text(trilingua.LangEN); grammar != "" {
		fmt.Printf("\n  Grammar: %s\n", grammar)
	}

	fmt.Printf("\n  Translations:\n")
	fmt.Printf("    jp: %s\n", ruby.Annotate(s.Translations.JPFurigana))
	fmt.Printf("    en: %s\n", s.Translations.EN)
	fmt.Printf("    zh: %s\n", s.Translations.ZH)
}
