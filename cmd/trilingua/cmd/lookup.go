package cmd

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/f3rmion/trilingua/internal/ruby"
	"github.com/f3rmion/trilingua/internal/trilingua"
	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <word>",
	Short: "Look up a word and print its trilingual entry",
	Long: `Look up a vocabulary word in Japanese, English or Chinese and print:
  - The word in all three languages
  - Pronunciations (kana, IPA, pinyin)
  - Definitions (Japanese with furigana readings)
  - Example sentences, etymology, synonyms and antonyms

The lookup is recorded in the local history unless --no-history is given.

Examples:
  trilingua lookup 猫
  trilingua lookup serendipity --image
  trilingua lookup 学校 --no-history`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

var (
	lookupImage     bool
	lookupNoHistory bool
)

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().BoolVar(&lookupImage, "image", false, "also generate and save an illustrative image")
	lookupCmd.Flags().BoolVar(&lookupNoHistory, "no-history", false, "do not record this lookup in history")
}

func runLookup(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("empty query")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), a.settings.Timeout())
	defer cancel()

	record, err := a.client.AnalyzeWord(ctx, query)
	if err != nil {
		return err
	}

	printWordRecord(record)

	var imageURL string
	if lookupImage {
		ictx, cancelImg := context.WithTimeout(cmd.Context(), a.settings.Timeout())
		defer cancelImg()
		imageURL = a.client.GenerateImage(ictx, record.CoreWord.EN)
		if imageURL == "" {
			fmt.Fprintln(os.Stderr, "Note: no image could be generated")
		} else if path, err := saveDataURI(imageURL, record.CoreWord.EN+".png"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save image: %v\n", err)
		} else {
			fmt.Printf("\nImage saved to %s\n", path)
		}
	}

	if !lookupNoHistory {
		if _, err := a.store.Insert(trilingua.NewWordItem(record, imageURL)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not record history: %v\n", err)
		}
	}
	return nil
}

func printWordRecord(w *trilingua.WordRecord) {
	fmt.Printf("%s / %s / %s\n\n", w.CoreWord.JP, w.CoreWord.EN, w.CoreWord.ZH)

	fmt.Printf("  Pronunciation:\n")
	fmt.Printf("    jp: %s\n", w.Pronunciation.JP)
	fmt.Printf("    en: %s\n", w.Pronunciation.EN)
	fmt.Printf("    zh: %s\n", w.Pronunciation.ZH)

	fmt.Printf("\n  Definitions:\n")
	fmt.Printf("    jp: %s\n", ruby.Annotate(w.Definitions.JPFurigana))
	fmt.Printf("    en: %s\n", w.Definitions.EN)
	fmt.Printf("    zh: %s\n", w.Definitions.ZH)

	if len(w.Examples) > 0 {
		fmt.Printf("\n  Examples:\n")
		for _, ex := range w.Examples {
			fmt.Printf("    %s\n      %s\n", ex.Text, ex.Translation)
		}
	}

	if w.Etymology != "" {
		fmt.Printf("\n  Etymology: %s\n", w.Etymology)
	}
	if r := w.Related; r != nil {
		if len(r.Synonyms) > 0 {
			fmt.Printf("  Synonyms:  %s\n", strings.Join(r.Synonyms, ", "))
		}
		if len(r.Antonyms) > 0 {
			fmt.Printf("  Antonyms:  %s\n", strings.Join(r.Antonyms, ", "))
		}
	}
}

// saveDataURI decodes a base64 data URI into a file next to the caller.
func saveDataURI(uri, filename string) (string, error) {
	_, encoded, found := strings.Cut(uri, ",")
	if !found {
		return "", fmt.Errorf("malformed data URI")
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decoding image data: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}
