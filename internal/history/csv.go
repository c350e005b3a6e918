package history

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/f3rmion/trilingua/internal/trilingua"
)

// csvHeader is the fixed export schema.
var csvHeader = []string{
	"Timestamp", "Input", "JP", "EN", "ZH",
	"JP_Pron", "EN_Pron", "Definition_JP", "Definition_EN",
}

// ToCSV renders items as UTF-8 CSV in the given order (newest first when
// called with a store's contents). Fields containing quotes or commas
// get standard CSV escaping.
func ToCSV(items []trilingua.HistoryItem) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}
	for _, item := range items {
		if err := w.Write(csvRow(item)); err != nil {
			return nil, fmt.Errorf("writing CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func csvRow(item trilingua.HistoryItem) []string {
	ts := item.Time().UTC().Format(time.RFC3339)

	if s := item.Sentence; s != nil {
		return []string{
			ts,
			s.Original,
			s.Translations.JP,
			s.Translations.EN,
			s.Translations.ZH,
			"",
			"",
			s.GrammarAnalysis.Text(trilingua.LangJP),
			s.GrammarAnalysis.Text(trilingua.LangEN),
		}
	}

	w := item.Word
	return []string{
		ts,
		w.InputWord,
		w.CoreWord.JP,
		w.CoreWord.EN,
		w.CoreWord.ZH,
		w.Pronunciation.JP,
		w.Pronunciation.EN,
		w.Definitions.JP,
		w.Definitions.EN,
	}
}

// ExportFile writes the history to trilingua_export_<date>.csv in dir and
// returns the written path. An empty history produces no file.
func (s *Store) ExportFile(dir string) (string, error) {
	items := s.Items()
	if len(items) == 0 {
		return "", nil
	}

	data, err := ToCSV(items)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("trilingua_export_%s.csv", time.Now().Format("2006-01-02"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing export file: %w", err)
	}
	return path, nil
}
