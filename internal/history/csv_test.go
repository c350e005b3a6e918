package history

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/f3rmion/trilingua/internal/trilingua"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCSVEscaping(t *testing.T) {
	tricky := `a "quoted", tricky definition`
	item := wordItem(1, "猫", "cat")
	item.Word.Definitions.EN = tricky

	data, err := ToCSV([]trilingua.HistoryItem{item})
	require.NoError(t, err)

	// the raw bytes must carry doubled quotes inside a quoted field
	assert.Contains(t, string(data), `"a ""quoted"", tricky definition"`)

	// a standard CSV parser must recover the original string exactly
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, tricky, rows[1][8])
	assert.Equal(t, "1970-01-01T00:00:00Z", rows[1][0])
}

func TestToCSVSentenceRow(t *testing.T) {
	item := trilingua.HistoryItem{
		ID:        "s1",
		Timestamp: 1000,
		Sentence: &trilingua.SentenceRecord{
			Original:        "猫が好きです。",
			Breakdown:       []trilingua.WordBreakdown{{Word: "猫", PartOfSpeech: "noun", Meaning: "cat"}},
			GrammarAnalysis: trilingua.GrammarAnalysis{JP: "主語", EN: "subject"},
			Translations:    trilingua.Quad{JP: "猫が好きです。", EN: "I like cats.", ZH: "我喜欢猫。"},
		},
	}
	data, err := ToCSV([]trilingua.HistoryItem{item})
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "猫が好きです。", rows[1][1])
	assert.Equal(t, "I like cats.", rows[1][3])
	assert.Equal(t, "subject", rows[1][8])
}

func TestToCSVEmpty(t *testing.T) {
	data, err := ToCSV(nil)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}

func TestExportFileSkipsEmptyHistory(t *testing.T) {
	s, _ := newTestStore(t)
	path, err := s.ExportFile(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, path, "no file for an empty history")
}

func TestExportFile(t *testing.T) {
	s, _ := newTestStore(t)
	s.Insert(wordItem(1, "猫", "cat"))

	dir := t.TempDir()
	path, err := s.ExportFile(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.Regexp(t, `^trilingua_export_\d{4}-\d{2}-\d{2}\.csv$`, filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "cat")
}
