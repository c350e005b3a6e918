// Package trilingua provides the core data types for trilingual dictionary
// entries and the lookup history.
package trilingua

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Lang identifies one of the three supported languages.
type Lang string

const (
	LangJP Lang = "jp"
	LangEN Lang = "en"
	LangZH Lang = "zh"
)

// ParseLang normalizes a user-supplied language code.
func ParseLang(s string) (Lang, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jp", "ja", "japanese":
		return LangJP, nil
	case "en", "english":
		return LangEN, nil
	case "zh", "cn", "chinese":
		return LangZH, nil
	}
	return "", fmt.Errorf("unknown language %q (want jp, en or zh)", s)
}

// Triple holds one string per supported language.
type Triple struct {
	JP string `json:"jp"`
	EN string `json:"en"`
	ZH string `json:"zh"`
}

// Get returns the value for the given language.
func (t Triple) Get(lang Lang) string {
	switch lang {
	case LangJP:
		return t.JP
	case LangZH:
		return t.ZH
	default:
		return t.EN
	}
}

// Quad is a Triple plus a furigana-annotated Japanese variant.
// The jp_furigana field may contain inline ruby markup and nothing else.
type Quad struct {
	JP         string `json:"jp"`
	JPFurigana string `json:"jp_furigana"`
	EN         string `json:"en"`
	ZH         string `json:"zh"`
}

// ExampleSentence is a single example with its translation.
type ExampleSentence struct {
	Text        string `json:"text"`
	Translation string `json:"translation"`
	Lang        Lang   `json:"lang"`
}

// Related groups words related to the headword.
type Related struct {
	Synonyms []string `json:"synonyms"`
	Antonyms []string `json:"antonyms"`
}

// WordRecord is a full trilingual dictionary entry for one word.
// Related is a pointer so an absent related object can be told apart
// from one with empty lists and rejected by Validate.
type WordRecord struct {
	InputWord     string            `json:"inputWord"`
	CoreWord      Triple            `json:"coreWord"`
	Pronunciation Triple            `json:"pronunciation"`
	Definitions   Quad              `json:"definitions"`
	Examples      []ExampleSentence `json:"examples"`
	Etymology     string            `json:"etymology"`
	Related       *Related          `json:"related"`
}

// Validate checks the required-field contract for backend responses.
// CoreWord.jp and CoreWord.en double as the history dedup key and must
// never be empty on a record that claims to be complete.
func (w *WordRecord) Validate() error {
	var missing []string
	if w.CoreWord.JP == "" {
		missing = append(missing, "coreWord.jp")
	}
	if w.CoreWord.EN == "" {
		missing = append(missing, "coreWord.en")
	}
	if w.CoreWord.ZH == "" {
		missing = append(missing, "coreWord.zh")
	}
	if w.Pronunciation.JP == "" && w.Pronunciation.EN == "" && w.Pronunciation.ZH == "" {
		missing = append(missing, "pronunciation")
	}
	if w.Definitions.JP == "" && w.Definitions.EN == "" && w.Definitions.ZH == "" {
		missing = append(missing, "definitions")
	}
	if len(w.Examples) == 0 {
		missing = append(missing, "examples")
	}
	if w.Etymology == "" {
		missing = append(missing, "etymology")
	}
	if w.Related == nil {
		missing = append(missing, "related")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// WordBreakdown is one unit of a sentence breakdown.
type WordBreakdown struct {
	Word         string `json:"word"`
	Reading      string `json:"reading,omitempty"`
	PartOfSpeech string `json:"partOfSpeech"`
	Meaning      string `json:"meaning"`
}

// GrammarAnalysis is a trilingual grammar explanation. Histories written
// before the schema change stored a single plain string instead of the
// object form; both shapes are accepted and round-tripped unchanged.
type GrammarAnalysis struct {
	JP string
	EN string
	ZH string

	// Legacy holds the pre-object plain-string form. When non-empty the
	// three language fields are unset.
	Legacy string
}

// Empty reports whether the analysis carries no explanation in any form.
func (g GrammarAnalysis) Empty() bool {
	return g.JP == "" && g.EN == "" && g.ZH == "" && g.Legacy == ""
}

// Text returns the explanation for the given language, falling back to
// the legacy string for old records.
func (g GrammarAnalysis) Text(lang Lang) string {
	if g.Legacy != "" {
		return g.Legacy
	}
	return Triple{JP: g.JP, EN: g.EN, ZH: g.ZH}.Get(lang)
}

// UnmarshalJSON accepts either the {jp,en,zh} object or a bare string.
func (g *GrammarAnalysis) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "\"") {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*g = GrammarAnalysis{Legacy: s}
		return nil
	}
	var obj struct {
		JP string `json:"jp"`
		EN string `json:"en"`
		ZH string `json:"zh"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*g = GrammarAnalysis{JP: obj.JP, EN: obj.EN, ZH: obj.ZH}
	return nil
}

// MarshalJSON preserves the shape the record was read with.
func (g GrammarAnalysis) MarshalJSON() ([]byte, error) {
	if g.Legacy != "" {
		return json.Marshal(g.Legacy)
	}
	return json.Marshal(struct {
		JP string `json:"jp"`
		EN string `json:"en"`
		ZH string `json:"zh"`
	}{g.JP, g.EN, g.ZH})
}

// SentenceRecord is a full analysis of one sentence.
type SentenceRecord struct {
	Original        string          `json:"original"`
	Breakdown       []WordBreakdown `json:"breakdown"`
	GrammarAnalysis GrammarAnalysis `json:"grammarAnalysis"`
	Translations    Quad            `json:"translations"`
}

// Validate checks the required-field contract for backend responses.
func (s *SentenceRecord) Validate() error {
	var missing []string
	if s.Original == "" {
		missing = append(missing, "original")
	}
	if len(s.Breakdown) == 0 {
		missing = append(missing, "breakdown")
	}
	if s.GrammarAnalysis.Empty() {
		missing = append(missing, "grammarAnalysis")
	}
	if s.Translations.JP == "" && s.Translations.EN == "" && s.Translations.ZH == "" {
		missing = append(missing, "translations")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Item kinds stored in history.
const (
	KindWord     = "word"
	KindSentence = "sentence"
)

// HistoryItem is one past lookup. Exactly one of Word or Sentence is set.
// Items are immutable once inserted into the history store.
type HistoryItem struct {
	ID        string
	Timestamp int64 // unix milliseconds
	Label     string
	Word      *WordRecord
	Sentence  *SentenceRecord
	ImageURL  string // data URI, empty when no image was generated
}

// Kind reports whether the item holds a word or a sentence analysis.
func (h HistoryItem) Kind() string {
	if h.Sentence != nil {
		return KindSentence
	}
	return KindWord
}

// Time returns the creation time of the item.
func (h HistoryItem) Time() time.Time {
	return time.UnixMilli(h.Timestamp)
}

// NewWordItem builds a history item for a completed word lookup.
func NewWordItem(w *WordRecord, imageURL string) HistoryItem {
	now := time.Now()
	return HistoryItem{
		ID:        strconv.FormatInt(now.UnixNano(), 10),
		Timestamp: now.UnixMilli(),
		Label:     w.CoreWord.JP,
		Word:      w,
		ImageURL:  imageURL,
	}
}

// NewSentenceItem builds a history item for a completed sentence analysis.
func NewSentenceItem(s *SentenceRecord, imageURL string) HistoryItem {
	now := time.Now()
	label := s.Original
	if r := []rune(label); len(r) > 24 {
		label = string(r[:24]) + "…"
	}
	return HistoryItem{
		ID:        strconv.FormatInt(now.UnixNano(), 10),
		Timestamp: now.UnixMilli(),
		Label:     label,
		Sentence:  s,
		ImageURL:  imageURL,
	}
}

type historyItemJSON struct {
	ID        string          `json:"id"`
	Timestamp int64           `json:"timestamp"`
	Label     string          `json:"label"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	ImageURL  string          `json:"imageUrl,omitempty"`
}

// MarshalJSON stores the record under a type-discriminated "data" field.
func (h HistoryItem) MarshalJSON() ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if h.Sentence != nil {
		data, err = json.Marshal(h.Sentence)
	} else {
		data, err = json.Marshal(h.Word)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(historyItemJSON{
		ID:        h.ID,
		Timestamp: h.Timestamp,
		Label:     h.Label,
		Type:      h.Kind(),
		Data:      data,
		ImageURL:  h.ImageURL,
	})
}

// UnmarshalJSON restores a persisted item, rejecting unknown record types.
func (h *HistoryItem) UnmarshalJSON(data []byte) error {
	var raw historyItemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	item := HistoryItem{
		ID:        raw.ID,
		Timestamp: raw.Timestamp,
		Label:     raw.Label,
		ImageURL:  raw.ImageURL,
	}
	switch raw.Type {
	case KindSentence:
		var s SentenceRecord
		if err := json.Unmarshal(raw.Data, &s); err != nil {
			return fmt.Errorf("decoding sentence record: %w", err)
		}
		item.Sentence = &s
	case KindWord, "": // early histories wrote no type field
		var w WordRecord
		if err := json.Unmarshal(raw.Data, &w); err != nil {
			return fmt.Errorf("decoding word record: %w", err)
		}
		item.Word = &w
	default:
		return fmt.Errorf("unknown history item type %q", raw.Type)
	}
	*h = item
	return nil
}
