package history

import (
	"encoding/json"
	"fmt"
	"strconv"
	"testing"

	"github.com/f3rmion/trilingua/internal/trilingua"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wordItem(id int, jp, en string) trilingua.HistoryItem {
	return trilingua.HistoryItem{
		ID:        strconv.Itoa(id),
		Timestamp: int64(id),
		Label:     jp,
		Word: &trilingua.WordRecord{
			InputWord:   en,
			CoreWord:    trilingua.Triple{JP: jp, EN: en, ZH: jp},
			Definitions: trilingua.Quad{EN: "def of " + en},
		},
	}
}

func newTestStore(t *testing.T) (*Store, *MemoryKV) {
	t.Helper()
	kv := NewMemoryKV()
	return NewStore(kv, t.Logf), kv
}

func TestInsertDedupOnJP(t *testing.T) {
	s, _ := newTestStore(t)

	s.Insert(wordItem(1, "猫", "cat"))
	// same jp, different en: still a duplicate
	items, err := s.Insert(wordItem(2, "猫", "kitty"))
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "kitty", items[0].Word.CoreWord.EN)
}

func TestInsertDedupOnEN(t *testing.T) {
	s, _ := newTestStore(t)

	s.Insert(wordItem(1, "猫", "cat"))
	// same en, different jp
	items, err := s.Insert(wordItem(2, "ネコ", "cat"))
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "ネコ", items[0].Word.CoreWord.JP)
}

func TestInsertNoDedupAcrossKinds(t *testing.T) {
	s, _ := newTestStore(t)

	s.Insert(wordItem(1, "猫", "cat"))
	sentence := trilingua.HistoryItem{
		ID:        "s1",
		Timestamp: 2,
		Sentence: &trilingua.SentenceRecord{
			Original:     "猫",
			Breakdown:    []trilingua.WordBreakdown{{Word: "猫", PartOfSpeech: "noun", Meaning: "cat"}},
			Translations: trilingua.Quad{EN: "cat"},
		},
	}
	items, err := s.Insert(sentence)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCapacity(t *testing.T) {
	s, _ := newTestStore(t)

	for i := 0; i < MaxItems; i++ {
		s.Insert(wordItem(i, fmt.Sprintf("語%d", i), fmt.Sprintf("word%d", i)))
	}
	require.Equal(t, MaxItems, s.Len())

	items, err := s.Insert(wordItem(999, "新", "new"))
	require.NoError(t, err)

	assert.Len(t, items, MaxItems)
	assert.Equal(t, "新", items[0].Word.CoreWord.JP)
	// exactly the oldest item fell off
	assert.Equal(t, "word1", items[MaxItems-1].Word.CoreWord.EN)
}

func TestOrdering(t *testing.T) {
	s, kv := newTestStore(t)

	for i := 1; i <= 10; i++ {
		s.Insert(wordItem(i, fmt.Sprintf("語%d", i), fmt.Sprintf("word%d", i)))
	}

	// reload from the blob store and check strict descending timestamps
	reloaded := NewStore(kv, t.Logf).Items()
	require.Len(t, reloaded, 10)
	for i := 1; i < len(reloaded); i++ {
		assert.Greater(t, reloaded[i-1].Timestamp, reloaded[i].Timestamp)
	}
}

func TestLoadCorruptBlob(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(Key, []byte("definitely not json{{")))

	s := NewStore(kv, t.Logf)
	assert.Empty(t, s.Items())
}

func TestLoadMissingBlob(t *testing.T) {
	s, _ := newTestStore(t)
	assert.Empty(t, s.Items())
}

func TestLegacyGrammarString(t *testing.T) {
	// a record persisted before grammarAnalysis became an object
	blob := `[{
		"id": "1", "timestamp": 1000, "label": "昔の文", "type": "sentence",
		"data": {
			"original": "昔の文",
			"breakdown": [{"word":"昔","partOfSpeech":"noun","meaning":"old times"}],
			"grammarAnalysis": "A plain legacy explanation.",
			"translations": {"jp":"昔の文","jp_furigana":"","en":"an old sentence","zh":"旧句子"}
		}
	}]`
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(Key, []byte(blob)))

	items := NewStore(kv, t.Logf).Items()
	require.Len(t, items, 1)
	got := items[0].Sentence.GrammarAnalysis
	assert.Equal(t, "A plain legacy explanation.", got.Text(trilingua.LangEN))
	assert.Equal(t, "A plain legacy explanation.", got.Text(trilingua.LangJP))

	// the legacy shape must survive a round trip unchanged
	out, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Equal(t, `"A plain legacy explanation."`, string(out))
}

func TestClear(t *testing.T) {
	s, kv := newTestStore(t)
	s.Insert(wordItem(1, "猫", "cat"))
	require.NoError(t, s.Clear())
	assert.Empty(t, s.Items())

	_, err := kv.Get(Key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteKVRoundTrip(t *testing.T) {
	kv, err := OpenKV(t.TempDir() + "/history.db")
	require.NoError(t, err)
	defer kv.Close()

	_, err = kv.Get(Key)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(Key, []byte("one")))
	require.NoError(t, kv.Set(Key, []byte("two"))) // upsert

	got, err := kv.Get(Key)
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), got)

	require.NoError(t, kv.Delete(Key))
	_, err = kv.Get(Key)
	assert.ErrorIs(t, err, ErrNotFound)
}
