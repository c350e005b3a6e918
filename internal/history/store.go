package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/f3rmion/trilingua/internal/trilingua"
)

const (
	// Key is the blob-store entry the whole history lives under.
	Key = "trilingua_history"

	// MaxItems caps the history; older items past the cap are discarded.
	MaxItems = 50
)

// Store is the lookup history: strict reverse-chronological order, word
// entries deduplicated by coreWord, never more than MaxItems items.
// Every insert rewrites the whole blob; the working set is small enough
// that write-through is cheaper than a delta scheme.
type Store struct {
	mu    sync.Mutex
	kv    KV
	items []trilingua.HistoryItem
	logf  func(format string, args ...any)
}

// NewStore creates a store and loads any persisted history. A missing or
// corrupt blob yields an empty history, never an error.
func NewStore(kv KV, logf func(format string, args ...any)) *Store {
	if logf == nil {
		logf = log.Printf
	}
	s := &Store{kv: kv, logf: logf}
	s.items = s.load()
	return s
}

// load reads the persisted blob. Corruption is logged and discarded.
func (s *Store) load() []trilingua.HistoryItem {
	blob, err := s.kv.Get(Key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logf("history unreadable, starting empty: %v", err)
		}
		return nil
	}

	var items []trilingua.HistoryItem
	if err := json.Unmarshal(blob, &items); err != nil {
		s.logf("history corrupt, starting empty: %v", err)
		return nil
	}
	return items
}

// Load re-reads the history from the blob store.
func (s *Store) Load() []trilingua.HistoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = s.load()
	return copyItems(s.items)
}

// Items returns the current history, most recent first.
func (s *Store) Items() []trilingua.HistoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyItems(s.items)
}

// Len reports the current number of items.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Insert prepends an item, drops word-entry duplicates, enforces the cap
// and persists the result. For word items any existing entry matching on
// coreWord.jp OR coreWord.en is treated as a duplicate and removed first.
func (s *Store) Insert(item trilingua.HistoryItem) ([]trilingua.HistoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0:0]
	for _, existing := range s.items {
		if isDuplicate(item, existing) {
			continue
		}
		kept = append(kept, existing)
	}

	updated := append([]trilingua.HistoryItem{item}, kept...)
	if len(updated) > MaxItems {
		updated = updated[:MaxItems]
	}

	if err := s.persist(updated); err != nil {
		return copyItems(s.items), err
	}
	s.items = updated
	return copyItems(s.items), nil
}

// Clear removes all items and the persisted blob.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Delete(Key); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	s.items = nil
	return nil
}

// persist writes the full collection back in one blob.
func (s *Store) persist(items []trilingua.HistoryItem) error {
	blob, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := s.kv.Set(Key, blob); err != nil {
		return fmt.Errorf("persisting history: %w", err)
	}
	return nil
}

// isDuplicate applies the word dedup rule: a match on either half of the
// (coreWord.jp, coreWord.en) key is enough.
func isDuplicate(incoming, existing trilingua.HistoryItem) bool {
	if incoming.Word == nil || existing.Word == nil {
		return false
	}
	a, b := incoming.Word.CoreWord, existing.Word.CoreWord
	if a.JP != "" && a.JP == b.JP {
		return true
	}
	if a.EN != "" && a.EN == b.EN {
		return true
	}
	return false
}

func copyItems(items []trilingua.HistoryItem) []trilingua.HistoryItem {
	out := make([]trilingua.HistoryItem, len(items))
	copy(out, items)
	return out
}
