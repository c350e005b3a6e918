// Package session orchestrates one lookup end to end: query → analysis →
// image → history insert, exposing a small state machine to the UI.
package session

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/f3rmion/trilingua/internal/genai"
	"github.com/f3rmion/trilingua/internal/history"
	"github.com/f3rmion/trilingua/internal/trilingua"
)

// State is the lookup pipeline state.
type State int

const (
	Idle State = iota
	Analyzing
	GeneratingImage
	Complete
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Analyzing:
		return "analyzing"
	case GeneratingImage:
		return "generating image"
	case Complete:
		return "complete"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Mode selects word or sentence analysis.
type Mode int

const (
	ModeWord Mode = iota
	ModeSentence
)

// Backend is the slice of the generative client the controller needs.
type Backend interface {
	AnalyzeWord(ctx context.Context, query string) (*trilingua.WordRecord, error)
	AnalyzeSentence(ctx context.Context, sentence string) (*trilingua.SentenceRecord, error)
	GenerateImage(ctx context.Context, concept string) string
}

// Snapshot is an immutable copy of the controller state. It is replaced
// wholesale on every transition.
type Snapshot struct {
	State       State
	Seq         uint64
	Query       string
	Word        *trilingua.WordRecord
	Sentence    *trilingua.SentenceRecord
	ImageURL    string
	ErrMsg      string // user-facing message, cause is logged instead
	FromHistory bool
}

// Controller runs lookups. Each submission gets a monotonically
// increasing sequence number; completions carrying a stale number are
// discarded so a slow older lookup can never clobber a newer result.
type Controller struct {
	backend Backend
	store   *history.Store
	timeout time.Duration
	logf    func(format string, args ...any)

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	snap   Snapshot

	updates chan Snapshot
}

// Options configures a Controller.
type Options struct {
	Timeout time.Duration // per backend call, default 60s
	Logf    func(format string, args ...any)
}

// New creates an idle controller.
func New(backend Backend, store *history.Store, opts Options) *Controller {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	logf := opts.Logf
	if logf == nil {
		logf = log.Printf
	}
	return &Controller{
		backend: backend,
		store:   store,
		timeout: timeout,
		logf:    logf,
		snap:    Snapshot{State: Idle},
		updates: make(chan Snapshot, 16),
	}
}

// Updates delivers state snapshots as they happen. Slow consumers may
// miss intermediate snapshots, never the latest one.
func (c *Controller) Updates() <-chan Snapshot { return c.updates }

// State returns the current snapshot.
func (c *Controller) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// Store exposes the history store backing this controller.
func (c *Controller) Store() *history.Store { return c.store }

// Submit starts a new lookup. Empty or whitespace-only queries are
// ignored. A submit during an in-flight lookup cancels it; its late
// results are dropped by the sequence check.
func (c *Controller) Submit(query string, mode Mode) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return false
	}

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.seq++
	seq := c.seq
	c.snap = Snapshot{State: Analyzing, Seq: seq, Query: query}
	c.publishLocked()
	c.mu.Unlock()

	go c.run(ctx, seq, query, mode)
	return true
}

// LoadFromHistory restores a stored item as the completed state. No
// backend calls are made and nothing is re-inserted into history.
func (c *Controller) LoadFromHistory(item trilingua.HistoryItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.seq++
	c.snap = Snapshot{
		State:       Complete,
		Seq:         c.seq,
		Query:       item.Label,
		Word:        item.Word,
		Sentence:    item.Sentence,
		ImageURL:    item.ImageURL,
		FromHistory: true,
	}
	c.publishLocked()
}

// Reset returns the controller to Idle, cancelling any in-flight lookup.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.seq++
	c.snap = Snapshot{State: Idle, Seq: c.seq}
	c.publishLocked()
}

// run drives one submission through analysis, image and history insert.
func (c *Controller) run(ctx context.Context, seq uint64, query string, mode Mode) {
	actx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var (
		word     *trilingua.WordRecord
		sentence *trilingua.SentenceRecord
		concept  string
		err      error
	)
	switch mode {
	case ModeSentence:
		sentence, err = c.backend.AnalyzeSentence(actx, query)
		if sentence != nil {
			concept = sentence.Translations.EN
		}
	default:
		word, err = c.backend.AnalyzeWord(actx, query)
		if word != nil {
			concept = word.CoreWord.EN
		}
	}

	if err != nil {
		c.logf("analysis failed: %v", err)
		c.apply(seq, func(s *Snapshot) {
			s.State = Error
			s.ErrMsg = userMessage(err)
		})
		return
	}

	if !c.apply(seq, func(s *Snapshot) {
		s.State = GeneratingImage
		s.Word = word
		s.Sentence = sentence
	}) {
		return
	}

	ictx, cancelImg := context.WithTimeout(ctx, c.timeout)
	defer cancelImg()
	// best-effort: an empty result still completes the pipeline
	imageURL := c.backend.GenerateImage(ictx, concept)

	fresh := c.apply(seq, func(s *Snapshot) {
		s.State = Complete
		s.ImageURL = imageURL
	})
	if !fresh {
		return
	}

	var item trilingua.HistoryItem
	if sentence != nil {
		item = trilingua.NewSentenceItem(sentence, imageURL)
	} else {
		item = trilingua.NewWordItem(word, imageURL)
	}
	if _, err := c.store.Insert(item); err != nil {
		c.logf("history insert failed: %v", err)
	}
}

// apply mutates and publishes the snapshot unless seq is stale.
func (c *Controller) apply(seq uint64, mutate func(*Snapshot)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		return false
	}
	mutate(&c.snap)
	c.publishLocked()
	return true
}

// publishLocked queues the current snapshot, evicting the oldest queued
// one when the buffer is full so the latest state always lands. Sends
// are serialized by c.mu, consumers only ever receive.
func (c *Controller) publishLocked() {
	for {
		select {
		case c.updates <- c.snap:
			return
		default:
		}
		select {
		case <-c.updates:
		default:
		}
	}
}

// userMessage maps an internal error to what the user is shown.
func userMessage(err error) string {
	switch {
	case errors.Is(err, genai.ErrNoAPIKey):
		return "GEMINI_API_KEY is not set. Export it and try again."
	case errors.Is(err, context.DeadlineExceeded):
		return "The backend took too long to answer. Please try again."
	case errors.Is(err, context.Canceled):
		return "Lookup cancelled."
	default:
		return "Analysis failed. Please try again or check your configuration."
	}
}
