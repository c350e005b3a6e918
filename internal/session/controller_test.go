package session

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/f3rmion/trilingua/internal/genai"
	"github.com/f3rmion/trilingua/internal/history"
	"github.com/f3rmion/trilingua/internal/trilingua"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend lets tests script analysis and image behavior per query.
type fakeBackend struct {
	analyzeErr error
	imageURL   string
	calls      atomic.Int32
	// gates block analysis of specific queries until closed (ctx is
	// ignored on purpose so staleness handling is exercised, not
	// cancellation); populated before use, read-only afterwards
	gates map[string]chan struct{}
}

func (f *fakeBackend) AnalyzeWord(ctx context.Context, query string) (*trilingua.WordRecord, error) {
	f.calls.Add(1)
	if gate, ok := f.gates[query]; ok {
		<-gate
	}
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	return &trilingua.WordRecord{
		InputWord:   query,
		CoreWord:    trilingua.Triple{JP: "猫" + query, EN: query, ZH: "猫"},
		Definitions: trilingua.Quad{EN: "a " + query},
	}, nil
}

func (f *fakeBackend) AnalyzeSentence(ctx context.Context, sentence string) (*trilingua.SentenceRecord, error) {
	f.calls.Add(1)
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	return &trilingua.SentenceRecord{
		Original:     sentence,
		Breakdown:    []trilingua.WordBreakdown{{Word: sentence, PartOfSpeech: "noun", Meaning: "x"}},
		Translations: trilingua.Quad{EN: "translated"},
	}, nil
}

func (f *fakeBackend) GenerateImage(ctx context.Context, concept string) string {
	return f.imageURL
}

func newController(t *testing.T, backend *fakeBackend) *Controller {
	t.Helper()
	store := history.NewStore(history.NewMemoryKV(), t.Logf)
	return New(backend, store, Options{Logf: t.Logf})
}

// waitState polls until the controller reaches the wanted state.
func waitState(t *testing.T, c *Controller, want State) Snapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if snap := c.State(); snap.State == want {
			return snap
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for state %v, have %v", want, c.State().State)
	return Snapshot{}
}

func TestSubmitEmptyQueryIgnored(t *testing.T) {
	backend := &fakeBackend{}
	c := newController(t, backend)

	assert.False(t, c.Submit("", ModeWord))
	assert.False(t, c.Submit("   \t\n", ModeWord))
	assert.Equal(t, Idle, c.State().State)
	assert.Equal(t, int32(0), backend.calls.Load(), "no backend call for empty query")
}

func TestLookupPipeline(t *testing.T) {
	backend := &fakeBackend{imageURL: "data:image/png;base64,aGk="}
	c := newController(t, backend)

	require.True(t, c.Submit("cat", ModeWord))
	snap := waitState(t, c, Complete)

	assert.Equal(t, "cat", snap.Word.CoreWord.EN)
	assert.Equal(t, "data:image/png;base64,aGk=", snap.ImageURL)
	assert.False(t, snap.FromHistory)

	items := c.Store().Items()
	require.Len(t, items, 1)
	assert.Equal(t, "cat", items[0].Word.InputWord)
	assert.Equal(t, snap.ImageURL, items[0].ImageURL)
}

func TestAnalysisFailure(t *testing.T) {
	backend := &fakeBackend{analyzeErr: &genai.ResponseError{Reason: "no text"}}
	c := newController(t, backend)

	require.True(t, c.Submit("cat", ModeWord))
	snap := waitState(t, c, Error)

	// generic message only, the cause stays in the log
	assert.Equal(t, "Analysis failed. Please try again or check your configuration.", snap.ErrMsg)
	assert.Empty(t, c.Store().Items(), "failed lookups are not recorded")
}

func TestMissingKeyMessage(t *testing.T) {
	backend := &fakeBackend{analyzeErr: genai.ErrNoAPIKey}
	c := newController(t, backend)

	c.Submit("cat", ModeWord)
	snap := waitState(t, c, Error)
	assert.Contains(t, snap.ErrMsg, "GEMINI_API_KEY")
}

func TestImageFailureStillCompletes(t *testing.T) {
	backend := &fakeBackend{imageURL: ""} // image generation "failed"
	c := newController(t, backend)

	c.Submit("cat", ModeWord)
	snap := waitState(t, c, Complete)

	assert.Empty(t, snap.ImageURL)
	items := c.Store().Items()
	require.Len(t, items, 1)
	assert.Empty(t, items[0].ImageURL)
}

func TestStaleResultDiscarded(t *testing.T) {
	gate := make(chan struct{})
	backend := &fakeBackend{gates: map[string]chan struct{}{"slow": gate}}
	c := newController(t, backend)

	require.True(t, c.Submit("slow", ModeWord))
	waitState(t, c, Analyzing)

	// second submission overtakes the first
	require.True(t, c.Submit("fast", ModeWord))
	snap := waitState(t, c, Complete)
	assert.Equal(t, "fast", snap.Word.CoreWord.EN)

	// let the first submission finish late; it must change nothing
	close(gate)
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, "fast", c.State().Word.CoreWord.EN)
	items := c.Store().Items()
	require.Len(t, items, 1)
	assert.Equal(t, "fast", items[0].Word.InputWord)
}

func TestSentenceMode(t *testing.T) {
	backend := &fakeBackend{}
	c := newController(t, backend)

	c.Submit("猫が好きです。", ModeSentence)
	snap := waitState(t, c, Complete)

	require.NotNil(t, snap.Sentence)
	assert.Equal(t, "猫が好きです。", snap.Sentence.Original)

	items := c.Store().Items()
	require.Len(t, items, 1)
	assert.Equal(t, trilingua.KindSentence, items[0].Kind())
}

func TestLoadFromHistory(t *testing.T) {
	backend := &fakeBackend{}
	c := newController(t, backend)

	item := trilingua.NewWordItem(&trilingua.WordRecord{
		InputWord: "cat",
		CoreWord:  trilingua.Triple{JP: "猫", EN: "cat", ZH: "猫"},
	}, "data:image/png;base64,aGk=")

	c.LoadFromHistory(item)
	snap := c.State()

	assert.Equal(t, Complete, snap.State)
	assert.True(t, snap.FromHistory)
	assert.Equal(t, "猫", snap.Word.CoreWord.JP)
	assert.Equal(t, int32(0), backend.calls.Load(), "replay makes no backend calls")
	assert.Empty(t, c.Store().Items(), "replay does not re-insert")
}

func TestUpdatesKeepLatestWhenFull(t *testing.T) {
	backend := &fakeBackend{}
	c := newController(t, backend)

	// overflow the updates buffer without consuming anything
	for i := 0; i < 40; i++ {
		c.Reset()
	}
	require.True(t, c.Submit("cat", ModeWord))
	waitState(t, c, Complete)

	// the oldest snapshots fell off; the final one must still be queued
	var last Snapshot
	var got bool
	for {
		select {
		case snap := <-c.Updates():
			last, got = snap, true
			continue
		default:
		}
		break
	}
	require.True(t, got)
	assert.Equal(t, Complete, last.State)
	assert.Equal(t, "cat", last.Word.CoreWord.EN)
}

func TestTimeoutMessage(t *testing.T) {
	assert.Contains(t, userMessage(context.DeadlineExceeded), "too long")
	assert.Contains(t, userMessage(errors.New("boom")), "try again")
}
