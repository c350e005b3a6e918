package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/trilingua/internal/audio"
	"github.com/f3rmion/trilingua/internal/clipboard"
	"github.com/f3rmion/trilingua/internal/genai"
	"github.com/f3rmion/trilingua/internal/ruby"
	"github.com/f3rmion/trilingua/internal/session"
	"github.com/f3rmion/trilingua/internal/tui/bigchar"
	"github.com/f3rmion/trilingua/internal/trilingua"
	"github.com/mattn/go-runewidth"
)

type clearCopiedMsg struct{}

type speechDoneMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// LookupModel is the main query/result view.
type LookupModel struct {
	controller *session.Controller
	client     *genai.Client

	input    textinput.Model
	spin     spinner.Model
	mode     session.Mode
	snap     session.Snapshot
	copied   bool
	speaking bool

	width  int
	height int
}

// NewLookupModel creates the lookup view.
func NewLookupModel(controller *session.Controller, client *genai.Client) LookupModel {
	input := textinput.New()
	input.Placeholder = "word or sentence in 日本語, English or 中文"
	input.Focus()
	input.CharLimit = 200
	input.Width = 60

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = statusStyle

	return LookupModel{
		controller: controller,
		client:     client,
		input:      input,
		spin:       spin,
		snap:       controller.State(),
	}
}

func (m LookupModel) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the view dimensions.
func (m *LookupModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if width > 20 {
		m.input.Width = width - 10
	}
}

func (m LookupModel) busy() bool {
	return m.snap.State == session.Analyzing || m.snap.State == session.GeneratingImage
}

func (m LookupModel) Update(msg tea.Msg) (LookupModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if m.controller.Submit(m.input.Value(), m.mode) {
				m.copied = false
				return m, m.spin.Tick
			}
			return m, nil
		case "ctrl+t":
			if m.mode == session.ModeWord {
				m.mode = session.ModeSentence
			} else {
				m.mode = session.ModeWord
			}
			return m, nil
		case "ctrl+y":
			if text := m.entryText(); text != "" {
				if err := clipboard.Write(text); err == nil {
					m.copied = true
					return m, clearCopiedAfter(2 * time.Second)
				}
			}
			return m, nil
		case "ctrl+o":
			return m.speakHeadword()
		}

	case sessionMsg:
		m.snap = session.Snapshot(msg)
		if m.busy() {
			return m, m.spin.Tick
		}
		return m, nil

	case spinner.TickMsg:
		if m.busy() {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case clearCopiedMsg:
		m.copied = false
		return m, nil

	case speechDoneMsg:
		m.speaking = false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// speakHeadword speaks the Japanese headword (or sentence) aloud.
func (m LookupModel) speakHeadword() (LookupModel, tea.Cmd) {
	if m.speaking || !audio.Available() {
		return m, nil
	}

	var text string
	var lang trilingua.Lang
	switch {
	case m.snap.Word != nil:
		text, lang = m.snap.Word.CoreWord.JP, trilingua.LangJP
	case m.snap.Sentence != nil:
		text, lang = m.snap.Sentence.Original, trilingua.LangJP
	default:
		return m, nil
	}

	m.speaking = true
	client := m.client
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		client.Speak(ctx, text, lang, audio.PlayerSink{})
		return speechDoneMsg{}
	}
}

// entryText builds a plain-text rendition of the current entry for the
// clipboard.
func (m LookupModel) entryText() string {
	switch {
	case m.snap.Word != nil:
		w := m.snap.Word
		return fmt.Sprintf("%s / %s / %s\n%s | %s\n%s",
			w.CoreWord.JP, w.CoreWord.EN, w.CoreWord.ZH,
			w.Pronunciation.JP, w.Pronunciation.EN,
			w.Definitions.EN)
	case m.snap.Sentence != nil:
		s := m.snap.Sentence
		return fmt.Sprintf("%s\n%s\n%s", s.Original, s.Translations.EN, s.Translations.ZH)
	default:
		return ""
	}
}

func (m LookupModel) View() string {
	var b strings.Builder

	mode := "word"
	if m.mode == session.ModeSentence {
		mode = "sentence"
	}
	b.WriteString(m.input.View())
	b.WriteString("  ")
	b.WriteString(pronStyle.Render("[" + mode + "]"))
	b.WriteString("\n")

	switch m.snap.State {
	case session.Analyzing:
		b.WriteString("\n" + m.spin.View() + statusStyle.Render(" Analyzing…") + "\n")
	case session.GeneratingImage:
		b.WriteString("\n" + m.spin.View() + statusStyle.Render(" Generating illustration…") + "\n")
	case session.Error:
		b.WriteString("\n" + errorStyle.Render(m.snap.ErrMsg) + "\n")
	case session.Complete:
		b.WriteString(m.renderResult())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m LookupModel) renderResult() string {
	if m.snap.Sentence != nil {
		return m.renderSentence(m.snap.Sentence)
	}
	if m.snap.Word != nil {
		return m.renderWord(m.snap.Word)
	}
	return ""
}

func (m LookupModel) renderWord(w *trilingua.WordRecord) string {
	var b strings.Builder

	if art := bigchar.Render(w.CoreWord.JP, 40, 8); art != "" {
		b.WriteString(bigHeadwordStyle.Render(art))
	} else {
		b.WriteString(headwordStyle.Render(w.CoreWord.JP))
	}
	b.WriteString("\n")
	b.WriteString(pronStyle.Render(w.Pronunciation.JP))
	b.WriteString("\n\n")

	b.WriteString(m.renderRow("English", w.CoreWord.EN+"  "+pronStyle.Render(w.Pronunciation.EN)))
	b.WriteString(m.renderRow("中文", w.CoreWord.ZH+"  "+pronStyle.Render(w.Pronunciation.ZH)))
	b.WriteString("\n")

	var def strings.Builder
	def.WriteString(valueStyle.Render(ruby.Annotate(w.Definitions.JPFurigana)))
	def.WriteString("\n")
	def.WriteString(valueStyle.Render(w.Definitions.EN))
	def.WriteString("\n")
	def.WriteString(valueStyle.Render(w.Definitions.ZH))
	b.WriteString(boxStyle.Render(def.String()))
	b.WriteString("\n")

	if len(w.Examples) > 0 {
		b.WriteString("\n" + labelStyle.Render("Examples") + "\n")
		for _, ex := range w.Examples {
			b.WriteString(exampleStyle.Render(ex.Text) + "\n")
			b.WriteString(translationStyle.Render(ex.Translation) + "\n")
		}
	}

	if w.Etymology != "" {
		b.WriteString("\n" + m.renderRow("Etymology", w.Etymology))
	}
	if r := w.Related; r != nil {
		if len(r.Synonyms) > 0 {
			b.WriteString(m.renderRow("Synonyms", strings.Join(r.Synonyms, ", ")))
		}
		if len(r.Antonyms) > 0 {
			b.WriteString(m.renderRow("Antonyms", strings.Join(r.Antonyms, ", ")))
		}
	}

	if m.snap.ImageURL != "" {
		b.WriteString(m.renderRow("Illustration", "generated ✓ (save with the lookup command's --image flag)"))
	}

	return b.String()
}

func (m LookupModel) renderSentence(s *trilingua.SentenceRecord) string {
	var b strings.Builder

	b.WriteString(headwordStyle.Render(s.Original))
	b.WriteString("\n\n")

	b.WriteString(m.renderRow("日本語", ruby.Annotate(s.Translations.JPFurigana)))
	b.WriteString(m.renderRow("English", s.Translations.EN))
	b.WriteString(m.renderRow("中文", s.Translations.ZH))

	if len(s.Breakdown) > 0 {
		b.WriteString("\n" + labelStyle.Render("Breakdown") + "\n")
		wordWidth := 0
		for _, u := range s.Breakdown {
			if w := runewidth.StringWidth(u.Word); w > wordWidth {
				wordWidth = w
			}
		}
		for _, u := range s.Breakdown {
			pad := strings.Repeat(" ", wordWidth-runewidth.StringWidth(u.Word)+2)
			line := valueStyle.Render(u.Word) + pad
			if u.Reading != "" {
				line += pronStyle.Render(u.Reading) + " "
			}
			line += helpStyle.Render("["+u.PartOfSpeech+"] ") + valueStyle.Render(u.Meaning)
			b.WriteString(exampleStyle.Render(line) + "\n")
		}
	}

	if grammar := s.GrammarAnalysis.Text(trilingua.LangEN); grammar != "" {
		b.WriteString("\n" + boxStyle.Render(valueStyle.Render(grammar)) + "\n")
	}

	return b.String()
}

func (m LookupModel) renderRow(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

func (m LookupModel) renderHelp() string {
	parts := []string{"enter: look up", "ctrl+t: word/sentence"}
	if m.snap.State == session.Complete {
		parts = append(parts, "ctrl+o: speak", "ctrl+y: copy")
	}
	help := helpStyle.Render(strings.Join(parts, " • "))
	if m.copied {
		help += "  " + successStyle.Render("copied ✓")
	}
	if m.speaking {
		help += "  " + statusStyle.Render("speaking…")
	}
	return help
}
