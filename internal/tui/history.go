package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/trilingua/internal/session"
	"github.com/f3rmion/trilingua/internal/trilingua"
)

// historyEntry adapts a HistoryItem to the bubbles list.
type historyEntry struct {
	item trilingua.HistoryItem
}

func (e historyEntry) Title() string {
	marker := "□"
	if e.item.ImageURL != "" {
		marker = "▣"
	}
	return fmt.Sprintf("%s %s", marker, e.item.Label)
}

func (e historyEntry) Description() string {
	when := e.item.Time().Format("2006-01-02 15:04")
	if w := e.item.Word; w != nil {
		return fmt.Sprintf("%s • %s", when, w.CoreWord.EN)
	}
	return fmt.Sprintf("%s • sentence", when)
}

func (e historyEntry) FilterValue() string {
	if w := e.item.Word; w != nil {
		return e.item.Label + " " + w.CoreWord.EN
	}
	return e.item.Label
}

type exportDoneMsg struct {
	path string
	err  error
}

// HistoryModel is the past-lookups browser.
type HistoryModel struct {
	controller *session.Controller
	list       list.Model
	status     string
	statusErr  bool
}

// NewHistoryModel creates the history view.
func NewHistoryModel(controller *session.Controller) HistoryModel {
	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.Title = "History"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)

	m := HistoryModel{controller: controller, list: l}
	m.Refresh()
	return m
}

// Refresh reloads the list from the store.
func (m *HistoryModel) Refresh() {
	items := m.controller.Store().Items()
	entries := make([]list.Item, len(items))
	for i, item := range items {
		entries[i] = historyEntry{item: item}
	}
	m.list.SetItems(entries)
}

// SetSize updates the view dimensions.
func (m *HistoryModel) SetSize(width, height int) {
	m.list.SetSize(width, height-2)
}

func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if entry, ok := m.list.SelectedItem().(historyEntry); ok {
				m.controller.LoadFromHistory(entry.item)
				return m, func() tea.Msg { return switchViewMsg(viewLookup) }
			}
			return m, nil
		case "ctrl+e":
			if len(m.list.Items()) == 0 {
				m.status, m.statusErr = "nothing to export", true
				return m, nil
			}
			store := m.controller.Store()
			return m, func() tea.Msg {
				dir, err := os.Getwd()
				if err != nil {
					return exportDoneMsg{err: err}
				}
				path, err := store.ExportFile(dir)
				return exportDoneMsg{path: path, err: err}
			}
		}

	case exportDoneMsg:
		if msg.err != nil {
			m.status, m.statusErr = "export failed: "+msg.err.Error(), true
		} else {
			m.status, m.statusErr = "exported to "+msg.path, false
		}
		return m, nil

	case sessionMsg:
		if session.Snapshot(msg).State == session.Complete {
			m.Refresh()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m HistoryModel) View() string {
	out := m.list.View() + "\n"
	if m.status != "" {
		if m.statusErr {
			out += errorStyle.Render(m.status)
		} else {
			out += successStyle.Render(m.status)
		}
		out += "\n"
	}
	out += helpStyle.Render("enter: open • ctrl+e: export CSV • /: filter")
	return out
}
