package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/trilingua/internal/genai"
	"github.com/f3rmion/trilingua/internal/session"
)

type viewType int

const (
	viewLookup viewType = iota
	viewHistory
)

// sessionMsg carries a controller state snapshot into the UI loop.
type sessionMsg session.Snapshot

// switchViewMsg asks the app to show another view.
type switchViewMsg viewType

// AppModel is the root bubbletea model: a tab bar over the lookup and
// history views, fed by session controller snapshots.
type AppModel struct {
	controller *session.Controller
	client     *genai.Client

	currentView viewType
	lookup      LookupModel
	history     HistoryModel

	width  int
	height int
}

// NewApp creates the root model.
func NewApp(controller *session.Controller, client *genai.Client) AppModel {
	return AppModel{
		controller: controller,
		client:     client,
		lookup:     NewLookupModel(controller, client),
		history:    NewHistoryModel(controller),
	}
}

// waitSession blocks on the next controller snapshot.
func waitSession(controller *session.Controller) tea.Cmd {
	return func() tea.Msg {
		return sessionMsg(<-controller.Updates())
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.lookup.Init(), waitSession(m.controller))
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			if m.currentView == viewLookup {
				m.currentView = viewHistory
				m.history.Refresh()
			} else {
				m.currentView = viewLookup
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.lookup.SetSize(msg.Width, msg.Height-2)
		m.history.SetSize(msg.Width, msg.Height-2)

	case sessionMsg:
		// snapshots go to both views regardless of which one is showing:
		// the lookup needs its result state, the history list its refresh
		var lookupCmd, historyCmd tea.Cmd
		m.lookup, lookupCmd = m.lookup.Update(msg)
		m.history, historyCmd = m.history.Update(msg)
		return m, tea.Batch(lookupCmd, historyCmd, waitSession(m.controller))

	case switchViewMsg:
		m.currentView = viewType(msg)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentView {
	case viewHistory:
		m.history, cmd = m.history.Update(msg)
	default:
		m.lookup, cmd = m.lookup.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m AppModel) View() string {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.currentView {
	case viewHistory:
		b.WriteString(m.history.View())
	default:
		b.WriteString(m.lookup.View())
	}

	return b.String()
}

func (m AppModel) renderTabs() string {
	lookupTab := tabStyle.Render("Lookup")
	historyTab := tabStyle.Render("History")
	if m.currentView == viewLookup {
		lookupTab = tabActiveStyle.Render("Lookup")
	} else {
		historyTab = tabActiveStyle.Render("History")
	}
	title := titleStyle.Render("trilingua")
	return title + " " + lookupTab + " " + historyTab + "  " +
		helpStyle.Render("tab: switch view • ctrl+c: quit")
}
