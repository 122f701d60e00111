// Package tui терминальный интерфейс клиента заметок на bubbletea.
//
// Model не хранит собственной копии коллекции: все данные читаются из
// controller.Controller, а сетевые операции выполняются в tea.Cmd.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"notes-client/internal/controller"
	"notes-client/internal/controller/notify"
	"notes-client/internal/controller/summary"
	"notes-client/internal/model"
)

type focusArea int

const (
	focusList focusArea = iota
	focusTitle
	focusContent
	focusSearch
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	formWidth     = 40
)

// Model состояние экрана
type Model struct {
	ctx    context.Context
	ctrl   *controller.Controller
	events <-chan notify.Event

	title   textinput.Model
	content textarea.Model
	search  textinput.Model

	focus     focusArea
	cursor    int
	summaryID string

	width  int
	height int
}

// New создает экран поверх контроллера и подписывается на уведомления
func New(ctx context.Context, ctrl *controller.Controller) Model {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = model.MaxTitleLength
	title.Width = formWidth - 4

	content := textarea.New()
	content.Placeholder = "Write your note..."
	content.CharLimit = 0
	content.ShowLineNumbers = false
	content.SetWidth(formWidth - 2)
	content.SetHeight(8)

	search := textinput.New()
	search.Placeholder = "Search notes"
	search.Prompt = "/ "
	search.Width = formWidth

	return Model{
		ctx:     ctx,
		ctrl:    ctrl,
		events:  ctrl.Notifier().Subscribe(),
		title:   title,
		content: content,
		search:  search,
		width:   defaultWidth,
		height:  defaultHeight,
	}
}

// Init загружает коллекцию и начинает слушать уведомления
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadCmd(m.ctx, m.ctrl), waitForEvent(m.events), textinput.Blink)
}

// Update обрабатывает сообщения bubbletea
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case stateChangedMsg:
		m.syncForm()
		m.clampCursor()
		return m, nil

	case summaryMsg:
		return m, nil

	case notifyMsg:
		return m, waitForEvent(m.events)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		if _, pending := m.ctrl.PendingDelete(); pending {
			return m.updateConfirm(msg)
		}
		if m.focus == focusList {
			return m.updateList(msg)
		}
		return m.updateInput(msg)
	}

	return m.forward(msg)
}

func (m Model) quit() tea.Cmd {
	m.ctrl.Notifier().Unsubscribe(m.events)
	return tea.Quit
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		return m, confirmDeleteCmd(m.ctx, m.ctrl)
	case "n", "esc", "q":
		m.ctrl.CancelDelete()
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	notes := m.visible()
	switch msg.String() {
	case "q":
		return m, m.quit()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(notes)-1 {
			m.cursor++
		}
	case "tab":
		cmd := m.focusTo(focusTitle)
		return m, cmd
	case "shift+tab":
		cmd := m.focusTo(focusSearch)
		return m, cmd
	case "/":
		cmd := m.focusTo(focusSearch)
		return m, cmd
	case "n":
		m.ctrl.CancelEdit()
		m.syncForm()
		cmd := m.focusTo(focusTitle)
		return m, cmd
	case "r":
		return m, loadCmd(m.ctx, m.ctrl)
	case "esc":
		if m.summaryID != "" {
			m.summaryID = ""
			return m, nil
		}
		m.cancelEdit()
	case "e", "enter":
		if note, ok := m.selected(notes); ok {
			m.ctrl.BeginEdit(note)
			m.syncForm()
			cmd := m.focusTo(focusTitle)
			return m, cmd
		}
	case "d", "delete":
		if note, ok := m.selected(notes); ok {
			m.ctrl.RequestDelete(note.ID)
		}
	case "s":
		if note, ok := m.selected(notes); ok && summary.Eligible(note.Content) {
			m.summaryID = note.ID
			return m, summarizeCmd(m.ctx, m.ctrl, note.ID)
		}
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.focus != focusSearch {
			m.cancelEdit()
		}
		cmd := m.focusTo(focusList)
		return m, cmd
	case "tab":
		cmd := m.focusTo((m.focus + 1) % 4)
		return m, cmd
	case "shift+tab":
		cmd := m.focusTo((m.focus + 3) % 4)
		return m, cmd
	case "ctrl+s":
		if m.focus == focusSearch {
			return m, nil
		}
		return m, submitCmd(m.ctx, m.ctrl, m.formDraft())
	case "enter":
		switch m.focus {
		case focusTitle:
			cmd := m.focusTo(focusContent)
			return m, cmd
		case focusSearch:
			cmd := m.focusTo(focusList)
			return m, cmd
		}
	}
	return m.forward(msg)
}

// forward передает сообщение полю ввода в фокусе
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		m.title, cmd = m.title.Update(msg)
		m.ctrl.SetDraft(m.formDraft())
	case focusContent:
		m.content, cmd = m.content.Update(msg)
		m.ctrl.SetDraft(m.formDraft())
	case focusSearch:
		m.search, cmd = m.search.Update(msg)
		m.clampCursor()
	}
	return m, cmd
}

func (m *Model) focusTo(f focusArea) tea.Cmd {
	m.title.Blur()
	m.content.Blur()
	m.search.Blur()
	m.focus = f
	switch f {
	case focusTitle:
		return m.title.Focus()
	case focusContent:
		return m.content.Focus()
	case focusSearch:
		return m.search.Focus()
	}
	return nil
}

// cancelEdit отменяет редактирование; черновик новой заметки сохраняется
func (m *Model) cancelEdit() {
	if _, editing := m.ctrl.Editing(); editing {
		m.ctrl.CancelEdit()
		m.syncForm()
	}
}

func (m *Model) syncForm() {
	d := m.ctrl.Draft()
	if m.title.Value() != d.Title {
		m.title.SetValue(d.Title)
	}
	if m.content.Value() != d.Content {
		m.content.SetValue(d.Content)
	}
}

func (m *Model) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) formDraft() model.Draft {
	return model.Draft{Title: m.title.Value(), Content: m.content.Value()}
}

func (m Model) visible() []model.Note {
	return m.ctrl.Search(m.search.Value())
}

func (m Model) selected(notes []model.Note) (model.Note, bool) {
	if m.cursor < 0 || m.cursor >= len(notes) {
		return model.Note{}, false
	}
	return notes[m.cursor], true
}

// Run запускает интерфейс в альтернативном экране
func Run(ctx context.Context, ctrl *controller.Controller) error {
	p := tea.NewProgram(New(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
