package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"notes-client/internal/controller/summary"
	"notes-client/internal/model"
)

const previewLength = 60

// View рисует экран
func (m Model) View() string {
	if id, pending := m.ctrl.PendingDelete(); pending {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirmView(id))
	}

	header := titleStyle.Render("Notes")
	if m.ctrl.Loading() {
		header += mutedStyle.Render("  loading...")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.formView(), " ", m.listView())

	sections := []string{header, body}
	if m.summaryID != "" {
		sections = append(sections, m.summaryView())
	}
	sections = append(sections, m.toastView(), m.helpView())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) formView() string {
	heading := "New note"
	if note, editing := m.ctrl.Editing(); editing {
		heading = "Editing: " + note.Title
	}
	hint := "ctrl+s create"
	if _, editing := m.ctrl.Editing(); editing {
		hint = "ctrl+s update · esc cancel"
	}
	return panelStyle.Width(formWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(heading),
		m.title.View(),
		m.content.View(),
		mutedStyle.Render(hint),
	))
}

func (m Model) listView() string {
	width := m.width - formWidth - 6
	if width < 30 {
		width = 30
	}

	notes := m.visible()
	lines := []string{m.search.View(), ""}
	if len(notes) == 0 {
		if m.search.Value() != "" {
			lines = append(lines, mutedStyle.Render("No notes match your search."))
		} else {
			lines = append(lines, mutedStyle.Render("No notes yet. Write one!"))
		}
	}
	for i, note := range notes {
		lines = append(lines, m.noteRow(note, i == m.cursor && m.focus == focusList, width))
	}
	return panelStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) noteRow(note model.Note, selected bool, width int) string {
	marker := "  "
	if selected {
		marker = cursorStyle.Render("> ")
	}

	title := note.Title
	if m.ctrl.IsEditing(note.ID) {
		title = editingStyle.Render(title)
	} else {
		title = headerStyle.Render(title)
	}

	meta := model.FormatDate(note.CreatedAt)
	if summary.Eligible(note.Content) {
		meta += "  [s] summarize"
	}

	preview := strings.ReplaceAll(note.Content, "\n", " ")
	if limit := min(previewLength, width-4); limit > 3 && len([]rune(preview)) > limit {
		preview = string([]rune(preview)[:limit-3]) + "..."
	}

	return fmt.Sprintf("%s%s\n  %s\n  %s", marker, title, mutedStyle.Render(preview), mutedStyle.Render(meta))
}

func (m Model) summaryView() string {
	st := m.ctrl.Summary(m.summaryID)
	var text string
	switch st.Status {
	case summary.Pending:
		text = mutedStyle.Render("Summarizing...")
	case summary.Ready:
		text = renderMarkdown(st.Text, m.width-4)
	case summary.Failed:
		text = errorStyle.Render(st.Text)
	default:
		text = mutedStyle.Render("Press s to summarize.")
	}
	return panelStyle.Width(m.width - 2).Render(headerStyle.Render("AI summary") + "\n" + text)
}

func (m Model) toastView() string {
	n, ok := m.ctrl.Notifier().Current()
	if !ok {
		return ""
	}
	return toastStyle(n.Kind).Render(n.Message)
}

func (m Model) confirmView(id string) string {
	title := id
	for _, note := range m.ctrl.Notes() {
		if note.ID == id {
			title = note.Title
			break
		}
	}
	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		headerStyle.Render("Delete note?"),
		"",
		fmt.Sprintf("%q will be permanently removed.", title),
		"",
		helpKeyStyle.Render("y")+helpDescStyle.Render(" delete   ")+helpKeyStyle.Render("n")+helpDescStyle.Render(" cancel"),
	))
}

func (m Model) helpView() string {
	pairs := [][2]string{
		{"↑/↓", "move"}, {"e", "edit"}, {"d", "delete"}, {"s", "summary"},
		{"n", "new"}, {"/", "search"}, {"r", "reload"}, {"tab", "focus"}, {"q", "quit"},
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, helpKeyStyle.Render(p[0])+" "+helpDescStyle.Render(p[1]))
	}
	return strings.Join(parts, "  ")
}
