package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"notes-client/internal/controller"
	"notes-client/internal/controller/notify"
	"notes-client/internal/controller/summary"
	"notes-client/internal/model"
)

// stateChangedMsg операция контроллера завершилась, форму нужно синхронизировать
type stateChangedMsg struct{}

// summaryMsg результат запроса резюме
type summaryMsg struct {
	ID    string
	State summary.State
}

// notifyMsg изменение слота уведомления
type notifyMsg struct {
	Event notify.Event
}

func loadCmd(ctx context.Context, ctrl *controller.Controller) tea.Cmd {
	return func() tea.Msg {
		ctrl.LoadAll(ctx)
		return stateChangedMsg{}
	}
}

func submitCmd(ctx context.Context, ctrl *controller.Controller, draft model.Draft) tea.Cmd {
	return func() tea.Msg {
		ctrl.Submit(ctx, draft)
		return stateChangedMsg{}
	}
}

func confirmDeleteCmd(ctx context.Context, ctrl *controller.Controller) tea.Cmd {
	return func() tea.Msg {
		ctrl.ConfirmDelete(ctx)
		return stateChangedMsg{}
	}
}

func summarizeCmd(ctx context.Context, ctrl *controller.Controller, id string) tea.Cmd {
	return func() tea.Msg {
		return summaryMsg{ID: id, State: ctrl.RequestSummary(ctx, id)}
	}
}

// waitForEvent ждет следующего события очереди уведомлений; закрытый канал завершает подписку
func waitForEvent(ch <-chan notify.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return notifyMsg{Event: ev}
	}
}
