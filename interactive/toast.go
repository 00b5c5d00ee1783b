package interactive

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ToastType defines the type of toast notification
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastSuccess
	ToastWarning
	ToastError
)

const (
	toastDuration = 4 * time.Second
)

type Toast struct {
	ID      int64
	Type    ToastType
	Message string
}

// ToastMsg is sent to trigger a new toast
type ToastMsg struct {
	Type     ToastType
	Message  string
	Duration time.Duration
}

// ToastTimeoutMsg is sent when a toast expires
type ToastTimeoutMsg struct {
	ID int64
}

func ShowToast(msg string, t ToastType) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{
			Type:     t,
			Message:  msg,
			Duration: toastDuration,
		}
	}
}

func ShowErrorToast(msg string) tea.Cmd {
	return ShowToast(msg, ToastError)
}

func ShowSuccessToast(msg string) tea.Cmd {
	return ShowToast(msg, ToastSuccess)
}

func ShowInfoToast(msg string) tea.Cmd {
	return ShowToast(msg, ToastInfo)
}

// toasts keeps the visible notifications, oldest first.
type toasts struct {
	next  int64
	items []Toast
}

func (it *toasts) push(msg ToastMsg) tea.Cmd {
	it.next += 1
	id := it.next
	it.items = append(it.items, Toast{ID: id, Type: msg.Type, Message: msg.Message})
	if len(it.items) > 3 {
		it.items = it.items[len(it.items)-3:]
	}
	duration := msg.Duration
	if duration <= 0 {
		duration = toastDuration
	}
	return tea.Tick(duration, func(time.Time) tea.Msg {
		return ToastTimeoutMsg{ID: id}
	})
}

func (it *toasts) expire(id int64) {
	kept := it.items[:0]
	for _, toast := range it.items {
		if toast.ID != id {
			kept = append(kept, toast)
		}
	}
	it.items = kept
}

func (it *toasts) render(styles *Styles) []string {
	result := make([]string, 0, len(it.items))
	for _, toast := range it.items {
		style := styles.ToastInfo
		switch toast.Type {
		case ToastSuccess:
			style = styles.ToastSuccess
		case ToastWarning:
			style = styles.ToastWarning
		case ToastError:
			style = styles.ToastError
		}
		result = append(result, style.Render(toast.Message))
	}
	return result
}
