package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	noResultsToast  = "No movies found for your request."
	emptyQueryToast = "Please enter your search query."
)

// toast is a transient notification. seq counts every notification fired so
// that an expiry only hides the toast it was scheduled for.
type toast struct {
	text    string
	seq     int
	visible bool
}

func (t *toast) show(text string, d time.Duration) tea.Cmd {
	t.seq++
	t.text = text
	t.visible = true

	seq := t.seq
	return tea.Tick(d, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

func (t *toast) expire(seq int) {
	if seq == t.seq {
		t.visible = false
	}
}
