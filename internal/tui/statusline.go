package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusLineInfo is what the bottom line shows.
type StatusLineInfo struct {
	Position string // Focused column, e.g. "2/3 In Progress"
	KeyHints []KeyHint
	Pending  int // In-flight assistant requests
}

// KeyHint pairs a key with a short description.
type KeyHint struct {
	Key  string
	Desc string
}

// StatusLine renders key hints on the left and board position on the right.
type StatusLine struct {
	styles *Styles
	width  int
}

// NewStatusLine creates a StatusLine of the given width.
func NewStatusLine(width int, styles *Styles) *StatusLine {
	return &StatusLine{width: width, styles: styles}
}

// Render renders info as a single line. Hints are cut first when space runs out.
func (s *StatusLine) Render(info StatusLineInfo) string {
	hints := make([]string, 0, len(info.KeyHints))
	for _, h := range info.KeyHints {
		hints = append(hints, s.styles.FooterKey.Render(h.Key)+" "+h.Desc)
	}
	left := strings.Join(hints, "  ")

	var right []string
	if info.Pending > 0 {
		right = append(right, lipgloss.NewStyle().Foreground(Colors.Warning).Render(fmt.Sprintf("ai:%d", info.Pending)))
	}
	if info.Position != "" {
		right = append(right, s.styles.Footer.Render(info.Position))
	}
	rightText := strings.Join(right, "  ")

	room := s.width - lipgloss.Width(rightText) - 2
	if lipgloss.Width(left) > room {
		left = lipgloss.NewStyle().MaxWidth(max(room-1, 0)).Render(left)
		if room > 0 {
			left += "…"
		}
	}

	gap := max(s.width-lipgloss.Width(left)-lipgloss.Width(rightText), 1)
	return s.styles.Footer.Width(s.width).Render(left + strings.Repeat(" ", gap) + rightText)
}

// GetStatusInfo returns status line info for the TUI model.
func (m *Model) GetStatusInfo() StatusLineInfo {
	info := StatusLineInfo{Pending: m.pending}

	if col := m.SelectedColumn(); col != nil {
		info.Position = fmt.Sprintf("%d/%d %s", m.col+1, len(m.state.Board), col.Title)
	}

	switch m.mode { //nolint:exhaustive // Dialog modes render their own hints
	case ModeNormal:
		info.KeyHints = []KeyHint{
			{Key: "h/j/k/l", Desc: "nav"},
			{Key: "H/L", Desc: "move"},
			{Key: "n", Desc: "new"},
			{Key: "enter", Desc: "details"},
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		}
	case ModeDetail:
		info.KeyHints = []KeyHint{
			{Key: "j/k", Desc: "scroll"},
			{Key: "esc", Desc: "back"},
		}
	default:
		info.KeyHints = nil
	}

	return info
}
