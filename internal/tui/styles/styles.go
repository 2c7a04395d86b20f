package styles

import (
	"github.com/charmbracelet/lipgloss"

	"rag-console/internal/docs"
	"rag-console/internal/model"
)

type Styles struct {
	Title    lipgloss.Style
	Help     lipgloss.Style
	User     lipgloss.Style
	AI       lipgloss.Style
	Thinking lipgloss.Style
	Selected lipgloss.Style
	Meta     lipgloss.Style
	Notice   lipgloss.Style
	Loading  lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
}

func Default() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		User:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		AI:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Thinking: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244")),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Meta:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Notice:   lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245")),
		Loading:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// Sender picks the label style for a chat message.
func (s Styles) Sender(sender model.Sender) lipgloss.Style {
	if sender == model.SenderUser {
		return s.User
	}
	return s.AI
}

// Status renders a document-manager status line in its colour.
func (s Styles) Status(st docs.Status) string {
	switch st.Kind {
	case docs.StatusLoading:
		return s.Loading.Render(st.Text)
	case docs.StatusSuccess:
		return s.Success.Render(st.Text)
	case docs.StatusError:
		return s.Error.Render(st.Text)
	default:
		return st.Text
	}
}
