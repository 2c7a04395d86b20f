// Package chatview is the terminal chat window: an input line, a scrolling
// transcript and a spinner standing in for replies still in flight.
package chatview

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"rag-console/internal/chat"
	"rag-console/internal/model"
	"rag-console/internal/tui/styles"
)

const (
	placeholder  = "Ask me anything... (Enter to send, Esc to exit)"
	headerHeight = 2
	inputHeight  = 3
)

type replyMsg struct {
	text string
}

type Model struct {
	ctx       context.Context
	responder *chat.Responder

	transcript   chat.Transcript
	seenRevision int

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	styles   styles.Styles
	renderer *glamour.TermRenderer

	width  int
	height int
}

// New builds the chat window. renderer may be nil, in which case replies
// are shown as plain text.
func New(ctx context.Context, responder *chat.Responder, renderer *glamour.TermRenderer) Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:       ctx,
		responder: responder,
		input:     ti,
		viewport:  viewport.New(80, 20),
		spinner:   sp,
		styles:    styles.Default(),
		renderer:  renderer,
	}
}

// NewRenderer returns the markdown renderer used for AI replies.
func NewRenderer(width int) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var tiCmd, vpCmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleSubmit()
		case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}
		// typed keys belong to the input, not the viewport's j/k/space bindings
		m.input, tiCmd = m.input.Update(msg)
		return m, tiCmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-inputHeight, 1)
		m.input.Width = max(msg.Width-4, 10)
		m.refresh()

	case replyMsg:
		m.transcript.Resolve(msg.text)
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if m.transcript.Pending() == 0 {
			return m, nil
		}
		var spCmd tea.Cmd
		m.spinner, spCmd = m.spinner.Update(msg)
		m.refresh()
		return m, spCmd
	}

	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, vpCmd
}

// handleSubmit sends the current input. A blank input does nothing. Earlier
// prompts may still be waiting; each reply lands when it arrives.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	prompt, ok := m.transcript.Begin(m.input.Value())
	if !ok {
		return m, nil
	}
	m.input.Reset()
	m.refresh()

	cmds := []tea.Cmd{m.ask(prompt)}
	if m.transcript.Pending() == 1 {
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) ask(prompt string) tea.Cmd {
	ctx, responder := m.ctx, m.responder
	return func() tea.Msg {
		return replyMsg{text: responder.Reply(ctx, prompt)}
	}
}

// refresh redraws the transcript and follows it to the bottom after an insertion.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	if rev := m.transcript.Revision(); rev != m.seenRevision {
		m.seenRevision = rev
		m.viewport.GotoBottom()
	}
}

func (m Model) renderTranscript() string {
	var b strings.Builder
	for _, entry := range m.transcript.Entries() {
		if entry.Thinking {
			b.WriteString(m.spinner.View() + " " + m.styles.Thinking.Render(entry.Message.Text))
			b.WriteString("\n\n")
			continue
		}
		b.WriteString(m.renderMessage(entry.Message))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderMessage(msg model.ChatMessage) string {
	if msg.Sender == model.SenderUser {
		return m.styles.User.Render("You: ") + msg.Text
	}
	label := m.styles.Sender(msg.Sender).Render("AI: ")
	if m.renderer == nil {
		return label + msg.Text
	}
	rendered, err := m.renderer.Render(msg.Text)
	if err != nil {
		return label + msg.Text
	}
	return label + "\n" + strings.TrimSpace(rendered)
}

func (m Model) View() string {
	return m.styles.Title.Render("RAG Chat") + "\n\n" +
		m.viewport.View() + "\n\n" +
		m.input.View()
}

// Transcript exposes the current messages, placeholders excluded.
func (m Model) Transcript() []model.ChatMessage {
	return m.transcript.Messages()
}

// Run starts the chat window on the terminal.
func Run(ctx context.Context, responder *chat.Responder) error {
	// plain text is fine when no markdown style can be loaded
	renderer, _ := NewRenderer(80)
	p := tea.NewProgram(New(ctx, responder, renderer), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
