package docsview

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"rag-console/internal/docs"
	"rag-console/internal/tui/styles"
)

type mode int

const (
	modeBrowse mode = iota
	modeConfirm
	modeUpload
)

const helpText = "↑/↓ select • u upload • d delete • r refresh • q quit"

type listedMsg struct {
	listing docs.Listing
}

type outcomeMsg struct {
	outcome docs.Outcome
}

type Model struct {
	ctx     context.Context
	manager *docs.Manager

	listing docs.Listing
	loaded  bool
	status  docs.Status
	cursor  int

	mode     mode
	targetID string
	busy     int

	path    textinput.Model
	spinner spinner.Model
	styles  styles.Styles
}

func New(ctx context.Context, manager *docs.Manager) Model {
	ti := textinput.New()
	ti.Placeholder = "path/to/file.pdf"
	ti.Prompt = "File: "

	sp := spinner.New()
	sp.Spinner = spinner.Line

	return Model{
		ctx:     ctx,
		manager: manager,
		path:    ti,
		spinner: sp,
		styles:  styles.Default(),
	}
}

// Init fetches the list once, as a page load would.
func (m Model) Init() tea.Cmd {
	return m.list()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeConfirm:
			return m.handleConfirm(msg)
		case modeUpload:
			return m.handleUploadInput(msg)
		default:
			return m.handleBrowse(msg)
		}

	case listedMsg:
		m.setListing(msg.listing)
		return m, nil

	case outcomeMsg:
		m.busy--
		m.status = msg.outcome.Status
		if msg.outcome.Listing != nil {
			m.setListing(*msg.outcome.Listing)
		}
		return m, nil

	case spinner.TickMsg:
		if m.busy == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.listing.Entries()
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(entries)-1 {
			m.cursor++
		}
	case "r":
		return m, m.list()
	case "u":
		m.mode = modeUpload
		m.path.Reset()
		m.path.Focus()
	case "d":
		if m.cursor < len(entries) {
			m.mode = modeConfirm
			m.targetID = entries[m.cursor].ID
		}
	}
	return m, nil
}

// handleConfirm deletes only on an explicit yes; any other key declines.
func (m Model) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeBrowse
	id := m.targetID
	m.targetID = ""
	if msg.String() != "y" && msg.String() != "Y" {
		return m, nil
	}
	m.busy++
	manager, ctx := m.manager, m.ctx
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		return outcomeMsg{outcome: manager.Delete(ctx, id, docs.Confirmed)}
	})
}

func (m Model) handleUploadInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.path.Blur()
		return m, nil
	case tea.KeyEnter:
		m.mode = modeBrowse
		m.path.Blur()
		path := m.path.Value()
		if st, ok := docs.CheckSelection(path); !ok {
			m.status = st
			return m, nil
		}
		m.status = docs.Uploading
		m.busy++
		manager, ctx := m.manager, m.ctx
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			return outcomeMsg{outcome: manager.Upload(ctx, path)}
		})
	}
	var cmd tea.Cmd
	m.path, cmd = m.path.Update(msg)
	return m, cmd
}

func (m Model) list() tea.Cmd {
	manager, ctx := m.manager, m.ctx
	return func() tea.Msg {
		return listedMsg{listing: manager.List(ctx)}
	}
}

func (m *Model) setListing(l docs.Listing) {
	m.listing = l
	m.loaded = true
	if n := len(l.Entries()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Document Manager"))
	b.WriteString("\n\n")

	if m.status.Text != "" {
		if m.busy > 0 && m.status.Kind == docs.StatusLoading {
			b.WriteString(m.spinner.View() + " ")
		}
		b.WriteString(m.styles.Status(m.status))
		b.WriteString("\n\n")
	}

	switch {
	case !m.loaded:
		b.WriteString(m.styles.Notice.Render("Loading documents..."))
		b.WriteString("\n")
	case m.listing.Notice() != "":
		style := m.styles.Notice
		if m.listing.Err != nil {
			style = m.styles.Error
		}
		b.WriteString(style.Render(m.listing.Notice()))
		b.WriteString("\n")
	default:
		for i, entry := range m.listing.Entries() {
			cursor := "  "
			name := entry.Name
			if i == m.cursor {
				cursor = "> "
				name = m.styles.Selected.Render(name)
			}
			b.WriteString(cursor + name + "\n")
			b.WriteString("    " + m.styles.Meta.Render(entry.Meta) + "\n")
		}
	}
	b.WriteString("\n")

	switch m.mode {
	case modeConfirm:
		b.WriteString(docs.DeleteQuestion + " [y/N]")
	case modeUpload:
		b.WriteString(m.path.View() + "\n")
		b.WriteString(m.styles.Help.Render("enter upload • esc cancel"))
	default:
		b.WriteString(m.styles.Help.Render(helpText))
	}
	return b.String()
}

func (m Model) Listing() docs.Listing {
	return m.listing
}

func (m Model) Status() docs.Status {
	return m.status
}

// Run starts the document manager on the terminal.
func Run(ctx context.Context, manager *docs.Manager) error {
	p := tea.NewProgram(New(ctx, manager), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
