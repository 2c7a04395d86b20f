package docsview

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"rag-console/internal/apiclient"
	"rag-console/internal/apitest"
	"rag-console/internal/docs"
	"rag-console/internal/model"
)

func newModel(t *testing.T, seed ...model.Document) (Model, *apitest.Server) {
	t.Helper()
	srv := apitest.New(t)
	srv.Seed(seed...)
	manager := docs.NewManager(apiclient.New(srv.Root()), zerolog.Nop())
	m := New(context.Background(), manager)
	return apply(t, m, m.Init()), srv
}

// apply runs cmd and feeds every resulting message except timer ticks back
// into the model.
func apply(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = apply(t, m, c)
		}
		return m
	case listedMsg, outcomeMsg:
		next, more := m.Update(msg)
		return apply(t, next.(Model), more)
	default:
		return m
	}
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(k)
		m = apply(t, next.(Model), cmd)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInit_ListsOnStart(t *testing.T) {
	m, srv := newModel(t)

	if srv.Count(apitest.RouteList) != 1 {
		t.Fatalf("expected one list call on start, got %s", srv)
	}
	if !strings.Contains(m.View(), docs.EmptyText) {
		t.Fatalf("expected empty-state text in view:\n%s", m.View())
	}
}

func TestDelete_ConfirmWithY(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	m, srv := newModel(t,
		model.Document{ID: "a1", Filename: "a.pdf", UploadDate: day, FileSize: 10},
		model.Document{ID: "b2", Filename: "b.pdf", UploadDate: day, FileSize: 20},
	)

	m = press(t, m, runes("j"), runes("d"))
	if m.mode != modeConfirm || !strings.Contains(m.View(), docs.DeleteQuestion) {
		t.Fatalf("expected confirmation prompt")
	}
	m = press(t, m, runes("y"))

	if srv.Count(apitest.RouteDelete) != 1 || srv.Count(apitest.RouteList) != 2 {
		t.Fatalf("expected one delete and one refresh, got %s", srv)
	}
	if m.Status().Text != "Document deleted successfully." {
		t.Fatalf("unexpected status %+v", m.Status())
	}
	docsLeft := m.Listing().Documents
	if len(docsLeft) != 1 || docsLeft[0].ID != "a1" {
		t.Fatalf("expected b2 to be gone, got %+v", docsLeft)
	}
	if m.cursor != 0 {
		t.Fatalf("cursor should be clamped, got %d", m.cursor)
	}
}

func TestDelete_AnyOtherKeyDeclines(t *testing.T) {
	m, srv := newModel(t, model.Document{ID: "a1", Filename: "a.pdf"})

	m = press(t, m, runes("d"), runes("n"))

	if srv.Count(apitest.RouteDelete) != 0 {
		t.Fatalf("declined delete must not send a request")
	}
	if m.mode != modeBrowse || len(m.Listing().Documents) != 1 {
		t.Fatalf("unexpected state after decline")
	}
}

func TestUpload_EmptyPathShowsValidation(t *testing.T) {
	m, srv := newModel(t)

	m = press(t, m, runes("u"), tea.KeyMsg{Type: tea.KeyEnter})

	if m.Status().Kind != docs.StatusError || m.Status().Text != "Please select a file to upload." {
		t.Fatalf("unexpected status %+v", m.Status())
	}
	if srv.Count(apitest.RouteUpload) != 0 {
		t.Fatalf("expected no upload call")
	}
}

func TestUpload_ShowsLoadingThenSuccess(t *testing.T) {
	m, srv := newModel(t)
	path := filepath.Join(t.TempDir(), "manual.txt")
	if err := os.WriteFile(path, []byte("manual"), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	m = press(t, m, runes("u"))
	m.path.SetValue(path)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if m.Status() != docs.Uploading {
		t.Fatalf("expected loading status before the call completes, got %+v", m.Status())
	}
	m = apply(t, m, cmd)

	if m.Status().Text != "Success! Document 'manual.txt' uploaded." {
		t.Fatalf("unexpected status %+v", m.Status())
	}
	if srv.Count(apitest.RouteList) != 2 || len(m.Listing().Documents) != 1 {
		t.Fatalf("expected refreshed list with the upload, got %s", srv)
	}
}
