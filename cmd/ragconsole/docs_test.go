package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"rag-console/internal/apiclient"
	"rag-console/internal/apitest"
	"rag-console/internal/docs"
	"rag-console/internal/model"
)

func newManager(t *testing.T) (*docs.Manager, *apitest.Server) {
	t.Helper()
	srv := apitest.New(t)
	return docs.NewManager(apiclient.New(srv.Root()), zerolog.Nop()), srv
}

func TestRunDocs_ListEmpty(t *testing.T) {
	m, _ := newManager(t)
	var out bytes.Buffer

	code := runDocs(context.Background(), m, []string{"list"}, strings.NewReader(""), &out)

	if code != 0 || strings.TrimSpace(out.String()) != docs.EmptyText {
		t.Fatalf("code=%d out=%q", code, out.String())
	}
}

func TestRunDocs_ListFailureExitsNonZero(t *testing.T) {
	m, srv := newManager(t)
	srv.Fail(apitest.RouteList, http.StatusInternalServerError, "down")
	var out bytes.Buffer

	code := runDocs(context.Background(), m, []string{"list"}, strings.NewReader(""), &out)

	if code != 1 || !strings.Contains(out.String(), "Could not load documents: HTTP error! status: 500") {
		t.Fatalf("code=%d out=%q", code, out.String())
	}
}

func TestRunDocs_UploadPrintsStatusAndList(t *testing.T) {
	m, _ := newManager(t)
	path := filepath.Join(t.TempDir(), "faq.md")
	if err := os.WriteFile(path, []byte("# FAQ"), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	var out bytes.Buffer

	code := runDocs(context.Background(), m, []string{"upload", path}, strings.NewReader(""), &out)

	if code != 0 {
		t.Fatalf("unexpected exit code %d: %s", code, out.String())
	}
	for _, want := range []string{docs.Uploading.Text, "Success! Document 'faq.md' uploaded.", "faq.md", "Size: 0.00 KB"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunDocs_UploadWithoutFile(t *testing.T) {
	m, srv := newManager(t)
	var out bytes.Buffer

	code := runDocs(context.Background(), m, []string{"upload"}, strings.NewReader(""), &out)

	if code != 1 || strings.TrimSpace(out.String()) != "Please select a file to upload." {
		t.Fatalf("code=%d out=%q", code, out.String())
	}
	if len(srv.Calls()) != 0 {
		t.Fatalf("expected no calls, got %s", srv)
	}
}

func TestRunDocs_DeleteAsksOnStdin(t *testing.T) {
	m, srv := newManager(t)
	srv.Seed(model.Document{ID: "a1", Filename: "a.pdf"})

	var out bytes.Buffer
	code := runDocs(context.Background(), m, []string{"delete", "a1"}, strings.NewReader("n\n"), &out)
	if code != 0 || !strings.Contains(out.String(), "Cancelled.") || srv.Count(apitest.RouteDelete) != 0 {
		t.Fatalf("decline: code=%d out=%q calls=%s", code, out.String(), srv)
	}

	out.Reset()
	code = runDocs(context.Background(), m, []string{"delete", "a1"}, strings.NewReader("y\n"), &out)
	if code != 0 || !strings.Contains(out.String(), "Document deleted successfully.") {
		t.Fatalf("confirm: code=%d out=%q", code, out.String())
	}
	if srv.Count(apitest.RouteDelete) != 1 || srv.Count(apitest.RouteList) != 1 {
		t.Fatalf("expected one delete and one refresh, got %s", srv)
	}
}

func TestRunDocs_DeleteYesSkipsQuestion(t *testing.T) {
	m, srv := newManager(t)
	srv.Seed(model.Document{ID: "a1", Filename: "a.pdf"})
	var out bytes.Buffer

	code := runDocs(context.Background(), m, []string{"delete", "-yes", "a1"}, strings.NewReader(""), &out)

	if code != 0 || strings.Contains(out.String(), docs.DeleteQuestion) {
		t.Fatalf("code=%d out=%q", code, out.String())
	}
	if len(srv.Documents()) != 0 {
		t.Fatalf("document should be gone")
	}
}
