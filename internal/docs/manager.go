package docs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"rag-console/internal/apiclient"
	"rag-console/internal/model"
)

const DeleteQuestion = "Are you sure you want to delete this document and all its data?"

// Uploading is shown while an upload is in flight.
var Uploading = loading("Uploading and processing, please wait...")

type DocumentAPI interface {
	ListDocuments(ctx context.Context) ([]model.Document, error)
	UploadDocument(ctx context.Context, filename string, content io.Reader) (*model.UploadResult, error)
	DeleteDocument(ctx context.Context, id string) error
}

// Confirmer asks the user a yes/no question.
type Confirmer func(question string) bool

// Confirmed answers yes without asking, for callers that already asked.
func Confirmed(string) bool { return true }

// Outcome is the result of a mutation. Listing is set when the list was
// fetched again afterwards.
type Outcome struct {
	Status   Status
	Listing  *Listing
	Declined bool
}

type Manager struct {
	api    DocumentAPI
	logger zerolog.Logger
}

func NewManager(api DocumentAPI, logger zerolog.Logger) *Manager {
	return &Manager{api: api, logger: logger}
}

func (m *Manager) List(ctx context.Context) Listing {
	docs, err := m.api.ListDocuments(ctx)
	if err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) {
			err = fmt.Errorf("HTTP error! status: %d", apiErr.StatusCode)
		}
		m.logger.Warn().Err(err).Msg("list documents failed")
		return Listing{Err: err}
	}
	m.logger.Debug().Int("count", len(docs)).Msg("documents listed")
	return Listing{Documents: docs}
}

// CheckSelection reports the validation status when no file was chosen.
func CheckSelection(path string) (Status, bool) {
	if strings.TrimSpace(path) == "" {
		return failed("Please select a file to upload."), false
	}
	return Status{}, true
}

// Upload sends the file at path and lists again on success.
func (m *Manager) Upload(ctx context.Context, path string) Outcome {
	if st, ok := CheckSelection(path); !ok {
		return Outcome{Status: st}
	}
	path = strings.TrimSpace(path)

	f, err := os.Open(path)
	if err != nil {
		m.logger.Warn().Err(err).Str("path", path).Msg("open upload file failed")
		return Outcome{Status: failed("Error: " + err.Error())}
	}
	defer f.Close()

	res, err := m.api.UploadDocument(ctx, filepath.Base(path), f)
	if err != nil {
		m.logger.Warn().Err(err).Str("path", path).Msg("upload document failed")
		return Outcome{Status: failed("Error: " + errorText(err, "Upload failed."))}
	}
	m.logger.Info().Str("document_id", res.DocumentID).Str("filename", res.Filename).Msg("document uploaded")

	listing := m.List(ctx)
	return Outcome{
		Status:  success(fmt.Sprintf("Success! Document '%s' uploaded.", res.Filename)),
		Listing: &listing,
	}
}

// Delete asks confirm first; a declined question sends nothing.
func (m *Manager) Delete(ctx context.Context, id string, confirm Confirmer) Outcome {
	if confirm == nil || !confirm(DeleteQuestion) {
		return Outcome{Declined: true}
	}

	if err := m.api.DeleteDocument(ctx, id); err != nil {
		m.logger.Warn().Err(err).Str("document_id", id).Msg("delete document failed")
		return Outcome{Status: failed("Error: " + errorText(err, "Failed to delete document."))}
	}
	m.logger.Info().Str("document_id", id).Msg("document deleted")

	listing := m.List(ctx)
	return Outcome{
		Status:  success("Document deleted successfully."),
		Listing: &listing,
	}
}

func errorText(err error, fallback string) string {
	if errors.Is(err, apiclient.ErrTransport) {
		return err.Error()
	}
	return apiclient.DetailOr(err, fallback)
}
