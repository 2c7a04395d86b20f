package docs

import (
	"fmt"
	"time"

	"rag-console/internal/model"
)

const (
	EmptyText        = "No documents uploaded yet."
	uploadDateLayout = "1/2/2006, 3:04:05 PM"
)

// Listing is the result of one fetch. A failed fetch carries Err and no documents.
type Listing struct {
	Documents []model.Document
	Err       error
}

// Entry is a rendered document row. ID is the delete key.
type Entry struct {
	ID   string
	Name string
	Meta string
}

// Entries renders one row per document in local time.
func (l Listing) Entries() []Entry {
	return l.EntriesIn(time.Local)
}

func (l Listing) EntriesIn(loc *time.Location) []Entry {
	if l.Err != nil {
		return nil
	}
	out := make([]Entry, 0, len(l.Documents))
	for _, doc := range l.Documents {
		out = append(out, Entry{
			ID:   doc.ID,
			Name: doc.Filename,
			Meta: fmt.Sprintf("Uploaded on: %s | Size: %s", FormatUploadDate(doc.UploadDate, loc), FormatSize(doc.FileSize)),
		})
	}
	return out
}

// Notice is the line shown instead of entries, if any.
func (l Listing) Notice() string {
	switch {
	case l.Err != nil:
		return "Could not load documents: " + l.Err.Error()
	case len(l.Documents) == 0:
		return EmptyText
	default:
		return ""
	}
}

// FormatSize shows bytes as kilobytes with two decimals, halves rounded up.
func FormatSize(bytes int64) string {
	if bytes < 0 {
		return fmt.Sprintf("%.2f KB", float64(bytes)/1024)
	}
	hundredths := (bytes*100 + 512) / 1024
	return fmt.Sprintf("%d.%02d KB", hundredths/100, hundredths%100)
}

func FormatUploadDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(uploadDateLayout)
}
