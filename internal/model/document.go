package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Document is the metadata the backend keeps for an uploaded file.
type Document struct {
	ID         string    `json:"_id"`
	Filename   string    `json:"filename"`
	UploadDate time.Time `json:"upload_date"`
	FileSize   int64     `json:"file_size"`
}

// UploadResult is returned by the upload endpoint on success.
type UploadResult struct {
	Message    string `json:"message"`
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
}

// ErrorBody is the error payload of every non-2xx response.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// naive timestamps carry no zone; the backend writes them in UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func (d *Document) UnmarshalJSON(data []byte) error {
	type alias Document
	var raw struct {
		alias
		UploadDate string `json:"upload_date"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = Document(raw.alias)

	uploaded, err := ParseTimestamp(raw.UploadDate)
	if err != nil {
		return fmt.Errorf("parse upload_date failed: %w", err)
	}
	d.UploadDate = uploaded
	return nil
}

// ParseTimestamp accepts RFC 3339 as well as zone-less ISO 8601 values.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", value)
}
