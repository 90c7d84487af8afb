// Package assets turns a selected file into a models.Upload that the API
// client can put on the wire.
package assets

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/coreybb/bookpot-admin/models"
)

const genericContentType = "application/octet-stream"

// FileSource is a file selected by a staff member that has not been read yet.
type FileSource interface {
	// Name is the filename as selected. It doubles as the form value that
	// schema validation checks for presence.
	Name() string
	Load(ctx context.Context) (models.Upload, error)
}

type formFile struct {
	header *multipart.FileHeader
}

// FormFile wraps a file part of a parsed browser form.
func FormFile(header *multipart.FileHeader) FileSource {
	return formFile{header: header}
}

func (f formFile) Name() string {
	return f.header.Filename
}

func (f formFile) Load(ctx context.Context) (models.Upload, error) {
	if err := ctx.Err(); err != nil {
		return models.Upload{}, err
	}
	file, err := f.header.Open()
	if err != nil {
		return models.Upload{}, fmt.Errorf("failed to open uploaded file %q: %w", f.header.Filename, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return models.Upload{}, fmt.Errorf("failed to read uploaded file %q: %w", f.header.Filename, err)
	}

	return models.Upload{
		Filename:    f.header.Filename,
		ContentType: contentType(f.header.Header.Get("Content-Type"), data),
		Data:        data,
	}, nil
}

// MemoryFile is a FileSource over bytes already in memory.
type MemoryFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (m MemoryFile) Name() string {
	return m.Filename
}

func (m MemoryFile) Load(ctx context.Context) (models.Upload, error) {
	if err := ctx.Err(); err != nil {
		return models.Upload{}, err
	}
	return models.Upload{
		Filename:    m.Filename,
		ContentType: contentType(m.ContentType, m.Data),
		Data:        m.Data,
	}, nil
}

// contentType keeps a declared type unless the browser sent nothing useful,
// in which case the type is sniffed from the bytes.
func contentType(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != genericContentType {
		return declared
	}
	return mimetype.Detect(data).String()
}

// FromForm returns the file selected for field, if any. Browsers submit an
// empty part for file inputs left untouched; those count as not selected.
func FromForm(form *multipart.Form, field string) (FileSource, bool) {
	if form == nil {
		return nil, false
	}
	headers := form.File[field]
	if len(headers) == 0 || headers[0].Filename == "" || headers[0].Size == 0 {
		return nil, false
	}
	return FormFile(headers[0]), true
}
