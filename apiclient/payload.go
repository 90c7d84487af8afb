package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/coreybb/bookpot-admin/models"
)

// Payload is a request body that knows how to serialize itself.
type Payload interface {
	Encode() (body []byte, contentType string, err error)
}

type jsonPayload struct {
	v any
}

// JSON wraps v so it is sent as an application/json body.
func JSON(v any) Payload {
	return jsonPayload{v: v}
}

func (p jsonPayload) Encode() ([]byte, string, error) {
	b, err := json.Marshal(p.v)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal JSON payload: %w", err)
	}
	return b, contentTypeJSON, nil
}

type part struct {
	name   string
	value  string
	upload *models.Upload
}

// Multipart is an ordered multipart/form-data body. Parts are written in the
// order they were added.
type Multipart struct {
	parts []part
}

func NewMultipart() *Multipart {
	return &Multipart{}
}

// Field appends a plain form value.
func (m *Multipart) Field(name, value string) *Multipart {
	m.parts = append(m.parts, part{name: name, value: value})
	return m
}

// File appends a file part carrying the upload's filename and content type.
func (m *Multipart) File(name string, upload models.Upload) *Multipart {
	m.parts = append(m.parts, part{name: name, upload: &upload})
	return m
}

// AssetMultipart builds the contentType/filename/file body used by every
// asset endpoint.
func AssetMultipart(upload models.Upload) *Multipart {
	return NewMultipart().
		Field("contentType", upload.ContentType).
		Field("filename", upload.Filename).
		File("file", upload)
}

func (m *Multipart) Encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, p := range m.parts {
		if p.upload == nil {
			if err := w.WriteField(p.name, p.value); err != nil {
				return nil, "", fmt.Errorf("failed to write field %q: %w", p.name, err)
			}
			continue
		}
		if err := writeFilePart(w, p.name, *p.upload); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func writeFilePart(w *multipart.Writer, name string, upload models.Upload) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(name), escapeQuotes(upload.Filename)))
	contentType := upload.ContentType
	if contentType == "" {
		contentType = contentTypeOctetStream
	}
	h.Set("Content-Type", contentType)

	pw, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("failed to create file part %q: %w", name, err)
	}
	if _, err := pw.Write(upload.Data); err != nil {
		return fmt.Errorf("failed to write file part %q: %w", name, err)
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
