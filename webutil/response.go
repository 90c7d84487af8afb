package webutil

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
)

var errorPage = template.Must(template.New("error").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Status}}</title></head>
<body>
<h1>{{.Status}}</h1>
<p>{{.Message}}</p>
<p><a href="/">Back to the dashboard</a></p>
</body>
</html>
`))

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]string{"error": message})
}

func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("ERROR: Failed to marshal JSON response: %v", err)
		w.Header().Set(HeaderContentType, ContentTypeJSONUTF8)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal Server Error"}`))
		return
	}

	w.Header().Set(HeaderContentType, ContentTypeJSONUTF8)
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

// RespondWithHTML writes an already rendered page.
func RespondWithHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set(HeaderContentType, ContentTypeHTMLUTF8)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// RespondWithErrorPage writes a standalone HTML error page. It does not use
// the dashboard layout, which may be what failed.
func RespondWithErrorPage(w http.ResponseWriter, code int, message string) {
	var buf bytes.Buffer
	err := errorPage.Execute(&buf, struct {
		Status  string
		Message string
	}{Status: http.StatusText(code), Message: message})
	if err != nil {
		log.Printf("ERROR: Failed to render error page: %v", err)
		w.Header().Set(HeaderContentType, ContentTypeTextPlainUTF8)
		w.WriteHeader(code)
		_, _ = w.Write([]byte(message))
		return
	}
	RespondWithHTML(w, code, buf.Bytes())
}

func HasResponseWriterSentHeader(w http.ResponseWriter) bool {
	return w.Header().Get(HeaderContentType) != ""
}
