package webutil

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/coreybb/bookpot-admin/models"
)

const layoutTemplate = "templates/layout.html"

// Form carries a submitted form back into the page when validation failed,
// or selects which dialog to reopen.
type Form struct {
	// Dialog names the dialog the form belongs to, e.g. "create-author".
	Dialog string
	// ID is the record being edited, 0 for creation dialogs.
	ID     int64
	Values map[string]string
	Errors map[string]string
}

// View is everything a page template receives.
type View struct {
	Title  string
	Active string
	// Shell is false on the login page, which renders without the sidebar.
	Shell  bool
	Notice *models.Notice
	Form   *Form
	Data   any
}

// Renderer executes the embedded page templates. Each page is parsed
// together with the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer(fsys fs.FS, pages ...string) (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New(name).Funcs(templateFuncs).ParseFS(fsys, layoutTemplate, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %q: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render executes the page into a buffer first so a template error never
// leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, view View) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", view); err != nil {
		return fmt.Errorf("failed to render page %q: %w", page, err)
	}
	RespondWithHTML(w, status, buf.Bytes())
	return nil
}

var plainTextPolicy = bluemonday.StrictPolicy()

// PlainText strips markup from stored free text, such as an author bio, for
// display in listings. The stored value itself is never rewritten. The
// policy escapes what it keeps, so entities are decoded again and left to
// html/template to escape once.
func PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(plainTextPolicy.Sanitize(s)))
}

var templateFuncs = template.FuncMap{
	"plain": PlainText,
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	},
	"assetKinds": func() []models.AssetKind {
		return models.AssetKinds
	},
	"assetURL": func(e models.Ebook, kind models.AssetKind) string {
		return e.AssetURL(kind)
	},
	"isOpen": func(f *Form, dialog string, id int64) bool {
		return f != nil && f.Dialog == dialog && f.ID == id
	},
	"formValue": func(f *Form, dialog string, id int64, field, fallback string) string {
		if f == nil || f.Dialog != dialog || f.ID != id {
			return fallback
		}
		if v, ok := f.Values[field]; ok {
			return v
		}
		return fallback
	},
	"fieldError": func(f *Form, dialog string, id int64, field string) string {
		if f == nil || f.Dialog != dialog || f.ID != id {
			return ""
		}
		return f.Errors[field]
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}
