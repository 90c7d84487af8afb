package routehandlers

import (
	"net/http"

	"github.com/coreybb/bookpot-admin/assets"
	"github.com/coreybb/bookpot-admin/session"
	"github.com/coreybb/bookpot-admin/webutil"
	"github.com/coreybb/bookpot-admin/workflow"
)

const (
	dialogCreateAuthor = "create-author"
	dialogEditAuthor   = "edit-author"
)

var authorFields = []string{"name", "email", "bio"}

type AuthorHandler struct {
	Workflows      *workflow.Service
	Views          *Views
	MaxUploadBytes int64
}

func NewAuthorHandler(workflows *workflow.Service, views *Views, maxUploadBytes int64) *AuthorHandler {
	return &AuthorHandler{Workflows: workflows, Views: views, MaxUploadBytes: maxUploadBytes}
}

func (h *AuthorHandler) authorForm(r *http.Request) workflow.AuthorForm {
	form := workflow.AuthorForm{
		Name:             r.FormValue("name"),
		Email:            r.FormValue("email"),
		Bio:              r.FormValue("bio"),
		CurrentThumbnail: r.FormValue("current_thumbnail"),
	}
	if src, ok := assets.FromForm(r.MultipartForm, "thumbnail"); ok {
		form.Thumbnail = src
	}
	return form
}

// HandleCreateAuthor registers an author from the add dialog.
// Route: POST /authors
func (h *AuthorHandler) HandleCreateAuthor(w http.ResponseWriter, r *http.Request) error {
	cred, ok := session.Gate(r)
	if !ok {
		http.Redirect(w, r, session.LoginPath, http.StatusSeeOther)
		return nil
	}
	if err := parseMultipart(r, w, h.MaxUploadBytes); err != nil {
		return err
	}

	out := h.Workflows.CreateAuthor(r.Context(), cred, h.authorForm(r))
	return h.Views.finish(w, r, out, pageAuthors, authorsPath, &webutil.Form{
		Dialog: dialogCreateAuthor,
		Values: formValues(r, authorFields...),
	})
}

// HandleUpdateAuthor replaces an author's name, email and bio.
// Route: POST /authors/{id}
func (h *AuthorHandler) HandleUpdateAuthor(w http.ResponseWriter, r *http.Request) error {
	cred, ok := session.Gate(r)
	if !ok {
		http.Redirect(w, r, session.LoginPath, http.StatusSeeOther)
		return nil
	}
	id, err := pathID(r, "author")
	if err != nil {
		return err
	}
	if err := parseMultipart(r, w, h.MaxUploadBytes); err != nil {
		return err
	}

	out := h.Workflows.UpdateAuthor(r.Context(), cred, id, h.authorForm(r))
	return h.Views.finish(w, r, out, pageAuthors, authorsPath, &webutil.Form{
		Dialog: dialogEditAuthor,
		ID:     id,
		Values: formValues(r, authorFields...),
	})
}
