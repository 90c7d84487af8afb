package routehandlers

import (
	"net/http"

	"github.com/coreybb/bookpot-admin/assets"
	"github.com/coreybb/bookpot-admin/models"
	"github.com/coreybb/bookpot-admin/session"
	"github.com/coreybb/bookpot-admin/webutil"
	"github.com/coreybb/bookpot-admin/workflow"
)

const (
	dialogCreateEbook = "create-ebook"
	dialogEditEbook   = "edit-ebook"
)

var ebookFields = []string{"title", "intro", "price", "authorId"}

type EbookHandler struct {
	Workflows      *workflow.Service
	Views          *Views
	MaxUploadBytes int64
}

func NewEbookHandler(workflows *workflow.Service, views *Views, maxUploadBytes int64) *EbookHandler {
	return &EbookHandler{Workflows: workflows, Views: views, MaxUploadBytes: maxUploadBytes}
}

func metadataForm(r *http.Request) workflow.EbookMetadataForm {
	return workflow.EbookMetadataForm{
		Title:    r.FormValue("title"),
		Intro:    r.FormValue("intro"),
		Price:    r.FormValue("price"),
		AuthorID: r.FormValue("authorId"),
	}
}

func selectedAssets(r *http.Request) workflow.AssetFiles {
	files := workflow.AssetFiles{}
	for _, kind := range models.AssetKinds {
		if src, ok := assets.FromForm(r.MultipartForm, string(kind)); ok {
			files[kind] = src
		}
	}
	return files
}

// HandleCreateEbook is the first step of the add dialog: the ebook record.
// Route: POST /ebooks
func (h *EbookHandler) HandleCreateEbook(w http.ResponseWriter, r *http.Request) error {
	cred, ok := session.Gate(r)
	if !ok {
		http.Redirect(w, r, session.LoginPath, http.StatusSeeOther)
		return nil
	}
	if err := parseMultipart(r, w, h.MaxUploadBytes); err != nil {
		return err
	}
	state, err := h.Views.creationState(r)
	if err != nil {
		return err
	}

	out := h.Workflows.SubmitMetadata(r.Context(), cred, state, metadataForm(r))
	return h.Views.finish(w, r, out, pageEbooks, ebooksPath, &webutil.Form{
		Dialog: dialogCreateEbook,
		Values: formValues(r, ebookFields...),
	})
}

// HandleAttachEbookAssets is the second step of the add dialog: the four
// files of the ebook created in the first step.
// Route: POST /ebooks/assets
func (h *EbookHandler) HandleAttachEbookAssets(w http.ResponseWriter, r *http.Request) error {
	cred, ok := session.Gate(r)
	if !ok {
		http.Redirect(w, r, session.LoginPath, http.StatusSeeOther)
		return nil
	}
	if err := parseMultipart(r, w, h.MaxUploadBytes); err != nil {
		return err
	}
	state, err := h.Views.creationState(r)
	if err != nil {
		return err
	}

	out := h.Workflows.SubmitAssets(r.Context(), cred, state, selectedAssets(r))
	return h.Views.finish(w, r, out, pageEbooks, ebooksPath, &webutil.Form{
		Dialog: dialogCreateEbook,
	})
}

// HandleUpdateEbook replaces an ebook's details and any newly chosen files.
// Route: POST /ebooks/{id}
func (h *EbookHandler) HandleUpdateEbook(w http.ResponseWriter, r *http.Request) error {
	cred, ok := session.Gate(r)
	if !ok {
		http.Redirect(w, r, session.LoginPath, http.StatusSeeOther)
		return nil
	}
	id, err := pathID(r, "ebook")
	if err != nil {
		return err
	}
	if err := parseMultipart(r, w, h.MaxUploadBytes); err != nil {
		return err
	}

	current := make(map[models.AssetKind]string, len(models.AssetKinds))
	for _, kind := range models.AssetKinds {
		current[kind] = r.FormValue("current_" + string(kind))
	}

	out := h.Workflows.UpdateEbook(r.Context(), cred, id, workflow.EbookUpdateForm{
		EbookMetadataForm: metadataForm(r),
		Files:             selectedAssets(r),
		CurrentAssets:     current,
	})
	return h.Views.finish(w, r, out, pageEbooks, ebooksPath, &webutil.Form{
		Dialog: dialogEditEbook,
		ID:     id,
		Values: formValues(r, ebookFields...),
	})
}
