package routehandlers

import (
	"net/http"
)

type PageHandler struct {
	Views *Views
}

func NewPageHandler(views *Views) *PageHandler {
	return &PageHandler{Views: views}
}

func (h *PageHandler) HandleUsersPage(w http.ResponseWriter, r *http.Request) error {
	return h.Views.show(w, r, pageUsers, http.StatusOK, nil)
}

func (h *PageHandler) HandleAuthorsPage(w http.ResponseWriter, r *http.Request) error {
	return h.Views.show(w, r, pageAuthors, http.StatusOK, nil)
}

// HandleEbooksPage also reopens the add dialog on its asset step while a
// creation attempt is pending.
func (h *PageHandler) HandleEbooksPage(w http.ResponseWriter, r *http.Request) error {
	return h.Views.show(w, r, pageEbooks, http.StatusOK, nil)
}
