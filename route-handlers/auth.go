package routehandlers

import (
	"net/http"

	"github.com/coreybb/bookpot-admin/session"
	"github.com/coreybb/bookpot-admin/webutil"
	"github.com/coreybb/bookpot-admin/workflow"
)

const dialogLogin = "login"

type AuthHandler struct {
	Workflows *workflow.Service
	Views     *Views
}

func NewAuthHandler(workflows *workflow.Service, views *Views) *AuthHandler {
	return &AuthHandler{Workflows: workflows, Views: views}
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, form *webutil.Form, out workflow.Outcome) error {
	notice := out.Notice
	if notice == nil {
		notice = webutil.PopFlash(w, r)
	}
	return h.Views.Renderer.Render(w, status, pageLogin, webutil.View{
		Title:  pageTitles[pageLogin],
		Active: pageLogin,
		Notice: notice,
		Form:   form,
	})
}

// HandleLoginPage renders the sign-in form without the dashboard shell.
// Route: GET /login
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) error {
	return h.renderLogin(w, r, http.StatusOK, nil, workflow.Outcome{})
}

// HandleLogin signs the staff member in and relays the backend session
// cookie to the browser.
// Route: POST /login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return webutil.ErrBadRequestWrap("Invalid form submission", err)
	}

	out := h.Workflows.Login(r.Context(), workflow.LoginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	})
	form := &webutil.Form{
		Dialog: dialogLogin,
		Values: map[string]string{"username": r.PostFormValue("username")},
		Errors: out.FieldErrors,
	}

	switch {
	case out.Invalid():
		return h.renderLogin(w, r, http.StatusUnprocessableEntity, form, out)
	case out.Failed():
		return h.renderLogin(w, r, http.StatusUnauthorized, form, out)
	}

	relayCookies(w, out.Cookies)
	http.Redirect(w, r, usersPath, http.StatusSeeOther)
	return nil
}

// HandleLogout ends the session at the backend and locally.
// Route: POST /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) error {
	cred, ok := session.Gate(r)
	if !ok {
		http.Redirect(w, r, session.LoginPath, http.StatusSeeOther)
		return nil
	}

	out := h.Workflows.Logout(r.Context(), cred)
	if err := h.Views.forgetCreationState(r); err != nil {
		return err
	}
	relayCookies(w, out.Cookies)
	http.SetCookie(w, session.Expire(h.Views.SecureCookies))
	http.Redirect(w, r, session.LoginPath, http.StatusSeeOther)
	return nil
}
