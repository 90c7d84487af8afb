package routehandlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/coreybb/bookpot-admin/pages"
	"github.com/coreybb/bookpot-admin/session"
	"github.com/coreybb/bookpot-admin/webutil"
	"github.com/coreybb/bookpot-admin/workflow"
)

const (
	pageLogin   = "login"
	pageUsers   = "users"
	pageAuthors = "authors"
	pageEbooks  = "ebooks"

	usersPath   = "/"
	authorsPath = "/authors"
	ebooksPath  = "/ebooks"
)

var pageTitles = map[string]string{
	pageLogin:   "Sign in",
	pageUsers:   "Users",
	pageAuthors: "Authors",
	pageEbooks:  "Ebooks",
}

// EbooksView is the ebooks page data plus the staff member's pending
// creation attempt.
type EbooksView struct {
	pages.EbooksData
	AwaitingAssets bool
	PendingID      int64
}

// Views loads and renders dashboard pages. It is shared by the page and
// workflow handlers so a rejected form can be shown again in place.
type Views struct {
	Loader        *pages.Loader
	Renderer      *webutil.Renderer
	States        *workflow.StateStore
	SecureCookies bool
}

// creationState returns the ebook creation state of the request's session.
// Tokens are hashed before being used as keys.
func (v *Views) creationState(r *http.Request) (*workflow.CreationState, error) {
	token, ok := session.Token(r)
	if !ok {
		return nil, webutil.ErrUnauthorized("")
	}
	key, err := webutil.GenerateHash(token)
	if err != nil {
		return nil, fmt.Errorf("failed to derive session key: %w", err)
	}
	return v.States.For(key), nil
}

func (v *Views) forgetCreationState(r *http.Request) error {
	token, ok := session.Token(r)
	if !ok {
		return nil
	}
	key, err := webutil.GenerateHash(token)
	if err != nil {
		return fmt.Errorf("failed to derive session key: %w", err)
	}
	v.States.Forget(key)
	return nil
}

// show loads the page data behind the session gate and renders it.
func (v *Views) show(w http.ResponseWriter, r *http.Request, page string, status int, form *webutil.Form) error {
	var (
		res pages.Result
		err error
	)
	switch page {
	case pageUsers:
		res, err = v.Loader.Users(r)
	case pageAuthors:
		res, err = v.Loader.Authors(r)
	case pageEbooks:
		res, err = v.Loader.Ebooks(r)
	default:
		return fmt.Errorf("no loader for page %q", page)
	}
	if err != nil {
		return webutil.ErrBadGatewayWrap("Failed to load page data", err)
	}
	if res.Redirect != "" {
		http.Redirect(w, r, res.Redirect, http.StatusSeeOther)
		return nil
	}

	data := res.Data
	if page == pageEbooks {
		state, err := v.creationState(r)
		if err != nil {
			return err
		}
		step, pendingID := state.Snapshot()
		data = EbooksView{
			EbooksData:     res.Data.(pages.EbooksData),
			AwaitingAssets: step == workflow.StepAssets,
			PendingID:      pendingID,
		}
	}

	return v.Renderer.Render(w, status, page, webutil.View{
		Title:  pageTitles[page],
		Active: page,
		Shell:  true,
		Notice: webutil.PopFlash(w, r),
		Form:   form,
		Data:   data,
	})
}

// finish turns a workflow outcome into a response: the form again with its
// errors when validation failed, otherwise the notice as a flash and a
// redirect that reloads the page.
func (v *Views) finish(w http.ResponseWriter, r *http.Request, out workflow.Outcome, page, target string, form *webutil.Form) error {
	if out.Invalid() {
		form.Errors = out.FieldErrors
		return v.show(w, r, page, http.StatusUnprocessableEntity, form)
	}
	relayCookies(w, out.Cookies)
	webutil.SetFlash(w, out.Notice, v.SecureCookies)
	http.Redirect(w, r, target, http.StatusSeeOther)
	return nil
}

// relayCookies passes backend cookies on to the browser, scoped to this host.
func relayCookies(w http.ResponseWriter, cookies []*http.Cookie) {
	for _, c := range cookies {
		relayed := *c
		relayed.Domain = ""
		http.SetCookie(w, &relayed)
	}
}

func parseMultipart(r *http.Request, w http.ResponseWriter, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return webutil.ErrBadRequestWrap("Expected a multipart form", err)
		}
		return webutil.ErrBadRequestWrap("Invalid form submission", err)
	}
	return nil
}

func formValues(r *http.Request, fields ...string) map[string]string {
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f] = r.FormValue(f)
	}
	return values
}

func pathID(r *http.Request, what string) (int64, error) {
	raw := chi.URLParam(r, paramID)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, webutil.ErrBadRequest(fmt.Sprintf("Invalid %s ID format in path", what))
	}
	return id, nil
}

const paramID = "id"
