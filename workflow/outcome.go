package workflow

import (
	"net/http"

	"github.com/coreybb/bookpot-admin/models"
)

// Outcome is what a submitted form leads to.
type Outcome struct {
	// FieldErrors is set when validation failed. No backend call was made
	// and the form stays open with the submitted values.
	FieldErrors FieldErrors
	// Notice is the toast to show once, if any.
	Notice *models.Notice
	// Reload asks for the form to be reset, its dialog closed and the page
	// data fetched again. When false after a valid submit, the dialog stays
	// open on its next step.
	Reload bool
	// Cookies are backend Set-Cookie values to relay to the browser.
	Cookies []*http.Cookie
}

func (o Outcome) Invalid() bool {
	return len(o.FieldErrors) > 0
}

func (o Outcome) Failed() bool {
	return o.Notice != nil && o.Notice.Level == models.NoticeError
}

func invalid(errs FieldErrors) Outcome {
	return Outcome{FieldErrors: errs}
}

func reloadWith(notice *models.Notice) Outcome {
	return Outcome{Notice: notice, Reload: true}
}
