package webutil

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/coreybb/bookpot-admin/apiclient"
)

// AppHandler represents a handler function that returns an error.
type AppHandler func(w http.ResponseWriter, r *http.Request) error

// MakeHandler adapts an AppHandler to the standard http.HandlerFunc signature.
// It executes the AppHandler and handles any returned error by logging appropriately
// and sending a standardized error response: JSON when the client asked for it,
// a minimal HTML page otherwise.
func MakeHandler(handler AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := handler(w, r)
		if err == nil {
			// The handler is assumed to have written its own successful response.
			return
		}

		httpErr := classifyError(err)
		logLevel := slog.LevelWarn // Treat client errors as warnings server-side
		if httpErr.Code >= 500 {
			logLevel = slog.LevelError
		}
		attrs := []any{
			"code", httpErr.Code,
			"msg", httpErr.Message,
			"path", r.URL.Path,
			"method", r.Method,
		}
		// Log the underlying cause if present and different from the public message
		if cause := errors.Unwrap(httpErr); cause != nil && cause.Error() != httpErr.Message {
			attrs = append(attrs, "cause", cause)
		}
		var reqErr *apiclient.RequestError
		if errors.As(err, &reqErr) {
			attrs = append(attrs,
				"backend_method", reqErr.Method,
				"backend_path", reqErr.Path,
				"backend_status", reqErr.Status,
			)
		}
		slog.Log(r.Context(), logLevel, "Error response", attrs...)

		// Check if response headers have already been written by the handler
		// (which shouldn't happen if errors are returned correctly).
		if HasResponseWriterSentHeader(w) {
			slog.Warn("Handler returned error after writing response header",
				"path", r.URL.Path,
				"method", r.Method,
				"error", err,
			)
			return
		}

		if wantsJSON(r) {
			RespondWithError(w, httpErr.Code, httpErr.Message)
			return
		}
		RespondWithErrorPage(w, httpErr.Code, httpErr.Message)
	}
}

// classifyError maps any handler error onto an HTTPError. Explicit HTTPErrors
// win; a failed backend call is a bad gateway; anything else is internal.
func classifyError(err error) *HTTPError {
	var httpErr *HTTPError
	var reqErr *apiclient.RequestError
	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.As(err, &reqErr):
		return ErrBadGatewayWrap("", err)
	default:
		return ErrInternalServerWrap("Unhandled internal error", err)
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get(HeaderAccept), ContentTypeJSON)
}
