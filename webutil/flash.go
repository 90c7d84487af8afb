package webutil

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/coreybb/bookpot-admin/models"
)

const flashCookieName = "flash"

// SetFlash stores a notice to be shown once on the next rendered page.
func SetFlash(w http.ResponseWriter, notice *models.Notice, secure bool) {
	if notice == nil {
		return
	}
	raw, err := json.Marshal(notice)
	if err != nil {
		slog.Error("Failed to encode flash notice", "error", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the pending notice, if any, and clears it.
func PopFlash(w http.ResponseWriter, r *http.Request) *models.Notice {
	c, err := r.Cookie(flashCookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})

	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var notice models.Notice
	if err := json.Unmarshal(raw, &notice); err != nil || notice.Message == "" {
		return nil
	}
	return &notice
}
