package workflow

import (
	"context"
	"strings"

	"github.com/coreybb/bookpot-admin/apiclient"
	"github.com/coreybb/bookpot-admin/models"
)

type LoginForm struct {
	Username string
	Password string
}

// Login exchanges the staff credentials for a backend session. The cookies
// the backend set are returned for the browser.
func (s *Service) Login(ctx context.Context, form LoginForm) Outcome {
	values := map[string]string{
		"username": strings.TrimSpace(form.Username),
		"password": form.Password,
	}
	if errs := loginSchema.Check(values); errs != nil {
		return s.invalid(wfLogin, errs)
	}

	cookies, err := s.api.Login(ctx, models.CredentialsLoginRequest{
		Username: values["username"],
		Password: values["password"],
	})
	if err != nil {
		s.failed(ctx, wfLogin, err, "username", values["username"])
		return Outcome{Notice: models.ErrorNotice(MsgLoginFailed)}
	}

	s.succeeded(wfLogin)
	s.logger.InfoContext(ctx, "Staff signed in", "username", values["username"])
	return Outcome{Reload: true, Cookies: cookies}
}

// Logout ends the backend session. A backend failure is logged only; the
// caller expires the local cookie either way.
func (s *Service) Logout(ctx context.Context, cred apiclient.Credentials) Outcome {
	cookies, err := s.api.Logout(ctx, cred)
	if err != nil {
		s.failed(ctx, wfLogout, err)
		return Outcome{Reload: true}
	}
	s.succeeded(wfLogout)
	return Outcome{Reload: true, Cookies: cookies}
}
