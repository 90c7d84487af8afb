// Package workflow turns dashboard form submissions into backend calls.
//
// Workflows validate against a static schema before touching the network,
// catch every backend failure themselves, log it, and report a single
// user-facing notice. Handlers never see a backend error.
package workflow

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/coreybb/bookpot-admin/apiclient"
	"github.com/coreybb/bookpot-admin/metrics"
	"github.com/coreybb/bookpot-admin/models"
)

const (
	MsgRegistered        = "Registration complete!"
	MsgRegisterFailed    = "Registration failed. Please try again."
	MsgUpdated           = "Update complete!"
	MsgUpdateFailed      = "Update failed. Please try again."
	MsgLoginFailed       = "Login failed. Please check your ID and password."
	MsgNoPendingCreation = "There is no ebook awaiting files. Please start again."
)

// Workflow names used in logs and metrics.
const (
	wfCreateAuthor  = "create_author"
	wfUpdateAuthor  = "update_author"
	wfEbookMetadata = "create_ebook_metadata"
	wfEbookAssets   = "create_ebook_assets"
	wfUpdateEbook   = "update_ebook"
	wfLogin         = "login"
	wfLogout        = "logout"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
	resultInvalid = "invalid"
)

// API is the part of the backend client the workflows write through.
type API interface {
	CreateAuthor(ctx context.Context, cred apiclient.Credentials, req models.AuthorCreateRequest, thumbnail models.Upload) error
	UpdateAuthor(ctx context.Context, cred apiclient.Credentials, id int64, req models.AuthorUpdateRequest) error
	CreateEbook(ctx context.Context, cred apiclient.Credentials, req models.EbookRequest) (int64, error)
	UpdateEbook(ctx context.Context, cred apiclient.Credentials, id int64, req models.EbookRequest) error
	PutEbookAsset(ctx context.Context, cred apiclient.Credentials, id int64, kind models.AssetKind, upload models.Upload) error
	Login(ctx context.Context, req models.CredentialsLoginRequest) ([]*http.Cookie, error)
	Logout(ctx context.Context, cred apiclient.Credentials) ([]*http.Cookie, error)
}

type Service struct {
	api     API
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// New creates a Service. logger and rec may be nil.
func New(api API, logger *slog.Logger, rec *metrics.Recorder) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{api: api, logger: logger, metrics: rec}
}

func (s *Service) invalid(workflow string, errs FieldErrors) Outcome {
	s.metrics.ObserveWorkflow(workflow, resultInvalid)
	return invalid(errs)
}

func (s *Service) succeeded(workflow string) {
	s.metrics.ObserveWorkflow(workflow, resultSuccess)
}

// failed logs the raw error for diagnosis. The user only ever sees the
// generic notice the caller picks.
func (s *Service) failed(ctx context.Context, workflow string, err error, attrs ...any) {
	s.metrics.ObserveWorkflow(workflow, resultFailure)
	s.logger.ErrorContext(ctx, "Workflow failed", append([]any{"workflow", workflow, "error", err}, attrs...)...)
}
