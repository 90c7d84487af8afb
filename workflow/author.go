package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/coreybb/bookpot-admin/apiclient"
	"github.com/coreybb/bookpot-admin/assets"
	"github.com/coreybb/bookpot-admin/models"
)

// AuthorForm is a submitted author dialog.
type AuthorForm struct {
	Name  string
	Email string
	Bio   string
	// Thumbnail is the newly selected image, nil if none was chosen.
	Thumbnail assets.FileSource
	// CurrentThumbnail is the stored thumbnail URL when editing. It satisfies
	// the thumbnail rule but is never re-sent.
	CurrentThumbnail string
}

func (f AuthorForm) values() map[string]string {
	thumbnail := f.CurrentThumbnail
	if f.Thumbnail != nil {
		thumbnail = f.Thumbnail.Name()
	}
	return map[string]string{
		"thumbnail": thumbnail,
		"name":      strings.TrimSpace(f.Name),
		"email":     strings.TrimSpace(f.Email),
		"bio":       f.Bio,
	}
}

// CreateAuthor registers an author and the thumbnail in a single multipart
// request. Success or failure, the dialog is reset and the page reloaded.
func (s *Service) CreateAuthor(ctx context.Context, cred apiclient.Credentials, form AuthorForm) Outcome {
	values := form.values()
	if form.Thumbnail == nil {
		values["thumbnail"] = ""
	}
	if errs := authorSchema.Check(values); errs != nil {
		return s.invalid(wfCreateAuthor, errs)
	}

	thumbnail, err := form.Thumbnail.Load(ctx)
	if err != nil {
		s.failed(ctx, wfCreateAuthor, fmt.Errorf("failed to read thumbnail: %w", err))
		return reloadWith(models.ErrorNotice(MsgRegisterFailed))
	}

	req := models.AuthorCreateRequest{
		Name:        values["name"],
		Email:       values["email"],
		Description: values["bio"],
	}
	if err := s.api.CreateAuthor(ctx, cred, req, thumbnail); err != nil {
		s.failed(ctx, wfCreateAuthor, err, "email", req.Email)
		return reloadWith(models.ErrorNotice(MsgRegisterFailed))
	}

	s.succeeded(wfCreateAuthor)
	s.logger.InfoContext(ctx, "Author registered", "email", req.Email)
	return reloadWith(models.SuccessNotice(MsgRegistered))
}

// UpdateAuthor replaces the author's name, email and bio. The thumbnail
// cannot be changed here and a selected file is ignored.
func (s *Service) UpdateAuthor(ctx context.Context, cred apiclient.Credentials, id int64, form AuthorForm) Outcome {
	values := form.values()
	if errs := authorSchema.Check(values); errs != nil {
		return s.invalid(wfUpdateAuthor, errs)
	}

	req := models.AuthorUpdateRequest{
		Name:        values["name"],
		Email:       values["email"],
		Description: values["bio"],
	}
	if err := s.api.UpdateAuthor(ctx, cred, id, req); err != nil {
		s.failed(ctx, wfUpdateAuthor, err, "author_id", id)
		return reloadWith(models.ErrorNotice(MsgUpdateFailed))
	}

	s.succeeded(wfUpdateAuthor)
	s.logger.InfoContext(ctx, "Author updated", "author_id", id)
	return reloadWith(models.SuccessNotice(MsgUpdated))
}
