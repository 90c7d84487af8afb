package workflow

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/coreybb/bookpot-admin/apiclient"
	"github.com/coreybb/bookpot-admin/assets"
	"github.com/coreybb/bookpot-admin/models"
)

// EbookMetadataForm holds the scalar ebook fields as submitted. Price and
// AuthorID arrive as strings and must be plain digits.
type EbookMetadataForm struct {
	Title    string
	Intro    string
	Price    string
	AuthorID string
}

func (f EbookMetadataForm) values() map[string]string {
	return map[string]string{
		"title":    strings.TrimSpace(f.Title),
		"intro":    f.Intro,
		"price":    strings.TrimSpace(f.Price),
		"authorId": strings.TrimSpace(f.AuthorID),
	}
}

// ebookRequest builds the JSON body from validated values. Ebooks are always
// published.
func ebookRequest(values map[string]string) (models.EbookRequest, error) {
	price, err := strconv.ParseInt(values["price"], 10, 64)
	if err != nil {
		return models.EbookRequest{}, fmt.Errorf("invalid price %q: %w", values["price"], err)
	}
	authorID, err := strconv.ParseInt(values["authorId"], 10, 64)
	if err != nil {
		return models.EbookRequest{}, fmt.Errorf("invalid author id %q: %w", values["authorId"], err)
	}
	return models.EbookRequest{
		Title:     values["title"],
		Intro:     values["intro"],
		Price:     price,
		AuthorID:  authorID,
		IsPublish: true,
	}, nil
}

// AssetFiles are the files selected per asset slot. A missing key means no
// new file was chosen for that slot.
type AssetFiles map[models.AssetKind]assets.FileSource

func (f AssetFiles) names() map[string]string {
	values := make(map[string]string, len(models.AssetKinds))
	for _, kind := range models.AssetKinds {
		if src, ok := f[kind]; ok && src != nil {
			values[string(kind)] = src.Name()
		}
	}
	return values
}

// SubmitMetadata is phase 1 of ebook creation. On success the created id is
// recorded in state and the dialog moves on to the asset step without a
// notice. On failure the attempt is abandoned: state goes back to phase 1 and
// the author selection is not carried over.
func (s *Service) SubmitMetadata(ctx context.Context, cred apiclient.Credentials, state *CreationState, form EbookMetadataForm) Outcome {
	values := form.values()
	if errs := ebookMetadataSchema.Check(values); errs != nil {
		return s.invalid(wfEbookMetadata, errs)
	}

	req, err := ebookRequest(values)
	if err != nil {
		state.Reset()
		s.failed(ctx, wfEbookMetadata, err)
		return reloadWith(models.ErrorNotice(MsgRegisterFailed))
	}

	id, err := s.api.CreateEbook(ctx, cred, req)
	if err != nil {
		state.Reset()
		s.failed(ctx, wfEbookMetadata, err, "title", req.Title)
		return reloadWith(models.ErrorNotice(MsgRegisterFailed))
	}

	state.Advance(id)
	s.succeeded(wfEbookMetadata)
	s.logger.InfoContext(ctx, "Ebook record created, awaiting assets", "ebook_id", id)
	return Outcome{}
}

// SubmitAssets is phase 2 of ebook creation: the four assets are uploaded
// concurrently to the ebook created in phase 1 and joined all-or-nothing. A
// failing upload does not cancel the others, so some assets may be stored
// even though the attempt is reported as failed. In that case the state
// stays at phase 2 on the same ebook id.
func (s *Service) SubmitAssets(ctx context.Context, cred apiclient.Credentials, state *CreationState, files AssetFiles) Outcome {
	if errs := ebookAssetsSchema.Check(files.names()); errs != nil {
		return s.invalid(wfEbookAssets, errs)
	}

	step, ebookID := state.Snapshot()
	if step != StepAssets {
		s.failed(ctx, wfEbookAssets, fmt.Errorf("no ebook awaiting assets (step %d)", step))
		return reloadWith(models.ErrorNotice(MsgNoPendingCreation))
	}

	uploads, err := loadAll(ctx, files, models.AssetKinds)
	if err != nil {
		s.failed(ctx, wfEbookAssets, err, "ebook_id", ebookID)
		return reloadWith(models.ErrorNotice(MsgRegisterFailed))
	}

	var (
		mu     sync.Mutex
		failed []models.AssetKind
		g      errgroup.Group
	)
	for _, kind := range models.AssetKinds {
		upload := uploads[kind]
		g.Go(func() error {
			if err := s.api.PutEbookAsset(ctx, cred, ebookID, kind, upload); err != nil {
				mu.Lock()
				failed = append(failed, kind)
				mu.Unlock()
				return fmt.Errorf("failed to upload %s: %w", kind, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.failed(ctx, wfEbookAssets, err, "ebook_id", ebookID, "failed_assets", failed)
		return reloadWith(models.ErrorNotice(MsgRegisterFailed))
	}

	state.Reset()
	s.succeeded(wfEbookAssets)
	s.logger.InfoContext(ctx, "Ebook assets attached", "ebook_id", ebookID)
	return reloadWith(models.SuccessNotice(MsgRegistered))
}

// EbookUpdateForm is a submitted edit dialog.
type EbookUpdateForm struct {
	EbookMetadataForm
	// Files holds only the slots where a new file was selected.
	Files AssetFiles
	// CurrentAssets are the stored asset URLs. They satisfy the asset rules
	// for slots left unchanged and are never re-sent.
	CurrentAssets map[models.AssetKind]string
}

func (f EbookUpdateForm) values() map[string]string {
	values := f.EbookMetadataForm.values()
	for _, kind := range models.AssetKinds {
		values[string(kind)] = f.CurrentAssets[kind]
	}
	for field, name := range f.Files.names() {
		values[field] = name
	}
	return values
}

// UpdateEbook replaces the scalar fields, then uploads each newly selected
// asset one at a time in canonical order, stopping at the first failure.
// Uploads that already went through are not rolled back.
func (s *Service) UpdateEbook(ctx context.Context, cred apiclient.Credentials, id int64, form EbookUpdateForm) Outcome {
	values := form.values()
	if errs := ebookUpdateSchema.Check(values); errs != nil {
		return s.invalid(wfUpdateEbook, errs)
	}

	req, err := ebookRequest(values)
	if err != nil {
		s.failed(ctx, wfUpdateEbook, err, "ebook_id", id)
		return reloadWith(models.ErrorNotice(MsgUpdateFailed))
	}

	if err := s.api.UpdateEbook(ctx, cred, id, req); err != nil {
		s.failed(ctx, wfUpdateEbook, err, "ebook_id", id, "step", "metadata")
		return reloadWith(models.ErrorNotice(MsgUpdateFailed))
	}

	var replaced []models.AssetKind
	for _, kind := range models.AssetKinds {
		src, ok := form.Files[kind]
		if !ok || src == nil {
			continue
		}
		upload, err := src.Load(ctx)
		if err != nil {
			s.failed(ctx, wfUpdateEbook, fmt.Errorf("failed to read %s: %w", kind, err), "ebook_id", id, "replaced", replaced)
			return reloadWith(models.ErrorNotice(MsgUpdateFailed))
		}
		if err := s.api.PutEbookAsset(ctx, cred, id, kind, upload); err != nil {
			s.failed(ctx, wfUpdateEbook, err, "ebook_id", id, "step", string(kind), "replaced", replaced)
			return reloadWith(models.ErrorNotice(MsgUpdateFailed))
		}
		replaced = append(replaced, kind)
	}

	s.succeeded(wfUpdateEbook)
	s.logger.InfoContext(ctx, "Ebook updated", "ebook_id", id, "replaced", replaced)
	return reloadWith(models.SuccessNotice(MsgUpdated))
}

func loadAll(ctx context.Context, files AssetFiles, kinds []models.AssetKind) (map[models.AssetKind]models.Upload, error) {
	uploads := make(map[models.AssetKind]models.Upload, len(kinds))
	for _, kind := range kinds {
		upload, err := files[kind].Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", kind, err)
		}
		uploads[kind] = upload
	}
	return uploads, nil
}
