package workflow

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/coreybb/bookpot-admin/apiclient"
	"github.com/coreybb/bookpot-admin/assets"
	"github.com/coreybb/bookpot-admin/models"
)

var errBackend = &apiclient.RequestError{Method: http.MethodPut, Path: "/api/v1/x", Status: http.StatusInternalServerError}

type call struct {
	Name    string
	ID      int64
	Kind    models.AssetKind
	Payload any
	Upload  models.Upload
}

// fakeAPI records every call in order and fails the ones named in failOn.
type fakeAPI struct {
	mu    sync.Mutex
	calls []call

	createdID int64
	failOn    map[string]bool
	// beforeAsset runs inside PutEbookAsset before the call is recorded. An
	// error it returns fails the call unrecorded.
	beforeAsset func(ctx context.Context, kind models.AssetKind) error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{createdID: 42, failOn: map[string]bool{}}
}

func (f *fakeAPI) record(c call) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	key := c.Name
	if c.Kind != "" {
		key = c.Name + ":" + string(c.Kind)
	}
	if f.failOn[key] {
		return errBackend
	}
	return nil
}

func (f *fakeAPI) recorded() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func (f *fakeAPI) names() []string {
	var out []string
	for _, c := range f.recorded() {
		if c.Kind != "" {
			out = append(out, c.Name+":"+string(c.Kind))
			continue
		}
		out = append(out, c.Name)
	}
	return out
}

func (f *fakeAPI) CreateAuthor(_ context.Context, _ apiclient.Credentials, req models.AuthorCreateRequest, thumbnail models.Upload) error {
	return f.record(call{Name: "create_author", Payload: req, Upload: thumbnail})
}

func (f *fakeAPI) UpdateAuthor(_ context.Context, _ apiclient.Credentials, id int64, req models.AuthorUpdateRequest) error {
	return f.record(call{Name: "update_author", ID: id, Payload: req})
}

func (f *fakeAPI) CreateEbook(_ context.Context, _ apiclient.Credentials, req models.EbookRequest) (int64, error) {
	if err := f.record(call{Name: "create_ebook", Payload: req}); err != nil {
		return 0, err
	}
	return f.createdID, nil
}

func (f *fakeAPI) UpdateEbook(_ context.Context, _ apiclient.Credentials, id int64, req models.EbookRequest) error {
	return f.record(call{Name: "update_ebook", ID: id, Payload: req})
}

func (f *fakeAPI) PutEbookAsset(ctx context.Context, _ apiclient.Credentials, id int64, kind models.AssetKind, upload models.Upload) error {
	if f.beforeAsset != nil {
		if err := f.beforeAsset(ctx, kind); err != nil {
			return err
		}
	}
	return f.record(call{Name: "put_asset", ID: id, Kind: kind, Upload: upload})
}

func (f *fakeAPI) Login(_ context.Context, req models.CredentialsLoginRequest) ([]*http.Cookie, error) {
	if err := f.record(call{Name: "login", Payload: req}); err != nil {
		return nil, err
	}
	return []*http.Cookie{{Name: "accessToken", Value: "tok"}}, nil
}

func (f *fakeAPI) Logout(_ context.Context, _ apiclient.Credentials) ([]*http.Cookie, error) {
	if err := f.record(call{Name: "logout"}); err != nil {
		return nil, err
	}
	return []*http.Cookie{{Name: "accessToken", Value: "", MaxAge: -1}}, nil
}

func memFile(name, contentType string) assets.MemoryFile {
	return assets.MemoryFile{Filename: name, ContentType: contentType, Data: []byte("data:" + name)}
}

func allAssets() AssetFiles {
	return AssetFiles{
		models.AssetThumbnail:   memFile("cover.png", "image/png"),
		models.AssetDescription: memFile("desc.png", "image/png"),
		models.AssetPreview:     memFile("preview.pdf", "application/pdf"),
		models.AssetPDF:         memFile("full.pdf", "application/pdf"),
	}
}

type brokenFile struct{}

func (brokenFile) Name() string { return "broken.bin" }

func (brokenFile) Load(context.Context) (models.Upload, error) {
	return models.Upload{}, errors.New("disk on fire")
}

var cred = apiclient.Credentials{Cookie: "accessToken=tok"}
