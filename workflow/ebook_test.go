package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreybb/bookpot-admin/models"
)

func validMetadata() EbookMetadataForm {
	return EbookMetadataForm{Title: "A", Intro: "B", Price: "1000", AuthorID: "3"}
}

func TestSubmitMetadata_CreatesAndAdvances(t *testing.T) {
	api := newFakeAPI()
	svc := New(api, nil, nil)
	state := NewCreationState()

	out := svc.SubmitMetadata(context.Background(), cred, state, validMetadata())

	assert.False(t, out.Invalid())
	assert.False(t, out.Reload)
	assert.Nil(t, out.Notice)

	calls := api.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "create_ebook", calls[0].Name)
	assert.Equal(t, models.EbookRequest{Title: "A", Intro: "B", Price: 1000, AuthorID: 3, IsPublish: true}, calls[0].Payload)

	step, id := state.Snapshot()
	assert.Equal(t, StepAssets, step)
	assert.EqualValues(t, 42, id)
}

func TestSubmitMetadata_FailureResetsAndUploadsNothing(t *testing.T) {
	api := newFakeAPI()
	api.failOn["create_ebook"] = true
	svc := New(api, nil, nil)
	state := NewCreationState()
	state.Advance(5)

	out := svc.SubmitMetadata(context.Background(), cred, state, validMetadata())

	assert.True(t, out.Reload)
	assert.Equal(t, models.ErrorNotice("Registration failed. Please try again."), out.Notice)
	assert.Equal(t, []string{"create_ebook"}, api.names())

	step, id := state.Snapshot()
	assert.Equal(t, StepMetadata, step)
	assert.Zero(t, id)
}

func TestSubmitMetadata_InvalidMakesNoCall(t *testing.T) {
	api := newFakeAPI()
	svc := New(api, nil, nil)
	state := NewCreationState()

	out := svc.SubmitMetadata(context.Background(), cred, state, EbookMetadataForm{Title: "A", Intro: "B", Price: "ten"})

	assert.Equal(t, FieldErrors{"price": "Please enter a number", "authorId": "This field is required"}, out.FieldErrors)
	assert.Empty(t, api.recorded())
}

func TestSubmitAssets_UploadsAllFourConcurrently(t *testing.T) {
	api := newFakeAPI()

	// Every upload waits until all four are in flight; a sequential
	// implementation would time out here.
	var started sync.WaitGroup
	started.Add(len(models.AssetKinds))
	allStarted := make(chan struct{})
	go func() {
		started.Wait()
		close(allStarted)
	}()
	api.beforeAsset = func(context.Context, models.AssetKind) error {
		started.Done()
		select {
		case <-allStarted:
			return nil
		case <-time.After(2 * time.Second):
			return errors.New("uploads were not started together")
		}
	}

	svc := New(api, nil, nil)
	state := NewCreationState()
	state.Advance(42)

	out := svc.SubmitAssets(context.Background(), cred, state, allAssets())

	assert.Equal(t, models.SuccessNotice("Registration complete!"), out.Notice)
	assert.True(t, out.Reload)

	calls := api.recorded()
	require.Len(t, calls, 4)
	var kinds []models.AssetKind
	for _, c := range calls {
		assert.Equal(t, "put_asset", c.Name)
		assert.EqualValues(t, 42, c.ID)
		kinds = append(kinds, c.Kind)
	}
	assert.ElementsMatch(t, models.AssetKinds, kinds)

	step, id := state.Snapshot()
	assert.Equal(t, StepMetadata, step)
	assert.Zero(t, id)
}

func TestSubmitAssets_OneFailureKeepsStateAndSiblingsComplete(t *testing.T) {
	api := newFakeAPI()

	// The preview upload fails first. The others only start once it has
	// failed and then give a cancellation time to arrive before finishing.
	previewFailed := make(chan struct{})
	var (
		mu       sync.Mutex
		siblings = map[models.AssetKind]error{}
	)
	api.beforeAsset = func(ctx context.Context, kind models.AssetKind) error {
		if kind == models.AssetPreview {
			close(previewFailed)
			return errBackend
		}
		<-previewFailed
		var err error
		select {
		case <-ctx.Done():
			err = ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
		mu.Lock()
		siblings[kind] = err
		mu.Unlock()
		return err
	}

	svc := New(api, nil, nil)
	state := NewCreationState()
	state.Advance(42)

	out := svc.SubmitAssets(context.Background(), cred, state, allAssets())

	assert.True(t, out.Reload)
	assert.Equal(t, models.ErrorNotice("Registration failed. Please try again."), out.Notice)

	mu.Lock()
	assert.Equal(t, map[models.AssetKind]error{
		models.AssetThumbnail:   nil,
		models.AssetDescription: nil,
		models.AssetPDF:         nil,
	}, siblings)
	mu.Unlock()
	assert.ElementsMatch(t, []string{
		"put_asset:thumbnail", "put_asset:description", "put_asset:pdf",
	}, api.names())

	step, id := state.Snapshot()
	assert.Equal(t, StepAssets, step)
	assert.EqualValues(t, 42, id)
}

func TestSubmitAssets_RequiresPendingEbook(t *testing.T) {
	api := newFakeAPI()
	svc := New(api, nil, nil)

	out := svc.SubmitAssets(context.Background(), cred, NewCreationState(), allAssets())

	assert.True(t, out.Failed())
	assert.Empty(t, api.recorded())
}

func TestSubmitAssets_MissingFileIsInvalid(t *testing.T) {
	api := newFakeAPI()
	svc := New(api, nil, nil)
	state := NewCreationState()
	state.Advance(42)

	files := allAssets()
	delete(files, models.AssetPDF)
	out := svc.SubmitAssets(context.Background(), cred, state, files)

	assert.Equal(t, FieldErrors{"pdf": "Please upload a file"}, out.FieldErrors)
	assert.Empty(t, api.recorded())
}

func TestSubmitAssets_UnreadableFileMakesNoCall(t *testing.T) {
	api := newFakeAPI()
	svc := New(api, nil, nil)
	state := NewCreationState()
	state.Advance(42)

	files := allAssets()
	files[models.AssetDescription] = brokenFile{}
	out := svc.SubmitAssets(context.Background(), cred, state, files)

	assert.True(t, out.Failed())
	assert.Empty(t, api.recorded())
	step, _ := state.Snapshot()
	assert.Equal(t, StepAssets, step)
}

func currentAssets() map[models.AssetKind]string {
	return map[models.AssetKind]string{
		models.AssetThumbnail:   "https://cdn/t.png",
		models.AssetDescription: "https://cdn/d.png",
		models.AssetPreview:     "https://cdn/p.pdf",
		models.AssetPDF:         "https://cdn/f.pdf",
	}
}

func TestUpdateEbook_MetadataThenChangedAssetsInOrder(t *testing.T) {
	api := newFakeAPI()
	svc := New(api, nil, nil)

	out := svc.UpdateEbook(context.Background(), cred, 12, EbookUpdateForm{
		EbookMetadataForm: validMetadata(),
		Files: AssetFiles{
			models.AssetPDF:       memFile("full.pdf", "application/pdf"),
			models.AssetThumbnail: memFile("cover.png", "image/png"),
		},
		CurrentAssets: currentAssets(),
	})

	assert.Equal(t, models.SuccessNotice("Update complete!"), out.Notice)
	assert.Equal(t, []string{"update_ebook", "put_asset:thumbnail", "put_asset:pdf"}, api.names())
	for _, c := range api.recorded() {
		assert.EqualValues(t, 12, c.ID)
	}
	assert.Equal(t, models.EbookRequest{Title: "A", Intro: "B", Price: 1000, AuthorID: 3, IsPublish: true}, api.recorded()[0].Payload)
}

func TestUpdateEbook_NoNewFilesMeansNoAssetCalls(t *testing.T) {
	api := newFakeAPI()
	svc := New(api, nil, nil)

	out := svc.UpdateEbook(context.Background(), cred, 12, EbookUpdateForm{
		EbookMetadataForm: validMetadata(),
		CurrentAssets:     currentAssets(),
	})

	assert.False(t, out.Failed())
	assert.Equal(t, []string{"update_ebook"}, api.names())
}

func TestUpdateEbook_MetadataFailureSkipsAssets(t *testing.T) {
	api := newFakeAPI()
	api.failOn["update_ebook"] = true
	svc := New(api, nil, nil)

	out := svc.UpdateEbook(context.Background(), cred, 12, EbookUpdateForm{
		EbookMetadataForm: validMetadata(),
		Files:             allAssets(),
		CurrentAssets:     currentAssets(),
	})

	assert.Equal(t, models.ErrorNotice("Update failed. Please try again."), out.Notice)
	assert.Equal(t, []string{"update_ebook"}, api.names())
}

func TestUpdateEbook_StopsAtFirstFailedAsset(t *testing.T) {
	api := newFakeAPI()
	api.failOn["put_asset:description"] = true
	svc := New(api, nil, nil)

	out := svc.UpdateEbook(context.Background(), cred, 12, EbookUpdateForm{
		EbookMetadataForm: validMetadata(),
		Files:             allAssets(),
		CurrentAssets:     currentAssets(),
	})

	assert.True(t, out.Failed())
	assert.True(t, out.Reload)
	assert.Equal(t, []string{"update_ebook", "put_asset:thumbnail", "put_asset:description"}, api.names())
}

func TestUpdateEbook_MissingAssetWithoutCurrentIsInvalid(t *testing.T) {
	api := newFakeAPI()
	svc := New(api, nil, nil)

	current := currentAssets()
	delete(current, models.AssetPreview)
	out := svc.UpdateEbook(context.Background(), cred, 12, EbookUpdateForm{
		EbookMetadataForm: validMetadata(),
		CurrentAssets:     current,
	})

	assert.Equal(t, FieldErrors{"preview": "Please upload a file"}, out.FieldErrors)
	assert.Empty(t, api.recorded())
}

func TestUpdateEbook_SendsIntroVerbatim(t *testing.T) {
	api := newFakeAPI()
	svc := New(api, nil, nil)

	form := validMetadata()
	form.Intro = "Chapter one: <em>Goroutines</em> & channels.\n"
	out := svc.UpdateEbook(context.Background(), cred, 12, EbookUpdateForm{
		EbookMetadataForm: form,
		CurrentAssets:     currentAssets(),
	})

	require.False(t, out.Failed())
	assert.Equal(t, models.EbookRequest{
		Title:     "A",
		Intro:     "Chapter one: <em>Goroutines</em> & channels.\n",
		Price:     1000,
		AuthorID:  3,
		IsPublish: true,
	}, api.recorded()[0].Payload)
}
