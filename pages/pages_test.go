package pages

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreybb/bookpot-admin/apiclient"
	"github.com/coreybb/bookpot-admin/models"
)

type fakeAPI struct {
	mu      sync.Mutex
	calls   []string
	cookies []string

	authorsErr error
}

func (f *fakeAPI) record(name string, cred apiclient.Credentials) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	f.cookies = append(f.cookies, cred.Cookie)
}

func (f *fakeAPI) ListUsers(_ context.Context, cred apiclient.Credentials) ([]models.User, error) {
	f.record("users", cred)
	return []models.User{{ID: 1, Email: "a@example.com"}}, nil
}

func (f *fakeAPI) ListAuthors(_ context.Context, cred apiclient.Credentials) ([]models.Author, error) {
	f.record("authors", cred)
	if f.authorsErr != nil {
		return nil, f.authorsErr
	}
	return []models.Author{{ID: 3, Name: "Kim"}}, nil
}

func (f *fakeAPI) ListEbooks(_ context.Context, cred apiclient.Credentials) ([]models.Ebook, error) {
	f.record("ebooks", cred)
	return []models.Ebook{{ID: 9, Title: "Go", AuthorID: 3}}, nil
}

func request(cookie string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		r.Header.Set("Cookie", cookie)
	}
	return r
}

func TestLoaders_WithoutSessionRedirectWithoutCalls(t *testing.T) {
	api := &fakeAPI{}
	l := NewLoader(api, nil)

	loaders := map[string]func(*http.Request) (Result, error){
		"users":   l.Users,
		"authors": l.Authors,
		"ebooks":  l.Ebooks,
	}
	for name, load := range loaders {
		t.Run(name, func(t *testing.T) {
			res, err := load(request("theme=dark"))
			require.NoError(t, err)
			assert.Equal(t, "/login", res.Redirect)
			assert.Nil(t, res.Data)
		})
	}
	assert.Empty(t, api.calls)
}

func TestUsers_ForwardsCookieHeader(t *testing.T) {
	api := &fakeAPI{}
	l := NewLoader(api, nil)

	res, err := l.Users(request("accessToken=whatever; theme=dark"))
	require.NoError(t, err)
	assert.Empty(t, res.Redirect)
	require.IsType(t, UsersData{}, res.Data)
	assert.Len(t, res.Data.(UsersData).Users, 1)
	assert.Equal(t, []string{"accessToken=whatever; theme=dark"}, api.cookies)
}

func TestEbooks_LoadsAuthorsAndEbooks(t *testing.T) {
	api := &fakeAPI{}
	l := NewLoader(api, nil)

	res, err := l.Ebooks(request("accessToken=t"))
	require.NoError(t, err)
	data, ok := res.Data.(EbooksData)
	require.True(t, ok)
	assert.Len(t, data.Authors, 1)
	assert.Len(t, data.Ebooks, 1)
	assert.ElementsMatch(t, []string{"authors", "ebooks"}, api.calls)
}

func TestAuthors_PropagatesBackendError(t *testing.T) {
	boom := errors.New("boom")
	api := &fakeAPI{authorsErr: boom}
	l := NewLoader(api, nil)

	_, err := l.Authors(request("accessToken=t"))
	assert.ErrorIs(t, err, boom)

	_, err = l.Ebooks(request("accessToken=t"))
	assert.ErrorIs(t, err, boom)
}
