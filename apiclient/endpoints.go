package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/coreybb/bookpot-admin/models"
)

const (
	apiBasePath = "/api/v1"
	usersPath   = apiBasePath + "/users"
	authorsPath = apiBasePath + "/authors"
	ebooksPath  = apiBasePath + "/ebooks"

	// Auth routes are not versioned.
	loginPath  = "/auth/local"
	logoutPath = "/auth/logout"
)

func authorPath(id int64) string {
	return authorsPath + "/" + strconv.FormatInt(id, 10)
}

func ebookPath(id int64) string {
	return ebooksPath + "/" + strconv.FormatInt(id, 10)
}

func ebookAssetPath(id int64, kind models.AssetKind) string {
	return ebookPath(id) + "/" + string(kind)
}

func (c *Client) ListUsers(ctx context.Context, cred Credentials) ([]models.User, error) {
	var users []models.User
	_, err := c.Do(ctx, Call{Endpoint: "list_users", Method: http.MethodGet, Path: usersPath, Credentials: cred, Out: &users})
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (c *Client) ListAuthors(ctx context.Context, cred Credentials) ([]models.Author, error) {
	var authors []models.Author
	_, err := c.Do(ctx, Call{Endpoint: "list_authors", Method: http.MethodGet, Path: authorsPath, Credentials: cred, Out: &authors})
	if err != nil {
		return nil, err
	}
	if authors == nil {
		authors = []models.Author{}
	}
	return authors, nil
}

func (c *Client) ListEbooks(ctx context.Context, cred Credentials) ([]models.Ebook, error) {
	var ebooks []models.Ebook
	_, err := c.Do(ctx, Call{Endpoint: "list_ebooks", Method: http.MethodGet, Path: ebooksPath, Credentials: cred, Out: &ebooks})
	if err != nil {
		return nil, err
	}
	if ebooks == nil {
		ebooks = []models.Ebook{}
	}
	return ebooks, nil
}

// CreateAuthor sends the author fields and the thumbnail in a single
// multipart request.
func (c *Client) CreateAuthor(ctx context.Context, cred Credentials, req models.AuthorCreateRequest, thumbnail models.Upload) error {
	body := NewMultipart().
		Field("name", req.Name).
		Field("email", req.Email).
		Field("description", req.Description).
		Field("filename", thumbnail.Filename).
		Field("contentType", thumbnail.ContentType).
		File("file", thumbnail)

	_, err := c.Do(ctx, Call{Endpoint: "create_author", Method: http.MethodPost, Path: authorsPath, Payload: body, Credentials: cred})
	return err
}

func (c *Client) UpdateAuthor(ctx context.Context, cred Credentials, id int64, req models.AuthorUpdateRequest) error {
	_, err := c.Do(ctx, Call{Endpoint: "update_author", Method: http.MethodPut, Path: authorPath(id), Payload: JSON(req), Credentials: cred})
	return err
}

// CreateEbook creates the metadata record and returns the id the backend
// assigned to it.
func (c *Client) CreateEbook(ctx context.Context, cred Credentials, req models.EbookRequest) (int64, error) {
	var created models.EbookCreated
	_, err := c.Do(ctx, Call{Endpoint: "create_ebook", Method: http.MethodPost, Path: ebooksPath, Payload: JSON(req), Credentials: cred, Out: &created})
	if err != nil {
		return 0, err
	}
	return created.ID, nil
}

func (c *Client) UpdateEbook(ctx context.Context, cred Credentials, id int64, req models.EbookRequest) error {
	_, err := c.Do(ctx, Call{Endpoint: "update_ebook", Method: http.MethodPut, Path: ebookPath(id), Payload: JSON(req), Credentials: cred})
	return err
}

// PutEbookAsset attaches or replaces one asset of an existing ebook.
func (c *Client) PutEbookAsset(ctx context.Context, cred Credentials, id int64, kind models.AssetKind, upload models.Upload) error {
	_, err := c.Do(ctx, Call{
		Endpoint:    "put_ebook_" + string(kind),
		Method:      http.MethodPut,
		Path:        ebookAssetPath(id, kind),
		Payload:     AssetMultipart(upload),
		Credentials: cred,
	})
	return err
}

// Login exchanges credentials for a session. The returned cookies are the
// ones the backend set and must be relayed to the browser.
func (c *Client) Login(ctx context.Context, req models.CredentialsLoginRequest) ([]*http.Cookie, error) {
	resp, err := c.Do(ctx, Call{Endpoint: "login", Method: http.MethodPost, Path: loginPath, Payload: JSON(req)})
	if err != nil {
		return nil, err
	}
	return resp.Cookies, nil
}

// Logout ends the backend session and returns the cookies it cleared.
func (c *Client) Logout(ctx context.Context, cred Credentials) ([]*http.Cookie, error) {
	resp, err := c.Do(ctx, Call{Endpoint: "logout", Method: http.MethodPost, Path: logoutPath, Credentials: cred})
	if err != nil {
		return nil, err
	}
	return resp.Cookies, nil
}
