// Package pages loads the data behind each dashboard page. Every loader runs
// the session gate first and issues no backend call without a session.
package pages

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/coreybb/bookpot-admin/apiclient"
	"github.com/coreybb/bookpot-admin/models"
	"github.com/coreybb/bookpot-admin/session"
)

// API is the part of the backend client the pages read from.
type API interface {
	ListUsers(ctx context.Context, cred apiclient.Credentials) ([]models.User, error)
	ListAuthors(ctx context.Context, cred apiclient.Credentials) ([]models.Author, error)
	ListEbooks(ctx context.Context, cred apiclient.Credentials) ([]models.Ebook, error)
}

// Result is either a redirect or the data to render, never both.
type Result struct {
	Redirect string
	Data     any
}

type UsersData struct {
	Users []models.User
}

type AuthorsData struct {
	Authors []models.Author
}

type EbooksData struct {
	Authors []models.Author
	Ebooks  []models.Ebook
}

type Loader struct {
	api    API
	logger *slog.Logger
}

func NewLoader(api API, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{api: api, logger: logger}
}

func redirectToLogin() Result {
	return Result{Redirect: session.LoginPath}
}

func (l *Loader) Users(r *http.Request) (Result, error) {
	cred, ok := session.Gate(r)
	if !ok {
		return redirectToLogin(), nil
	}
	users, err := l.api.ListUsers(r.Context(), cred)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load users: %w", err)
	}
	return Result{Data: UsersData{Users: users}}, nil
}

func (l *Loader) Authors(r *http.Request) (Result, error) {
	cred, ok := session.Gate(r)
	if !ok {
		return redirectToLogin(), nil
	}
	authors, err := l.api.ListAuthors(r.Context(), cred)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load authors: %w", err)
	}
	return Result{Data: AuthorsData{Authors: authors}}, nil
}

// Ebooks fetches authors (for the author pickers) and ebooks in parallel.
func (l *Loader) Ebooks(r *http.Request) (Result, error) {
	cred, ok := session.Gate(r)
	if !ok {
		return redirectToLogin(), nil
	}

	var data EbooksData
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		authors, err := l.api.ListAuthors(ctx, cred)
		if err != nil {
			return fmt.Errorf("failed to load authors: %w", err)
		}
		data.Authors = authors
		return nil
	})
	g.Go(func() error {
		ebooks, err := l.api.ListEbooks(ctx, cred)
		if err != nil {
			return fmt.Errorf("failed to load ebooks: %w", err)
		}
		data.Ebooks = ebooks
		return nil
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	l.logger.DebugContext(r.Context(), "Loaded ebooks page", "authors", len(data.Authors), "ebooks", len(data.Ebooks))
	return Result{Data: data}, nil
}
