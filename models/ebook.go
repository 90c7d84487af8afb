package models

import "time"

type Ebook struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Price          int64     `json:"price"`
	Intro          string    `json:"intro"`
	AuthorID       int64     `json:"authorId"`
	IsPublish      bool      `json:"isPublish"`
	CreatedAt      time.Time `json:"createdAt"`
	ThumbnailURL   string    `json:"thumbnailUrl"`
	DescriptionURL string    `json:"descriptionUrl"`
	PreviewURL     string    `json:"previewUrl"`
	PDFURL         string    `json:"pdfUrl"`
	Author         *Author   `json:"author,omitempty"`
}

// AssetURL returns the stored URL for the given asset slot, or "" when the
// slot has not been populated yet.
func (e Ebook) AssetURL(kind AssetKind) string {
	switch kind {
	case AssetThumbnail:
		return e.ThumbnailURL
	case AssetDescription:
		return e.DescriptionURL
	case AssetPreview:
		return e.PreviewURL
	case AssetPDF:
		return e.PDFURL
	default:
		return ""
	}
}

// IsComplete reports whether all four assets have been attached.
func (e Ebook) IsComplete() bool {
	for _, kind := range AssetKinds {
		if e.AssetURL(kind) == "" {
			return false
		}
	}
	return true
}

// EbookRequest is the JSON body shared by ebook creation and update.
type EbookRequest struct {
	Title     string `json:"title"`
	Intro     string `json:"intro"`
	Price     int64  `json:"price"`
	AuthorID  int64  `json:"authorId"`
	IsPublish bool   `json:"isPublish"`
}

// EbookCreated is the subset of the creation response the dashboard needs.
type EbookCreated struct {
	ID int64 `json:"id"`
}
