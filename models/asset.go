package models

import "strings"

// AssetKind identifies one of the four files attached to an ebook. The string
// value doubles as the endpoint segment (/ebooks/{id}/{kind}) and the form
// field name.
type AssetKind string

const (
	AssetThumbnail   AssetKind = "thumbnail"
	AssetDescription AssetKind = "description"
	AssetPreview     AssetKind = "preview"
	AssetPDF         AssetKind = "pdf"
)

// AssetKinds lists every asset kind in upload order.
var AssetKinds = []AssetKind{AssetThumbnail, AssetDescription, AssetPreview, AssetPDF}

// IsValidAssetKind checks if the provided string names an AssetKind.
func IsValidAssetKind(s string) (AssetKind, bool) {
	kind := AssetKind(strings.ToLower(s))
	switch kind {
	case AssetThumbnail, AssetDescription, AssetPreview, AssetPDF:
		return kind, true
	default:
		return "", false
	}
}

// Upload is a selected file turned into something that can be sent over the
// wire.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}
