package apiclient

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreybb/bookpot-admin/models"
)

func TestMultipart_PreservesOrderAndDefaultsContentType(t *testing.T) {
	body, contentType, err := NewMultipart().
		Field("contentType", "").
		Field("filename", "cover.bin").
		File("file", models.Upload{Filename: "cover.bin", Data: []byte{1, 2, 3}}).
		Encode()
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mediaType)

	r := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	var names []string
	for {
		p, err := r.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		names = append(names, p.FormName())
		if p.FormName() == "file" {
			assert.Equal(t, "cover.bin", p.FileName())
			assert.Equal(t, "application/octet-stream", p.Header.Get("Content-Type"))
			data, err := io.ReadAll(p)
			require.NoError(t, err)
			assert.Equal(t, []byte{1, 2, 3}, data)
		}
	}
	assert.Equal(t, []string{"contentType", "filename", "file"}, names)
}

func TestJSON_EncodeError(t *testing.T) {
	_, _, err := JSON(func() {}).Encode()
	require.Error(t, err)
}
