package ipfs

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v0/add", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "pic.jpg", header.Filename)
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "jpeg bytes", string(data))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Name":"pic.jpg","Hash":"QmTestHash","Size":"10"}`))
	}))
	defer srv.Close()

	uploader := NewUploader(Config{APIURL: srv.URL})

	address, err := uploader.Upload(context.Background(), strings.NewReader("jpeg bytes"), 10, "pic.jpg")
	require.NoError(t, err)
	assert.Equal(t, "ipfs://QmTestHash", address)
}

func TestUploadMissingHash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	uploader := NewUploader(Config{APIURL: srv.URL})

	_, err := uploader.Upload(context.Background(), strings.NewReader("x"), 1, "pic.jpg")
	assert.ErrorContains(t, err, "no hash")
}

func TestUploadNodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "repo is locked", http.StatusInternalServerError)
	}))
	defer srv.Close()

	uploader := NewUploader(Config{APIURL: srv.URL})

	_, err := uploader.Upload(context.Background(), strings.NewReader("x"), 1, "pic.jpg")
	require.Error(t, err)
	assert.ErrorContains(t, err, "status 500")
}
