package uploadservice

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperror "gostorefront/internal/errors"
	"gostorefront/internal/pkg/logger"
)

func newTestUpload(url string) *Service {
	return NewService(url, "preset-de-teste", 5*time.Second, logger.NewLogger("error"))
}

// TestUploadImage_Success testa o envio multipart e o parse da URL segura.
func TestUploadImage_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "preset-de-teste", r.FormValue("upload_preset"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "capa.png", header.Filename)

		w.Write([]byte(`{"secure_url": "https://cdn.example.com/capa.png"}`))
	}))
	defer server.Close()

	url, err := newTestUpload(server.URL).UploadImage(context.Background(), "capa.png",
		strings.NewReader("bytes-da-imagem"))

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/capa.png", url)
}

// TestUploadImage_Fail_Rejected testa que rejeição do host vira
// UploadError, nunca ApiError.
func TestUploadImage_Fail_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := newTestUpload(server.URL).UploadImage(context.Background(), "x.png", strings.NewReader("x"))

	require.Error(t, err)
	var upErr *apperror.UploadError
	assert.ErrorAs(t, err, &upErr)
	var apiErr *apperror.ApiError
	assert.False(t, errors.As(err, &apiErr), "nunca ApiError")
}

// TestUploadImage_Fail_MissingSecureURL testa resposta sem secure_url.
func TestUploadImage_Fail_MissingSecureURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := newTestUpload(server.URL).UploadImage(context.Background(), "x.png", strings.NewReader("x"))

	require.Error(t, err)
	var upErr *apperror.UploadError
	assert.ErrorAs(t, err, &upErr)
}
