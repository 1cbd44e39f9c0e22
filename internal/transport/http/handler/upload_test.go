package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogql/internal/pkg/jwtutil"
	"blogql/internal/transport/http/middleware"
)

const testSecret = "test-secret"

func uploadRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()

	router := gin.New()
	router.Use(middleware.Identity(testSecret))
	router.PUT("/post-image", NewUploadHandler(dir, 5).Store)
	return router, dir
}

func bearerToken(t *testing.T) string {
	t.Helper()
	token, err := jwtutil.GenerateToken(testSecret, time.Hour, 1, "reader@example.com")
	require.NoError(t, err)
	return "Bearer " + token
}

func multipartImage(t *testing.T, fileName, contentType string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if fileName != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="image"; filename="`+fileName+`"`)
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("not-really-pixels"))
		require.NoError(t, err)
	}
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func putImage(t *testing.T, router *gin.Engine, body *bytes.Buffer, contentType, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/post-image", body)
	req.Header.Set("Content-Type", contentType)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	return decoded
}

func TestUpload_Unauthenticated(t *testing.T) {
	router, _ := uploadRouter(t)
	body, contentType := multipartImage(t, "pic.png", "image/png", nil)

	w := putImage(t, router, body, contentType, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not authenticated!", decodeBody(t, w)["message"])
}

func TestUpload_StoresPNG(t *testing.T) {
	router, dir := uploadRouter(t)
	body, contentType := multipartImage(t, "pic.png", "image/png", nil)

	w := putImage(t, router, body, contentType, bearerToken(t))
	require.Equal(t, http.StatusCreated, w.Code)

	decoded := decodeBody(t, w)
	assert.Equal(t, "File stored.", decoded["message"])

	filePath, ok := decoded["filePath"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(filePath, ".png"))

	stored, err := os.ReadFile(filepath.FromSlash(filePath))
	require.NoError(t, err)
	assert.Equal(t, "not-really-pixels", string(stored))
	_ = dir
}

func TestUpload_GifFilteredNotRejected(t *testing.T) {
	router, dir := uploadRouter(t)
	body, contentType := multipartImage(t, "anim.gif", "image/gif", nil)

	w := putImage(t, router, body, contentType, bearerToken(t))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "No image provided!", decodeBody(t, w)["message"])

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "filtered uploads are never written")
}

func TestUpload_NoFile(t *testing.T) {
	router, _ := uploadRouter(t)
	body, contentType := multipartImage(t, "", "", nil)

	w := putImage(t, router, body, contentType, bearerToken(t))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "No image provided!", decodeBody(t, w)["message"])
}

func TestUpload_DeletesOldImage(t *testing.T) {
	router, dir := uploadRouter(t)

	oldPath := filepath.Join(dir, "old.png")
	require.NoError(t, os.WriteFile(oldPath, []byte("old"), 0o644))

	body, contentType := multipartImage(t, "pic.jpeg", "image/jpeg", map[string]string{
		"oldPath": filepath.ToSlash(oldPath),
	})
	w := putImage(t, router, body, contentType, bearerToken(t))
	require.Equal(t, http.StatusCreated, w.Code)

	_, err := os.Stat(oldPath)
	assert.True(t, os.IsNotExist(err), "replaced image is removed")
}

func TestUpload_OldPathOutsideDirIgnored(t *testing.T) {
	router, _ := uploadRouter(t)

	outside := filepath.Join(t.TempDir(), "keep.png")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o644))

	body, contentType := multipartImage(t, "pic.png", "image/png", map[string]string{
		"oldPath": filepath.ToSlash(outside),
	})
	w := putImage(t, router, body, contentType, bearerToken(t))
	require.Equal(t, http.StatusCreated, w.Code)

	_, err := os.Stat(outside)
	assert.NoError(t, err, "paths outside the upload dir are never deleted")
}
