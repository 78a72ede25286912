package blob

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"blob-manager/core/storage"
	"blob-manager/core/storage/memory"
	"blob-manager/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	feature := NewFeature(NewService(memory.New(), zap.NewNop()))
	require.NoError(t, feature.Load(app))
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	resp, err := app.Test(httptest.NewRequest(method, path, reader))
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestLoader(t *testing.T) {
	feature := NewFeature(NewService(memory.New(), nil))
	assert.Equal(t, "blob", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))
}

func TestHandler_Lifecycle(t *testing.T) {
	app := setupTestApp(t)

	status, body := do(t, app, "PUT", "/containers/t1", "")
	assert.Equal(t, fiber.StatusCreated, status)
	assert.JSONEq(t, `{"name":"t1"}`, body)

	status, _ = do(t, app, "PUT", "/containers/t1", "")
	assert.Equal(t, fiber.StatusCreated, status)

	status, _ = do(t, app, "HEAD", "/containers/t1/blobs/dir/f.txt", "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body = do(t, app, "PUT", "/containers/t1/blobs/dir/f.txt", "hello")
	assert.Equal(t, fiber.StatusCreated, status)
	assert.JSONEq(t, `{"container":"t1","name":"dir/f.txt"}`, body)

	status, _ = do(t, app, "HEAD", "/containers/t1/blobs/dir/f.txt", "")
	assert.Equal(t, fiber.StatusOK, status)

	status, body = do(t, app, "GET", "/containers/t1/blobs/dir/f.txt", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "hello", body)

	status, body = do(t, app, "GET", "/containers/t1/blobs/dir/f.txt?encoding=utf-8", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "hello", body)

	status, body = do(t, app, "GET", "/containers/t1/blobs", "")
	assert.Equal(t, fiber.StatusOK, status)
	var list struct {
		Blobs []string `json:"blobs"`
		Count int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	assert.Equal(t, []string{"dir/f.txt"}, list.Blobs)
	assert.Equal(t, 1, list.Count)

	status, body = do(t, app, "GET", "/containers/t1/properties/dir/f.txt", "")
	assert.Equal(t, fiber.StatusOK, status)
	var info storage.BlobInfo
	require.NoError(t, json.Unmarshal([]byte(body), &info))
	assert.Equal(t, int64(5), info.Size)

	status, _ = do(t, app, "DELETE", "/containers/t1/blobs/dir/f.txt", "")
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = do(t, app, "DELETE", "/containers/t1/blobs/dir/f.txt", "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = do(t, app, "DELETE", "/containers/t1", "")
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = do(t, app, "GET", "/containers/t1/blobs", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestHandler_NoOverwrite(t *testing.T) {
	app := setupTestApp(t)
	do(t, app, "PUT", "/containers/c", "")

	status, _ := do(t, app, "PUT", "/containers/c/blobs/n", "one")
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = do(t, app, "PUT", "/containers/c/blobs/n?overwrite=false", "two")
	assert.Equal(t, fiber.StatusConflict, status)

	status, _ = do(t, app, "PUT", "/containers/c/blobs/n", "three")
	assert.Equal(t, fiber.StatusCreated, status)

	_, body := do(t, app, "GET", "/containers/c/blobs/n", "")
	assert.Equal(t, "three", body)
}

func TestHandler_DecodingError(t *testing.T) {
	app := setupTestApp(t)
	do(t, app, "PUT", "/containers/c", "")
	do(t, app, "PUT", "/containers/c/blobs/n", "\xff\xfe")

	status, _ := do(t, app, "GET", "/containers/c/blobs/n?encoding=utf-8", "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, body := do(t, app, "GET", "/containers/c/blobs/n?encoding=latin1", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ÿþ", body)
}

func TestHandler_EscapedName(t *testing.T) {
	app := setupTestApp(t)
	do(t, app, "PUT", "/containers/c", "")

	status, body := do(t, app, "PUT", "/containers/c/blobs/my%20file.txt", "x")
	assert.Equal(t, fiber.StatusCreated, status)
	assert.JSONEq(t, `{"container":"c","name":"my file.txt"}`, body)
}

func TestHandler_BackendFailure(t *testing.T) {
	backend := new(mocks.Backend)
	app := fiber.New()
	NewHandler(NewService(backend, zap.NewNop())).RegisterRoutes(app)

	backend.On("Download", mock.Anything, "c", "n").Return(nil, errors.New("connection reset"))
	backend.On("Stat", mock.Anything, "c", "n").Return(nil, errors.New("connection reset"))

	status, body := do(t, app, "GET", "/containers/c/blobs/n", "")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Contains(t, body, "connection reset")

	status, _ = do(t, app, "HEAD", "/containers/c/blobs/n", "")
	assert.Equal(t, fiber.StatusInternalServerError, status)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, fiber.StatusNotFound, statusFor(storage.NotFound("op", "c", "b", nil)))
	assert.Equal(t, fiber.StatusConflict, statusFor(storage.Conflict("op", "c", "b", nil)))
	assert.Equal(t, fiber.StatusUnprocessableEntity, statusFor(storage.ErrDecoding))
	assert.Equal(t, fiber.StatusInternalServerError, statusFor(errors.New("boom")))
}

func TestHandler_PropertiesETag(t *testing.T) {
	app := setupTestApp(t)
	do(t, app, "PUT", "/containers/c", "")
	do(t, app, "PUT", "/containers/c/blobs/f.txt", "hello")

	resp, err := app.Test(httptest.NewRequest("GET", "/containers/c/properties/f.txt", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, `"5d41402abc4b2a76b9719d911017c592"`, resp.Header.Get("ETag"))
}
