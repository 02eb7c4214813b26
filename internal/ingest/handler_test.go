package ingest

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"docroom/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init("error")
	os.Exit(m.Run())
}

func TestCallback(t *testing.T) {
	body := `{
		"room": "room1",
		"data": {
			"blocks": {
				"type": "Map",
				"content": {
					"block-a": {"kind": "paragraph", "text": "hello"},
					"block-b": {"kind": "heading", "text": "title"}
				}
			}
		}
	}`

	req := httptest.NewRequest(http.MethodPost, "/basic-ws-callback", strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewHandler().Callback(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCallbackInvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/basic-ws-callback", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	NewHandler().Callback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCallbackMissingRoom(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/basic-ws-callback", strings.NewReader(`{"data":{}}`))
	rec := httptest.NewRecorder()
	NewHandler().Callback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// snapshotRequest builds a multipart upload carrying payload under field name.
func snapshotRequest(t *testing.T, field string, payload []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "ydoc.bin")
	require.NoError(t, err)
	_, err = fw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/ydoc/room1", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.SetPathValue("room", "room1")
	return req
}

func TestYDoc(t *testing.T) {
	// The payload is an opaque CRDT update; any bytes do.
	req := snapshotRequest(t, "ydoc", []byte{0x01, 0x02, 0xfe, 0xff})
	rec := httptest.NewRecorder()
	NewHandler().YDoc(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestYDocMissingField(t *testing.T) {
	req := snapshotRequest(t, "attachment", []byte("misnamed"))
	rec := httptest.NewRecorder()
	NewHandler().YDoc(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing ydoc form field")
}

func TestYDocMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/ydoc/room1", strings.NewReader("not multipart"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=nope")
	req.SetPathValue("room", "room1")
	rec := httptest.NewRecorder()
	NewHandler().YDoc(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
