package ingest

import (
	"encoding/json"
	"io"
	"net/http"

	"docroom/pkg/logger"
)

// Snapshots are full document states, so the multipart parse gets a generous
// in-memory cap before spilling to disk.
const maxUploadBytes = 32 << 20

// CallbackPayload is the structured snapshot the relay posts after a burst of
// document changes.
type CallbackPayload struct {
	Room string       `json:"room"`
	Data CallbackData `json:"data"`
}

type CallbackData struct {
	Blocks SharedType `json:"blocks"`
}

// SharedType carries one shared type of the document: its kind and its
// current content keyed by block id.
type SharedType struct {
	Type    string                     `json:"type"`
	Content map[string]json.RawMessage `json:"content"`
}

// Handler receives document-state snapshots from the relay. Snapshots are
// read once, logged, and discarded; nothing here is persisted.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Callback handles the structured JSON snapshot.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	var payload CallbackPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Room == "" {
		http.Error(w, "Missing room field", http.StatusBadRequest)
		return
	}

	logger.Sugar.Infof("Room %s changed: %d blocks (%s)",
		payload.Room, len(payload.Data.Blocks.Content), payload.Data.Blocks.Type)
	w.WriteHeader(http.StatusOK)
}

// YDoc handles the binary snapshot: multipart field "ydoc" holds the encoded
// document. The payload is opaque here; decoding CRDT state is the document
// engine's job, so the log carries room and size only.
func (h *Handler) YDoc(w http.ResponseWriter, r *http.Request) {
	room := r.PathValue("room")

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		logger.Sugar.Errorf("Failed to parse snapshot upload for room %s: %v", room, err)
		http.Error(w, "Failed to parse multipart body", http.StatusInternalServerError)
		return
	}

	file, _, err := r.FormFile("ydoc")
	if err != nil {
		http.Error(w, "Missing ydoc form field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	size, err := io.Copy(io.Discard, file)
	if err != nil {
		logger.Sugar.Errorf("Failed to read snapshot for room %s: %v", room, err)
		http.Error(w, "Failed to read snapshot", http.StatusInternalServerError)
		return
	}

	logger.Sugar.Infof("Room %s snapshot received: %d bytes", room, size)
	w.WriteHeader(http.StatusOK)
}
