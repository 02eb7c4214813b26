package docmeta

import (
	"encoding/json"
	"errors"
	"net/http"

	"docroom/internal/docmeta/model"
	"docroom/internal/docmeta/service"
	"docroom/internal/docmeta/store"
	"docroom/pkg/logger"
)

// Handler serves the /api/docs CRUD endpoints.
type Handler struct {
	Service *service.DocService
}

func NewHandler(svc *service.DocService) *Handler {
	return &Handler{Service: svc}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.Service.List(r.Context())
	if err != nil {
		logger.Sugar.Errorf("Error fetching documents: %v", err)
		http.Error(w, "Failed to list documents", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(docs)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateDocRequest
	_ = json.NewDecoder(r.Body).Decode(&req) // Ignore error, default to empty

	doc, err := h.Service.Create(r.Context(), req.Title)
	if err != nil {
		logger.Sugar.Errorf("Failed to create document: %v", err)
		http.Error(w, "Failed to create document", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(doc)
}

func (h *Handler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req model.UpdateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	doc, err := h.Service.UpdateTitle(r.Context(), id, req.Title)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Document not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to update title for doc %s: %v", id, err)
		http.Error(w, "Failed to update document", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := h.Service.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Document not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to delete document %s: %v", id, err)
		http.Error(w, "Failed to delete document", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Document deleted successfully"))
}
