package auth

import (
	"encoding/json"
	"net/http"

	"docroom/pkg/logger"
)

// Permission is the perm-check response in the relay's field names.
type Permission struct {
	Room   string `json:"yroom"`
	Access Access `json:"yaccess"`
	UserID string `json:"yuserid"`
}

// Handler serves the token and permission endpoints.
type Handler struct {
	Issuer     *Issuer
	Authz      Authorizer
	DemoUserID string
}

func NewHandler(issuer *Issuer, authz Authorizer, demoUserID string) *Handler {
	return &Handler{Issuer: issuer, Authz: authz, DemoUserID: demoUserID}
}

// Token hands a signed access token to anyone who asks. A real deployment
// verifies the caller's credentials and derives the user id from them; here
// the id comes from config, or from the yuserid query param when given.
func (h *Handler) Token(w http.ResponseWriter, r *http.Request) {
	userID := h.DemoUserID
	if v := r.URL.Query().Get("yuserid"); v != "" {
		userID = v
	}

	token, err := h.Issuer.Issue(userID)
	if err != nil {
		logger.Sugar.Errorf("Failed to issue token for user %s: %v", userID, err)
		http.Error(w, "Failed to issue token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(token))
}

// Permission reports the user's access to a room. The relay calls this for
// every session it admits; end clients never do.
func (h *Handler) Permission(w http.ResponseWriter, r *http.Request) {
	room := r.PathValue("room")
	userID := r.PathValue("userid")

	access, err := h.Authz.Authorize(r.Context(), userID, room)
	if err != nil {
		logger.Sugar.Errorf("Failed to check access for user %s on room %s: %v", userID, room, err)
		http.Error(w, "Failed to check permission", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Permission{Room: room, Access: access, UserID: userID})
}
