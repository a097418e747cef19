package httpapi

import (
	"io"
	"net/http"

	"tableside/dining-svc/internal/identity"
)

const maxWebhookBody = 1 << 20

func (h *Handler) getUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	user, err := h.Users.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// identityWebhook rejects anything unsigned or malformed with 400 before
// touching storage. Storage failures answer 500 so the provider retries.
func (h *Handler) identityWebhook(w http.ResponseWriter, r *http.Request) {
	if h.Verifier == nil {
		writeMessage(w, http.StatusServiceUnavailable, "identity webhook is not configured")
		return
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "could not read body")
		return
	}

	messageID, err := h.Verifier.Verify(r.Header, payload)
	if err != nil {
		h.Logger.WarnContext(r.Context(), "rejected identity webhook", "error", err)
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := identity.ParseEvent(payload)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	applied, err := h.Users.ApplyIdentityEvent(r.Context(), messageID, event)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.Logger.InfoContext(r.Context(), "identity webhook processed",
		"svix_id", messageID, "type", event.Type, "applied", applied)
	writeJSON(w, http.StatusOK, map[string]any{"received": true, "applied": applied})
}
