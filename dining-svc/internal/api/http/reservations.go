package httpapi

import (
	"net/http"

	"tableside/dining-svc/internal/domain"
)

func (h *Handler) createReservation(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateReservationInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.Reservations.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handler) getReservations(w http.ResponseWriter, r *http.Request) {
	var (
		filter domain.ReservationFilter
		err    error
	)
	if filter.TableID, err = queryID(r, "table_id"); err != nil {
		h.writeError(w, r, err)
		return
	}
	if filter.UserID, err = queryID(r, "user_id"); err != nil {
		h.writeError(w, r, err)
		return
	}
	filter.Date = r.URL.Query().Get("date")
	for _, s := range queryList(r, "status") {
		filter.Statuses = append(filter.Statuses, domain.ReservationStatus(s))
	}

	list, err := h.Reservations.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) getReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.Reservations.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) updateReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var patch domain.ReservationPatch
	if err := decodeJSON(r, &patch); err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.Reservations.Update(r.Context(), id, patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) cancelReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.Reservations.Cancel(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
