package httpapi

import (
	"net/http"

	"tableside/dining-svc/internal/domain"
	"tableside/dining-svc/internal/service"
)

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateOrderInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	order, err := h.Orders.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func orderFilter(r *http.Request) (domain.OrderFilter, error) {
	var (
		filter domain.OrderFilter
		err    error
	)
	if filter.TableID, err = queryID(r, "table_id"); err != nil {
		return filter, err
	}
	if filter.BuyerID, err = queryID(r, "buyer_id"); err != nil {
		return filter, err
	}
	for _, s := range queryList(r, "status") {
		filter.Statuses = append(filter.Statuses, domain.OrderStatus(s))
	}
	return filter, nil
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	filter, err := orderFilter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	orders, err := h.Orders.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getGroupedOrders(w http.ResponseWriter, r *http.Request) {
	filter, err := orderFilter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	groups, err := h.Orders.ListGrouped(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if groups == nil {
		groups = []domain.TableOrderGroup{}
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	order, err := h.Orders.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.Orders.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var body struct {
		Status      domain.OrderStatus  `json:"status"`
		TableAction service.TableAction `json:"table_action"`
	}
	if err := decodeJSON(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	order, err := h.Orders.UpdateStatus(r.Context(), id, body.Status, body.TableAction)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) payOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	order, err := h.Orders.MarkPaid(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var body struct {
		Buyer string `json:"buyer"`
	}
	if err := decodeJSON(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	order, err := h.Orders.CancelByCustomer(r.Context(), id, body.Buyer)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
