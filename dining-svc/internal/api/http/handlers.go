package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"tableside/dining-svc/internal/identity"
	"tableside/dining-svc/internal/service"
	"tableside/pkg/logger"

	"github.com/gorilla/mux"
)

type Handler struct {
	Tables       service.TableServiceInterface
	Orders       service.OrderServiceInterface
	Reservations service.ReservationServiceInterface
	Menu         service.MenuServiceInterface
	Users        service.UserServiceInterface
	Verifier     *identity.Verifier
	Logger       *slog.Logger

	// UploadsDir, when set, is served under /uploads/ for the local media store.
	UploadsDir string
}

func NewHandler(tables service.TableServiceInterface, orders service.OrderServiceInterface,
	reservations service.ReservationServiceInterface, menu service.MenuServiceInterface,
	users service.UserServiceInterface, verifier *identity.Verifier, log *slog.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{
		Tables:       tables,
		Orders:       orders,
		Reservations: reservations,
		Menu:         menu,
		Users:        users,
		Verifier:     verifier,
		Logger:       log,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/menu", h.createMenuItem).Methods("POST")
	r.HandleFunc("/api/menu/{id}", h.getMenuItem).Methods("GET")
	r.HandleFunc("/api/menu/{id}", h.updateMenuItem).Methods("PATCH")
	r.HandleFunc("/api/menu/{id}", h.deleteMenuItem).Methods("DELETE")
	r.HandleFunc("/api/menu/{id}/image", h.uploadMenuImage).Methods("POST")
	r.HandleFunc("/api/menu/{id}/image", h.setMenuImageURL).Methods("PUT")

	r.HandleFunc("/api/categories", h.getCategories).Methods("GET")
	r.HandleFunc("/api/categories", h.createCategory).Methods("POST")
	r.HandleFunc("/api/categories/{id}", h.deleteCategory).Methods("DELETE")

	r.HandleFunc("/api/tables", h.createTable).Methods("POST")
	r.HandleFunc("/api/tables", h.getTables).Methods("GET")
	r.HandleFunc("/api/tables/{id}", h.getTable).Methods("GET")
	r.HandleFunc("/api/tables/{id}", h.updateTable).Methods("PUT")
	r.HandleFunc("/api/tables/{id}", h.deleteTable).Methods("DELETE")
	r.HandleFunc("/api/tables/{id}/available", h.markTableAvailable).Methods("POST")
	r.HandleFunc("/api/tables/{id}/unavailable", h.markTableUnavailable).Methods("POST")
	r.HandleFunc("/api/tables/{id}/orders", h.getTableOrders).Methods("GET")
	r.HandleFunc("/api/tables/{id}/qrcode", h.getTableQRCode).Methods("GET")

	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders/grouped", h.getGroupedOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.deleteOrder).Methods("DELETE")
	r.HandleFunc("/api/orders/{id}/status", h.updateOrderStatus).Methods("PATCH")
	r.HandleFunc("/api/orders/{id}/pay", h.payOrder).Methods("POST")
	r.HandleFunc("/api/orders/{id}/cancel", h.cancelOrder).Methods("POST")

	r.HandleFunc("/api/reservations", h.createReservation).Methods("POST")
	r.HandleFunc("/api/reservations", h.getReservations).Methods("GET")
	r.HandleFunc("/api/reservations/{id}", h.getReservation).Methods("GET")
	r.HandleFunc("/api/reservations/{id}", h.updateReservation).Methods("PATCH")
	r.HandleFunc("/api/reservations/{id}/cancel", h.cancelReservation).Methods("POST")

	r.HandleFunc("/api/users", h.getUsers).Methods("GET")
	r.HandleFunc("/api/users/{id}", h.getUser).Methods("GET")

	r.HandleFunc("/api/webhooks/identity", h.identityWebhook).Methods("POST")

	if h.UploadsDir != "" {
		r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.UploadsDir))))
	}
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   "dining-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
