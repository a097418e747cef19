package httpapi

import (
	"net/http"

	"tableside/pkg/httpserver"

	"github.com/gorilla/mux"
)

func NewRouter(handler *Handler) http.Handler {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return httpserver.Wrap("analytics-svc", r, handler.Logger)
}
