package http

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/clubly/clubly/infrastructure/http/handler"
	"github.com/clubly/clubly/infrastructure/http/middleware"
)

// NewRouter wires every route behind the correlation middleware.
// Admin routes additionally require an authenticated admin token.
func NewRouter(
	authHandler *handler.AuthHandler,
	adminHandler *handler.AdminHandler,
	eventHandler *handler.EventHandler,
	authMiddleware *middleware.AuthMiddleware,
) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"status":"healthy"}`)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	api.HandleFunc("/events", authMiddleware.RequireAuth(eventHandler.PublishEvent)).Methods(http.MethodPost)
	api.HandleFunc("/events/capacity-check", authMiddleware.RequireAuth(eventHandler.CanUpgradeCapacity)).Methods(http.MethodGet)

	api.HandleFunc("/admin/users/{id}/credits", authMiddleware.RequireAdmin(adminHandler.GrantCredit)).Methods(http.MethodPost)
	api.HandleFunc("/admin/users/{id}/subscription/extend", authMiddleware.RequireAdmin(adminHandler.ExtendSubscription)).Methods(http.MethodPost)
	api.HandleFunc("/admin/users/{id}/status", authMiddleware.RequireAdmin(adminHandler.SetAccountStatus)).Methods(http.MethodPut)
	api.HandleFunc("/admin/audit", authMiddleware.RequireAdmin(adminHandler.ListAuditTrail)).Methods(http.MethodGet)

	return middleware.CorrelationIDMiddleware(r)
}
