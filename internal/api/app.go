package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/handlers"

	"github.com/rentcore/rentcore/internal/assistant"
	"github.com/rentcore/rentcore/internal/config"
	"github.com/rentcore/rentcore/internal/session"
	"github.com/rentcore/rentcore/internal/stats"
)

type RentcoreApp struct {
	log            *log.Logger
	session        *session.Controller
	assistant      assistant.Service
	stats          stats.Provider
	mux            *http.Server
	signingKey     []byte
	allowedOrigins []string
}

func NewRentcoreApp(mux *http.ServeMux, logger *log.Logger, ctrl *session.Controller, asst assistant.Service, sp stats.Provider, cfg *config.Config) *RentcoreApp {
	s := &RentcoreApp{
		log:            logger,
		session:        ctrl,
		assistant:      asst,
		stats:          sp,
		signingKey:     cfg.SigningKey,
		allowedOrigins: cfg.AllowedOrigins,
	}

	mux.HandleFunc("GET /healthz", s.healthCheck)

	mux.HandleFunc("POST /api/auth/register", s.register)
	mux.HandleFunc("POST /api/auth/login", s.login)
	mux.HandleFunc("GET /api/auth/session", s.authMiddleware(s.sessionUser))
	mux.HandleFunc("GET /api/auth/logout", s.authMiddleware(s.logout))

	mux.HandleFunc("GET /api/properties", s.listProperties)
	mux.HandleFunc("POST /api/properties", s.authMiddleware(s.createProperty))
	mux.HandleFunc("PUT /api/properties", s.authMiddleware(s.updateProperty))
	mux.HandleFunc("DELETE /api/properties", s.authMiddleware(s.deleteProperty))
	mux.HandleFunc("POST /api/properties/views", s.incrementViews)
	mux.HandleFunc("GET /api/account/properties", s.authMiddleware(s.ownProperties))

	mux.HandleFunc("GET /api/cities", s.listCities)
	mux.HandleFunc("GET /api/neighborhoods", s.listNeighborhoods)

	mux.HandleFunc("GET /api/favorites", s.authMiddleware(s.listFavorites))
	mux.HandleFunc("POST /api/favorites", s.authMiddleware(s.toggleFavorite))

	mux.HandleFunc("GET /api/chats", s.authMiddleware(s.listChats))
	mux.HandleFunc("POST /api/messages", s.optionalAuthMiddleware(s.sendMessage))

	mux.HandleFunc("GET /api/contracts", s.authMiddleware(s.listContracts))
	mux.HandleFunc("POST /api/contracts", s.authMiddleware(s.createContract))

	mux.HandleFunc("POST /api/account/radar", s.authMiddleware(s.setRadar))

	mux.HandleFunc("POST /api/admin/properties/toggle", s.authMiddleware(s.adminToggleProperty))
	mux.HandleFunc("POST /api/admin/users/block", s.authMiddleware(s.adminToggleUserBlock))
	mux.HandleFunc("POST /api/admin/users/verify", s.authMiddleware(s.adminVerifyUser))
	mux.HandleFunc("GET /api/admin/users", s.authMiddleware(s.adminListUsers))
	mux.HandleFunc("POST /api/admin/cities", s.authMiddleware(s.adminAddCity))
	mux.HandleFunc("DELETE /api/admin/cities", s.authMiddleware(s.adminRemoveCity))
	mux.HandleFunc("POST /api/admin/cities/toggle", s.authMiddleware(s.adminToggleCity))
	mux.HandleFunc("PUT /api/admin/neighborhoods", s.authMiddleware(s.adminUpdateNeighborhoods))

	mux.HandleFunc("GET /api/assistant", s.askAssistant)

	mux.HandleFunc("GET /ws", s.authMiddleware(s.serveWs))

	h := handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept"}),
		handlers.AllowCredentials(),
	)(mux)

	h = s.errorHandler(h)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: h,
	}

	s.mux = srv
	return s
}

func (s *RentcoreApp) writeJson(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Printf("json encode: %v", err)
	}
}

func (s *RentcoreApp) healthCheck(w http.ResponseWriter, _ *http.Request) {
	if err := s.session.Ping(); err != nil {
		s.log.Println("health check:", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

func (s *RentcoreApp) Start() error {
	s.log.Printf("starting server on %s\n", s.mux.Addr)
	return s.mux.ListenAndServe()
}

func (s *RentcoreApp) Shutdown(ctx context.Context) error {
	s.log.Println("shutting down HTTP server...")
	if err := s.mux.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
