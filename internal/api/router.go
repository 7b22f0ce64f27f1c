package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tournament/internal/api/handler"
	"github.com/mcoot/tournament/internal/api/middleware"
	"github.com/mcoot/tournament/internal/services/player"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	PlayerService *player.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	// Pseudos may contain "/" or be "..", so match on the raw encoded path
	r := mux.NewRouter().UseEncodedPath().SkipClean(true)
	r.NotFoundHandler = http.HandlerFunc(handler.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handler.MethodNotAllowed)

	playerHandler := handler.NewPlayerHandler(cfg.PlayerService)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Stack(cfg.Logger)...)

	players := api.PathPrefix("/players").Subrouter()
	players.HandleFunc("", playerHandler.Create).Methods(http.MethodPost)
	players.HandleFunc("", playerHandler.List).Methods(http.MethodGet)
	players.HandleFunc("/{pseudo}", playerHandler.Get).Methods(http.MethodGet)
	players.HandleFunc("/{pseudo}", playerHandler.Update).Methods(http.MethodPut)
	players.HandleFunc("/{pseudo}", playerHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return middleware.CORS(r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
