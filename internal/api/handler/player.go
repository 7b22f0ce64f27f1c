package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/tournament/internal/api/apierr"
	"github.com/mcoot/tournament/internal/api/request"
	"github.com/mcoot/tournament/internal/api/response"
	"github.com/mcoot/tournament/internal/model"
	"github.com/mcoot/tournament/internal/services/player"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	playerService *player.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(playerService *player.Service) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
	}
}

// Create handles POST /api/v1/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePlayerRequest
	if err := request.Decode(w, r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	msg, err := h.playerService.AddPlayer(r.Context(), player.PlayerInput{
		Pseudo: req.Pseudo,
		Points: request.IntPtr(req.Points),
		Rank:   req.Rank,
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.Text(w, http.StatusCreated, msg)
}

// Update handles PUT /api/v1/players/{pseudo}?forceCreate=true
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	pseudo, err := pathPseudo(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.UpdatePlayerRequest
	if err := request.Decode(w, r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	forceCreate := strings.EqualFold(r.URL.Query().Get("forceCreate"), "true")
	msg, err := h.playerService.UpdatePlayer(r.Context(), pseudo, player.PlayerUpdate{
		Points: request.IntPtr(req.Points),
		Rank:   req.Rank,
	}, forceCreate)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.Text(w, http.StatusCreated, msg)
}

// Get handles GET /api/v1/players/{pseudo}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	pseudo, err := pathPseudo(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	p, err := h.playerService.GetPlayer(r.Context(), pseudo)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// List handles GET /api/v1/players?sortBy=points
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerService.ListPlayers(r.Context(), r.URL.Query().Get("sortBy"))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// Delete handles DELETE /api/v1/players/{pseudo}
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	pseudo, err := pathPseudo(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	msg, err := h.playerService.DeletePlayer(r.Context(), pseudo)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.Text(w, http.StatusOK, msg)
}

// pathPseudo returns the decoded {pseudo} segment. The router matches on the
// encoded path, so "AC%2FDC" arrives here still escaped.
func pathPseudo(r *http.Request) (string, error) {
	pseudo, err := url.PathUnescape(mux.Vars(r)["pseudo"])
	if err != nil {
		return "", apierr.NewParsingError("Unable to parse pseudo in path: " + err.Error())
	}
	return pseudo, nil
}

// NotFound answers requests that match no route
func NotFound(w http.ResponseWriter, r *http.Request) {
	apierr.WriteError(w, model.Single(model.NewErrorWithCode(model.KindUnavailable,
		fmt.Sprintf("No route for %s %s", r.Method, r.URL.EscapedPath()), http.StatusNotFound)))
}

// MethodNotAllowed answers requests whose path matches a route but not its method
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	apierr.WriteError(w, model.Single(model.NewErrorWithCode(model.KindUnavailable,
		fmt.Sprintf("Method %s is not allowed on %s", r.Method, r.URL.EscapedPath()), http.StatusMethodNotAllowed)))
}
