package handlers

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/go-chi/jwtauth"

	"github.com/avvvet/monopoly-services/internal/gamesvc/engine"
)

type Handler struct {
	tokenAuth *jwtauth.JWTAuth
	engine    *engine.Engine
}

func NewHandler(eng *engine.Engine) *Handler {
	return &Handler{engine: eng}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func (rs *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	json.NewEncoder(w).Encode(rsp)
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "game service is running at port " + os.Getenv("GAME_SERVICE_PORT"),
		Code:    200,
		Data:    nil,
	}
	json.NewEncoder(w).Encode(rsp)
}

// GamesHandler lists the waiting lobby over plain HTTP, for clients that
// poll before opening a socket.
func (h *Handler) GamesHandler(w http.ResponseWriter, r *http.Request) {
	games, err := h.engine.ListOpenGames(r.Context())
	if err != nil {
		h.CreateResponse(w, Response{
			Message: "unable to list games",
			Code:    http.StatusInternalServerError,
			Error:   "internal_error",
		})
		return
	}

	h.CreateResponse(w, Response{
		Message: "open games",
		Code:    http.StatusOK,
		Data:    games,
	})
}
