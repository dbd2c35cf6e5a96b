package routes

import (
	"os"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"

	"github.com/avvvet/monopoly-services/internal/socketsvc/handlers"
	"github.com/avvvet/monopoly-services/internal/socketsvc/ws"
)

var tokenAuth *jwtauth.JWTAuth

func InitAuth() {
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}
	tokenAuth = jwtauth.New("HS256", []byte(secret), nil)
}

func SetRoutes(r *chi.Mux, ws *ws.Ws) {
	h := handlers.NewHandler(ws)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/ws", h.HandleWebSocket)

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(tokenAuth))
			r.Use(jwtauth.Authenticator)
			r.Get("/health", h.HealthHandler)
		})
	})
}
