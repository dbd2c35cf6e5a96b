package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	config "github.com/avvvet/monopoly-services/configs"
	mongodb "github.com/avvvet/monopoly-services/internal/db"
	"github.com/avvvet/monopoly-services/internal/gamesvc/broker"
	"github.com/avvvet/monopoly-services/internal/gamesvc/db"
	"github.com/avvvet/monopoly-services/internal/gamesvc/engine"
	handlers "github.com/avvvet/monopoly-services/internal/gamesvc/handlers"
	"github.com/avvvet/monopoly-services/internal/gamesvc/seed"
	"github.com/avvvet/monopoly-services/internal/gamesvc/service"
	"github.com/avvvet/monopoly-services/internal/gamesvc/store"
	nats "github.com/avvvet/monopoly-services/internal/nats"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "game"

var instanceId string

func init() {
	instanceId = "001"
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {

	// pg connection
	dbpool, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Printf("pg connection established successfully")

	ctx := context.Background()
	if err := store.Migrate(ctx, dbpool); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}
	if err := seed.Ensure(ctx, dbpool); err != nil {
		log.Fatalf("Failed to seed board data: %v", err)
	}

	// mongo holds the expiring chat history
	mdb, cancelMongo, err := mongodb.ConnectToDB()
	if err != nil {
		log.Fatalf("Failed to connect to mongo: %v", err)
	}
	defer cancelMongo()
	mongodb.CreateTTLIndexForCollection(mdb, "game_chats")

	userStore := store.NewUserStore(dbpool)
	userService := service.NewUserService(userStore)

	walletStore := store.NewWalletStore(dbpool)
	walletService := service.NewWalletService(walletStore)

	chatStore := store.NewChatStore(mdb)
	chatService := service.NewChatService(chatStore)

	ledger := store.NewLedger(dbpool)
	eng := engine.New(ledger)

	// Connect to NATS
	n, err := nats.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}

	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	// init peer message broker
	broker := broker.NewBroker(n.Conn, eng, userService, walletService, chatService)

	// subscribe to socket service
	topic := "socket.service"
	sub, err := broker.SubscribSocketService(topic)
	if err != nil {
		log.Errorf("Error: unable to subscribe to queue %v", err)
		os.Exit(0)
	}

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimitStr := os.Getenv("RATE_LIMIT")
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil {
		log.Fatalf("Invalid RATE_LIMIT value: %v", err)
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(eng)
	h.InitAuth()
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + os.Getenv("GAME_SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	sub.Unsubscribe()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
