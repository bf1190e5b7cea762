package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sandtable-catalog/catalog"
	"sandtable-catalog/handlers/api/patterns"
	"sandtable-catalog/handlers/api/playlists"
	"sandtable-catalog/handlers/auth"
	authMiddleware "sandtable-catalog/middleware"
	"sandtable-catalog/stores"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func setupRouter(catalogService *catalog.Service, authService *auth.Service) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Content-Length", "X-CSRF-Token", "Token", "session", "Origin", "Host", "Connection", "Accept-Encoding", "Accept-Language", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.Post("/auth", authService.HandleAuth())

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.AuthJWT(authService))

		r.Route("/patterns", func(r chi.Router) {
			r.Get("/", patterns.HandleList(catalogService))
			r.With(authMiddleware.RequireAdmin).Post("/", patterns.HandleCreate(catalogService))
			r.Route("/{uuid}", func(r chi.Router) {
				r.Get("/", patterns.HandleGet(catalogService))
				r.Get("/data", patterns.HandleGetData(catalogService))
				r.Get("/thumb.png", patterns.HandleGetThumbnail(catalogService))
			})
		})

		r.Route("/playlists", func(r chi.Router) {
			r.Get("/", playlists.HandleList(catalogService))
			r.With(authMiddleware.RequireAdmin).Post("/", playlists.HandleCreate(catalogService))
			r.Get("/{uuid}", playlists.HandleGet(catalogService))
		})
	})

	return r
}

func waitForShutdown(srv *http.Server) {
	signalC := make(chan os.Signal, 1)
	signal.Notify(signalC, os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	<-signalC

	logrus.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server shutdown failed")
	}
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}

	listenAddress := flag.String("listen", ":3002", "The address to listen on.")
	logLevel := flag.String("loglevel", "info", "The log level (debug, info, warn, error).")
	flag.Parse()

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	store := stores.GetStore()
	catalogService := catalog.NewService(store)
	authService := auth.NewService(store, []byte(os.Getenv("JWT_SECRET")))

	r := setupRouter(catalogService, authService)

	srv := &http.Server{
		Addr:    *listenAddress,
		Handler: r,
	}

	logrus.WithField("addr", *listenAddress).Info("starting server")
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithField("event", "start server").Fatal(err)
		}
	}()

	waitForShutdown(srv)
}
