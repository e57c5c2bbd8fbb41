package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/eduquip/catalog-backend/internal/config"
	"github.com/eduquip/catalog-backend/internal/container"
	"github.com/eduquip/catalog-backend/internal/logging"
	"github.com/eduquip/catalog-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg := config.Load()

	if err := logging.Init(&cfg.Logging); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}

	c, err := container.New(*cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer c.Cleanup()

	r := chi.NewMux()
	r.Use(middleware.RequestContext)
	r.Use(middleware.RequestLogging)
	r.Use(middleware.NewCORSHandler(&cfg.CORS))
	// Programming errors become generic 500s instead of killing the
	// request-handling task.
	r.Use(chimiddleware.Recoverer)
	r.Mount("/", c.Server.Routes())

	addr := fmt.Sprintf("0.0.0.0:%s", cfg.Server.Port)
	s := &http.Server{
		Handler: r,
		Addr:    addr,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logging.Info("shutting down server")
		c.Cleanup()
		os.Exit(0)
	}()

	logging.Info("server starting", "addr", addr)
	log.Fatal(s.ListenAndServe())
}
