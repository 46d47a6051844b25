// Package main serves stored dataset health reports over HTTP.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ares-data/wellbore.report/internal/api"
	"github.com/ares-data/wellbore.report/internal/db"
	"github.com/ares-data/wellbore.report/internal/version"
)

func main() {
	var (
		listen = flag.String("listen", ":8080", "Listen address")
		dbPath = flag.String("db", "health_reports.db", "SQLite history database path")
	)
	flag.Parse()

	store, err := db.NewDB(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open history database: %v", err)
	}
	defer store.Close()

	server := &http.Server{
		Addr:    *listen,
		Handler: api.NewServer(store).ServeMux(),
	}

	go func() {
		log.Printf("Health report API %s listening on %s (db: %s)", version.Version, *listen, *dbPath)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Printf("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
