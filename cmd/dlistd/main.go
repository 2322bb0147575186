// Command dlistd is a small demo service wrapping one dlist.DList as an
// append-only, offset-addressed block log: a concrete use of distance
// queries against a growing byte stream. It is an external collaborator
// to the core engine, not part of it.
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

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults used if empty)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("dlistd: %v", err)
	}

	var m *metrics
	if cfg.EnableMetrics {
		m = newMetrics()
	}
	blockLog := NewBlockLog(m)
	srv := newServer(cfg, blockLog)

	router := srv.router()
	if cfg.EnableMetrics {
		router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}

	httpServer := &http.Server{
		Addr:         cfg.addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		log.Printf("dlistd: listening on %s", cfg.addr())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("dlistd: listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("dlistd: shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("dlistd: shutdown: %v", err)
	}
}
