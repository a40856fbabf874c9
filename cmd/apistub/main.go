package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"vetconnect-client/internal/apistub"
)

// Stub HTTP del backend VetConnect, para desarrollo local del cliente.
func main() {
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      apistub.NewServer().Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Printf("starting api stub on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
