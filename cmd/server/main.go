package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/acuitylab/stimulus-engine/internal/httpapi"
	"github.com/acuitylab/stimulus-engine/internal/triallog"
)

func main() {
	dbPath := envOr("ACUITY_DB", "acuity_trials.db")
	port := envOr("PORT", "8080")

	store, err := triallog.NewStore(dbPath)
	if err != nil {
		log.Fatalf("open trial log: %v", err)
	}
	defer store.Close()

	r := mux.NewRouter()
	httpapi.NewHandler(store).Routes(r)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})
	handler := c.Handler(r)

	log.Printf("acuity session server on :%s | db %s", port, dbPath)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
