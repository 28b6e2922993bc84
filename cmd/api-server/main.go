package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/cors"

	"procurement/db"
	"procurement/db/migrations"
	"procurement/internal/config"
	"procurement/internal/handlers"
	"procurement/internal/service"
)

func main() {
	cfg := config.Load()
	if cfg.PostgresConn == "" {
		log.Fatal("POSTGRES_CONN is not set")
	}

	dbConn, err := sqlx.Connect("postgres", cfg.PostgresConn)
	if err != nil {
		log.Fatalf("Cannot connect to DB: %v", err)
	}
	defer dbConn.Close()

	if err := migrations.Run(dbConn.DB); err != nil {
		log.Fatalf("Migrations failed: %v", err)
	}

	store := db.NewStorage(dbConn)
	engine := service.NewEngine(store)
	h := handlers.NewHandler(store, engine)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.PingHandler)
		// тендеры
		r.Post("/tenders/new", h.CreateTenderHandler)
		r.Get("/tenders", h.GetTendersHandler)
		r.Get("/tenders/my", h.GetUserTendersHandler)
		r.Patch("/tenders/{tenderId}/edit", h.EditTenderHandler)
		r.Put("/tenders/{tenderId}/status", h.ChangeTenderStatusHandler)
		r.Put("/tenders/{tenderId}/rollback/{version}", h.RollbackTenderHandler)
		// предложения (bids)
		r.Post("/bids/new", h.CreateBidHandler)
		r.Get("/bids/my", h.GetUserBidsHandler)
		r.Get("/bids/{tenderId}/list", h.GetBidsForTenderHandler)
		r.Patch("/bids/{bidId}/edit", h.EditBidHandler)
		r.Put("/bids/{bidId}/status", h.UpdateBidStatusHandler)
		r.Put("/bids/{bidId}/rollback/{version}", h.RollbackBidHandler)
		r.Put("/bids/{bidId}/submit_decision", h.SubmitBidDecisionHandler)
		r.Put("/bids/{bidId}/feedback", h.CreateBidFeedbackHandler)
		r.Get("/bids/{tenderId}/reviews", h.GetBidReviewsHandler)
	})

	handler := cors.Default().Handler(r)

	log.Printf("Starting server on %s", cfg.ServerAddress)
	log.Fatal(http.ListenAndServe(cfg.ServerAddress, handler))
}
