package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kelechv1/edulead-crm/internal/infra/database"
	"github.com/kelechv1/edulead-crm/internal/infra/http/handlers"
	custommw "github.com/kelechv1/edulead-crm/internal/infra/http/middleware"
	"github.com/kelechv1/edulead-crm/internal/infra/integration/whatsapp"
	"github.com/kelechv1/edulead-crm/internal/infra/mail"
	"github.com/kelechv1/edulead-crm/internal/infra/queue"
	"github.com/kelechv1/edulead-crm/internal/infra/worker"
	"github.com/kelechv1/edulead-crm/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
		os.Getenv("RABBITMQ_HOST"), os.Getenv("RABBITMQ_PORT"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	agentRepo := database.NewAgentRepository(db)
	templateRepo := database.NewTemplateRepository(db)
	historyRepo := database.NewHistoryRepository(db)

	// 2. Channel adapters — all config injected here, nothing reads env deeper in
	mailPort, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if mailPort == 0 {
		mailPort = 587
	}
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort,
		os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		os.Getenv("MAIL_FROM"),
	)

	waConfig := whatsapp.Config{
		AccessToken: os.Getenv("WHATSAPP_ACCESS_TOKEN"),
		PhoneID:     os.Getenv("WHATSAPP_PHONE_ID"),
		BaseURL:     "https://graph.facebook.com/v18.0",
	}
	waClient := whatsapp.NewClient(waConfig)

	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

	// 3. Dispatch pipeline
	dispatchUC := usecase.NewDispatchMessageUseCase(mailSender, waClient, historyRepo)

	// 4. Workers
	queueWorker := queue.NewWorker(rabbitMQ.Ch, dispatchUC, leadRepo, agentRepo, templateRepo)
	go queueWorker.Start(queue.QueueName)

	followupWorker := worker.NewFollowupWorker(db)
	go followupWorker.Start(context.Background())

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(leadRepo, historyRepo)
	templateHandler := handlers.NewTemplateHandler(templateRepo)
	dispatchHandler := handlers.NewDispatchHandler(dispatchUC, leadRepo, agentRepo, templateRepo)
	broadcastHandler := handlers.NewBroadcastHandler(leadRepo, producer)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn, waConfig.AccessToken != "")

	// 6. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(custommw.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Post("/leads", leadHandler.CaptureLead)
	r.Get("/leads/{leadId}/history", leadHandler.ListHistory)
	r.Post("/leads/{leadId}/dispatch", dispatchHandler.Handle)
	r.Post("/broadcasts", broadcastHandler.Handle)
	r.Post("/templates", templateHandler.Create)
	r.Get("/templates", templateHandler.List)
	r.Get("/templates/{templateId}", templateHandler.Get)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":8080"
	log.Printf("🔥 EduLead CRM running on port %s", port)
	http.ListenAndServe(port, r)
}
