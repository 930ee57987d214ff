package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charan23k2004/Reminder-Agent/handlers"
	"github.com/charan23k2004/Reminder-Agent/logging"
	"github.com/charan23k2004/Reminder-Agent/services"
	"github.com/charan23k2004/Reminder-Agent/utils"
	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			logging.Logger.Println("No .env file found, continuing..")
		}
	}

	logging.InitLogger("reminder-agent")
	logging.Logger.Infof("environment: %s", os.Getenv("APP_ENV"))

	// Initialize the database connection pool
	dbPool, err := utils.OpenDB(os.Getenv("DATABASE_URL"))
	if err != nil {
		logging.Logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	if err := utils.InitSchema(dbPool); err != nil {
		logging.Logger.Fatalf("Failed to initialize schema: %v", err)
	}

	redisClient := utils.OpenRedisPool(os.Getenv("REDIS_URL"))
	defer redisClient.Close()

	// Reminder pipeline: dispatcher polls Redis, notifier emails and publishes
	notifier := services.NewNotifier(dbPool, redisClient, services.NewMailerFromEnv())
	scheduler := services.NewScheduler(dbPool, redisClient, notifier)
	if err := scheduler.Restore(); err != nil {
		logging.Logger.Fatalf("Failed to restore schedule: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go scheduler.Run(ctx)

	authHandler := handlers.NewAuthHandler(dbPool)
	reminderHandler := handlers.NewReminderHandler(dbPool, redisClient)
	assistantHandler := handlers.NewAssistantHandler(dbPool, services.NewGeminiClient())

	r := mux.NewRouter()
	r.Use(handlers.LoggingMiddleware)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	protected := r.PathPrefix("/").Subrouter()
	protected.Use(handlers.JWTAuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.Me).Methods("GET")
	protected.HandleFunc("/reminders", reminderHandler.Create).Methods("POST")
	protected.HandleFunc("/reminders", reminderHandler.List).Methods("GET")
	protected.HandleFunc("/reminders/{rid}", reminderHandler.Get).Methods("GET")
	protected.HandleFunc("/reminders/{rid}/snooze", reminderHandler.Snooze).Methods("POST")
	protected.HandleFunc("/reminders/{rid}/cancel", reminderHandler.Cancel).Methods("POST")
	protected.HandleFunc("/reminders/{rid}", reminderHandler.Delete).Methods("DELETE")
	protected.HandleFunc("/notifications/poll", reminderHandler.Poll).Methods("GET")
	protected.HandleFunc("/assistant/parse", assistantHandler.Parse).Methods("POST")
	protected.HandleFunc("/assistant/suggest", assistantHandler.Suggest).Methods("POST")
	protected.HandleFunc("/assistant/summary", assistantHandler.Summary).Methods("GET")

	// CORS for the web frontend
	headers := gorillahandlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", "Authorization"})
	methods := gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})

	allowedOrigins := []string{"*"}
	if env := os.Getenv("CORS_ALLOWED_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}
	origins := gorillahandlers.AllowedOrigins(allowedOrigins)

	handler := gorillahandlers.CORS(headers, methods, origins)(r)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8000"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logging.Logger.Infof("Starting server on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Errorf("Server shutdown failed: %v", err)
	}
}
