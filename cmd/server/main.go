package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/SusanneRenken/quizly/internal/auth"
	"github.com/SusanneRenken/quizly/internal/models"
	"github.com/SusanneRenken/quizly/internal/pipeline"
	"github.com/SusanneRenken/quizly/internal/quiz"
	"github.com/SusanneRenken/quizly/pkg/cache"
	"github.com/SusanneRenken/quizly/pkg/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	dbConfig := &database.Config{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   os.Getenv("DB_NAME"),
	}

	db, err := database.NewPostgresDB(dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.Question{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	redisCache := cache.NewRedisCache(os.Getenv("REDIS_ADDR"))

	builder, err := newBuilder()
	if err != nil {
		log.Fatalf("Failed to set up quiz pipeline: %v", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatalf("JWT_SECRET must be set")
	}

	authRepo := auth.NewRepository(db)
	quizRepo := quiz.NewRepository(db)

	authService := auth.NewService(authRepo, jwtSecret, redisCache)
	quizService := quiz.NewService(quizRepo, builder)

	authHandler := auth.NewHandler(authService)
	quizHandler := quiz.NewHandler(quizService)

	router := mux.NewRouter()

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{frontendOrigin()},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	handler := corsMiddleware.Handler(router)

	// Public routes
	router.HandleFunc("/api/health", healthCheck).Methods("GET")
	router.HandleFunc("/api/register", authHandler.Register).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/login", authHandler.Login).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/logout", authHandler.Logout).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/token/refresh", authHandler.Refresh).Methods("POST", "OPTIONS")

	// List tolerates anonymous callers and returns an empty collection
	listRouter := router.Path("/api/quizzes").Subrouter()
	listRouter.Use(auth.OptionalJWTMiddleware(jwtSecret))
	listRouter.HandleFunc("", quizHandler.ListQuizzes).Methods("GET", "OPTIONS")

	// Everything else requires a valid access token
	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(auth.JWTMiddleware(jwtSecret))
	apiRouter.HandleFunc("/createQuiz", quizHandler.CreateQuiz).Methods("POST", "OPTIONS")
	apiRouter.HandleFunc("/quizzes/{id}", quizHandler.GetQuiz).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/quizzes/{id}", quizHandler.UpdateQuiz).Methods("PATCH")
	apiRouter.HandleFunc("/quizzes/{id}", quizHandler.DeleteQuiz).Methods("DELETE")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// Prod pipeline requests block on download + transcription + the
		// model call, which can take minutes.
		WriteTimeout: 15 * time.Minute,
	}

	go func() {
		log.Printf("Server starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server shutdown gracefully")
}

// newBuilder selects the pipeline once per process. QUIZLY_PIPELINE_MODE=prod
// enables the real extract/transcribe/generate chain; anything else runs the
// deterministic stub.
func newBuilder() (pipeline.Builder, error) {
	if os.Getenv("QUIZLY_PIPELINE_MODE") != "prod" {
		return pipeline.NewStub(), nil
	}

	var (
		generator pipeline.Generator
		err       error
	)
	if os.Getenv("QUIZLY_GENERATOR") == "openai" {
		generator, err = pipeline.NewOpenAIGenerator(os.Getenv("OPENAI_API_KEY"))
	} else {
		generator, err = pipeline.NewGeminiGenerator(context.Background(), os.Getenv("GEMINI_API_KEY"))
	}
	if err != nil {
		return nil, err
	}

	return pipeline.NewProd(
		pipeline.NewYTDLPExtractor(),
		pipeline.NewWhisperTranscriber("base"),
		generator,
	), nil
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status": "ok"}`))
}

func frontendOrigin() string {
	if origin := os.Getenv("FRONTEND_ORIGIN"); origin != "" {
		return origin
	}
	return "http://localhost:3000"
}
