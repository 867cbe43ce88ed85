package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"webgen_ai_server/config"
	"webgen_ai_server/internal/ai"
	"webgen_ai_server/internal/api"
)

func main() {
	// Load .env before viper reads the environment. Missing file is normal
	// in production.
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		} else {
			log.Println("Info: .env file not found, relying on system environment variables.")
		}
	} else {
		log.Println("Info: Loaded environment variables from .env file.")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	candidates, err := cfg.Candidates()
	if err != nil {
		log.Fatalf("Invalid model fallback list: %v", err)
	}

	// Register only the providers that have keys; Validate guarantees keys
	// for every provider the candidate list references.
	providers := map[string]ai.Provider{}
	if cfg.GeminiKey != "" {
		providers["gemini"] = ai.NewGemini(cfg.GeminiKey)
	}
	if cfg.OpenRouterKey != "" {
		providers["openrouter"] = ai.NewOpenRouter(cfg.OpenRouterKey)
	}

	generator := ai.NewGenerator(providers, candidates, cfg.ModelTimeout())
	apiHandler := api.NewAPIHandler(generator)

	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
		log.Println("Running in Gin Debug Mode")
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	origins := cfg.Origins()
	allowAll := false
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll || len(origins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	router.Use(cors.New(corsCfg))

	// Fixed 60s window per client IP. A zero or negative max disables the
	// limiter entirely.
	if cfg.RateLimitMax > 0 {
		rate := limiter.Rate{Period: time.Minute, Limit: int64(cfg.RateLimitMax)}
		router.Use(limitergin.NewMiddleware(limiter.New(memory.NewStore(), rate)))
	}

	api.RegisterRoutes(router, apiHandler)

	server := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: router,
		// Set timeouts to prevent slow client attacks. WriteTimeout must
		// cover a full pass over the model fallback list.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting API server on %s\n", cfg.ServerAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("API server listen error: %s\n", err)
		}
		log.Println("API server has stopped listening.")
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("Received signal: %s. Shutting down server...", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("API server forced shutdown error: %v", err)
	} else {
		log.Println("API server gracefully stopped.")
	}

	log.Println("Application exiting.")
}
