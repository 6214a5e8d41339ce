package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"echospell/internal/config"
	"echospell/internal/content"
	"echospell/internal/database"
	"echospell/internal/engine"
	"echospell/internal/handlers"
	"echospell/internal/progress"
	"echospell/internal/repository"
	"echospell/internal/service"
	"echospell/internal/tts"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Load word/sentence content; without it no session can run
	library, err := content.LoadFile(cfg.ContentPath)
	if err != nil {
		log.Fatalf("Failed to load content: %v", err)
	}

	log.Printf("Content loaded: levels %d-%d", library.MinLevel(), library.MaxLevel())

	// Daily stats store, with in-memory fallback if the file is unusable
	var store progress.Store
	fileStore := progress.NewFileStore(cfg.ProgressPath, cfg.StreakLookbackDays)
	if err := fileStore.Check(); err != nil {
		log.Printf("Warning: progress file unusable, stats will not persist: %v", err)
		store = progress.NewMemoryStore(cfg.StreakLookbackDays)
	} else {
		store = fileStore
	}

	// Attempt archive (sqlite/postgres/mysql); analytics only, so a failure
	// disables it rather than stopping the server
	var attemptRepo *repository.AttemptRepository
	db, err := database.Initialize(cfg)
	if err != nil {
		log.Printf("Warning: attempt archive unavailable: %v", err)
	} else {
		defer db.Close()
		attemptRepo = repository.NewAttemptRepository(db)
		log.Printf("Attempt archive ready (type: %s)", cfg.DatabaseType)
	}

	// Progression rules from configuration
	rules := engine.Rules{
		LevelUpEvery:     cfg.LevelUpEvery,
		RevealAfterFails: cfg.RevealAfterFails,
		XPPerCorrect:     cfg.XPPerCorrect,
		BadgeEveryXP:     cfg.BadgeEveryXP,
		StartingHearts:   cfg.StartingHearts,
		HeartRegenEvery:  cfg.HeartRegenEvery,
		SessionLimit:     cfg.SessionLimit,
	}

	// Initialize services
	eng := engine.New(library, rules, nil)
	sessionService := service.NewSessionService(eng, store, attemptRepo, cfg.StreakLookbackDays, cfg.RecentDays)
	ttsService := tts.NewService(filepath.Join(cfg.StaticFilesPath, "audio"))

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(sessionService, ttsService)
	dashboardHandler := handlers.NewDashboardHandler(sessionService)
	ttsHandler := handlers.NewTTSHandler(ttsService)

	// Setup routes
	mux := http.NewServeMux()

	// Static files (generated audio)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	// Session routes
	mux.HandleFunc("POST /api/session/start", sessionHandler.StartSession)
	mux.HandleFunc("GET /api/session/{id}", sessionHandler.GetSession)
	mux.HandleFunc("POST /api/session/{id}/submit", sessionHandler.SubmitAnswer)
	mux.HandleFunc("POST /api/session/{id}/reset", sessionHandler.ResetSession)
	mux.HandleFunc("POST /api/session/{id}/end", sessionHandler.EndSession)

	// Dashboard and TTS routes
	mux.HandleFunc("GET /api/dashboard", dashboardHandler.GetDashboard)
	mux.HandleFunc("GET /api/tts", ttsHandler.GetAudio)

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Fold sessions that ran out the clock with no further interaction
	go expireSessions(sessionService)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}

// expireSessions periodically ends sessions past their wall-clock limit so
// their aggregates reach the daily stats even if the client went away.
func expireSessions(sessions *service.SessionService) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		if n := sessions.CleanupExpired(); n > 0 {
			log.Printf("Expired %d practice sessions", n)
		}
	}
}
