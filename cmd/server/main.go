package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"otiyot/internal/collab"
	"otiyot/internal/config"
	"otiyot/internal/database"
	"otiyot/internal/handlers"
	"otiyot/internal/models"
	"otiyot/internal/repository"
	"otiyot/internal/security"
	"otiyot/internal/session"
	"otiyot/internal/statestore"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql).
	// Storage failure is survivable: the games run on an in-memory store
	// and progress simply does not persist.
	var store statestore.Store
	var attemptRepo *repository.AttemptRepository

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Printf("Warning: database unavailable, progress will not persist: %v", err)
		store = statestore.NewMemoryStore()
	} else {
		defer db.Close()
		log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

		if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Println("Migrations completed successfully")

		store = statestore.NewSQLStore(db)
		attemptRepo = repository.NewAttemptRepository(db)
	}

	// Build the game session on top of the store
	orchestrator := session.New(store, models.Language(cfg.Language), cfg.BatchSize)
	orchestrator.SetEvaluator(models.GameWriting, collab.LenientHandwriting{})
	orchestrator.SetEvaluator(models.GamePronunciation, collab.SpokenAnswer{
		Recorder: collab.NullRecorder{},
		Language: models.Language(cfg.Language),
	})

	// Initialize TTS audio cache
	if err := os.MkdirAll(cfg.AudioCachePath, 0o755); err != nil {
		log.Printf("Warning: failed to create audio cache dir: %v", err)
	}
	ttsService := collab.NewTTSService(cfg.AudioCachePath)

	// Parent gate token secret; an ephemeral secret just means unlocks do
	// not survive a restart
	secret := cfg.ParentTokenSecret
	if secret == "" {
		secret = randomSecret()
		log.Println("PARENT_TOKEN_SECRET not set, using an ephemeral secret")
	}
	gate := security.NewParentGate(secret)

	// Initialize handlers
	middleware := handlers.NewMiddleware(gate)
	gameHandler := handlers.NewGameHandler(orchestrator, attemptRepo, ttsService, models.Language(cfg.Language))
	progressHandler := handlers.NewProgressHandler(orchestrator, attemptRepo)
	transferHandler := handlers.NewTransferHandler(orchestrator, store, gate)
	audioHandler := handlers.NewAudioHandler(ttsService, cfg.AudioCachePath)
	imageHandler := handlers.NewImageHandler(collab.StaticImageResolver{BaseURL: cfg.ImageBaseURL})

	// Setup routes
	mux := http.NewServeMux()

	// Play flow
	mux.HandleFunc("POST /play/{game}/start", gameHandler.StartGame)
	mux.HandleFunc("GET /play/{game}/state", gameHandler.GameState)
	mux.HandleFunc("POST /play/{game}/answer", gameHandler.SubmitAnswer)
	mux.HandleFunc("POST /play/{game}/reload", gameHandler.ReloadBatch)
	mux.HandleFunc("POST /play/hangman/guess", gameHandler.GuessLetter)
	mux.HandleFunc("POST /play/hangman/retry", gameHandler.HangmanRetry)
	mux.HandleFunc("POST /play/hangman/next", gameHandler.HangmanNext)
	mux.HandleFunc("POST /play/memory/flip", gameHandler.FlipCard)
	mux.HandleFunc("POST /play/dictation/answer", gameHandler.DictationAnswer)
	mux.HandleFunc("POST /play/dictation/finish", gameHandler.DictationFinish)
	mux.HandleFunc("POST /play/dictation/restart", gameHandler.DictationRestart)
	mux.HandleFunc("POST /play/writing/submit", gameHandler.SubmitResponse)
	mux.HandleFunc("POST /play/pronunciation/submit", gameHandler.SubmitResponse)
	mux.HandleFunc("POST /play/end", gameHandler.EndGame)

	// Progress, rewards, settings
	mux.HandleFunc("GET /progress", progressHandler.GetProgress)
	mux.HandleFunc("GET /progress/stats", progressHandler.GetStats)
	mux.HandleFunc("POST /progress/reward/dismiss", progressHandler.DismissReward)
	mux.HandleFunc("GET /settings", progressHandler.GetSettings)
	mux.HandleFunc("PUT /settings", progressHandler.UpdateSettings)
	mux.HandleFunc("GET /pets", progressHandler.ListPets)
	mux.HandleFunc("POST /pets/select", progressHandler.SelectPet)
	mux.HandleFunc("GET /tutorials/{key}", progressHandler.GetTutorial)
	mux.HandleFunc("POST /tutorials/{key}", progressHandler.MarkTutorial)

	// Parent gate and data transfer
	mux.HandleFunc("POST /parent/pin", transferHandler.SetPIN)
	mux.HandleFunc("POST /parent/unlock", transferHandler.Unlock)
	mux.HandleFunc("GET /parent/export", middleware.RequireParent(transferHandler.ExportProgress))
	mux.HandleFunc("POST /parent/import", middleware.RequireParent(transferHandler.ImportProgress))
	mux.HandleFunc("GET /parent/words/{game}/export", middleware.RequireParent(transferHandler.ExportWords))
	mux.HandleFunc("POST /parent/words/{game}/import", middleware.RequireParent(transferHandler.ImportWords))
	mux.HandleFunc("POST /parent/reset", middleware.RequireParent(transferHandler.ResetAll))
	mux.HandleFunc("POST /parent/history/{category}/reset", middleware.RequireParent(progressHandler.ResetHistory))

	// Audio and images
	mux.HandleFunc("GET /audio/speak", audioHandler.Speak)
	mux.HandleFunc("GET /images/{term}", imageHandler.Resolve)

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
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	orchestrator.EndGame()
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("Failed to generate token secret: %v", err)
	}
	return hex.EncodeToString(buf)
}
