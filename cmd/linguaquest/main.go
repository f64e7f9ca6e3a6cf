// Package main is the entry point for LinguaQuest.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/samdwyer/linguaquest/internal/game"
	"github.com/samdwyer/linguaquest/internal/save"
	"github.com/samdwyer/linguaquest/internal/telemetry"
)

const defaultLogFile = "linguaquest.log"

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_LINGUAQUEST_API_KEY and the LINGUAQUEST_* settings available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	// The terminal belongs to the game once it starts.
	logFile := envOr("LINGUAQUEST_LOG", defaultLogFile)
	if f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.Printf("Note: logging to stderr, %s not writable: %v", logFile, err)
	}

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	ctx := context.Background()

	// Initialize telemetry
	if telemetry.Enabled() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
			log.Printf("Game will run without observability")
			// Continue without telemetry - game still works
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	store, err := save.Open()
	if err != nil {
		log.Printf("Warning: %v (records will not persist)", err)
	}

	// Create and run game
	g, err := game.New(cfg, store)
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

// loadConfig reads the LINGUAQUEST_* environment variables.
func loadConfig() (game.Config, error) {
	cfg := game.Config{
		TuningPath:  os.Getenv("LINGUAQUEST_TUNING"),
		SentenceDir: os.Getenv("LINGUAQUEST_SENTENCES_DIR"),
	}

	if files := os.Getenv("LINGUAQUEST_SENTENCE_FILES"); files != "" {
		for _, f := range strings.Split(files, ",") {
			if f = strings.TrimSpace(f); f != "" {
				cfg.SentenceFiles = append(cfg.SentenceFiles, f)
			}
		}
	}

	if seed := os.Getenv("LINGUAQUEST_SEED"); seed != "" {
		v, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return game.Config{}, fmt.Errorf("LINGUAQUEST_SEED %q: %w", seed, err)
		}
		cfg.Seed = v
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
// Without an API key no endpoint is set and telemetry stays off.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_LINGUAQUEST_API_KEY")
	if apiKey == "" {
		return
	}

	// The .env file may have an unexpanded variable reference that doesn't
	// work, so we construct the headers properly here
	dataset := os.Getenv("HONEYCOMB_LINGUAQUEST_DATASET")
	if dataset == "" {
		dataset = "linguaquest" // default dataset name
	}
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
