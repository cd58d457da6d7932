package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/sentinelai/phishguard/internal/adapters/model"
	"github.com/sentinelai/phishguard/internal/adapters/presenter"
	"github.com/sentinelai/phishguard/internal/adapters/storage"
	"github.com/sentinelai/phishguard/internal/application"
	"github.com/sentinelai/phishguard/internal/domain/detection"
	"github.com/sentinelai/phishguard/internal/ports"
)

// sampleEmails exercise the pipeline when no input is supplied
var sampleEmails = []string{
	"URGENT: verify your account now or it will be suspended. " +
		"Visit http://192.168.1.5/login-now and http://paypal.com/signin",

	"Hi team, the weekly sync moved to Thursday. Agenda and notes are at " +
		"http://drive.google.com/folder/weekly-sync as usual. See you there!",

	"Your package could not be delivered. Confirm your address immediately at " +
		"http://delivery-status-update-portal-secure-check.example-tracking.com/confirm?id=99281734",
}

func main() {
	log.Println("Starting email analysis service...")

	// Configuration
	// In production, use proper config management (Viper, environment-specific configs)
	modelPath := getEnv("MODEL_PATH", "model.json")
	dbConnStr := os.Getenv("DATABASE_URL")

	// Load the statistical model (persistence loader outcome decides the mode).
	// A missing or corrupt artifact is not fatal: the engine degrades to
	// rule-only verdicts.
	var provider ports.ModelProvider
	if m, err := model.LoadModel(modelPath); err != nil {
		log.Printf("Model unavailable, running degraded (rules only): %v", err)
	} else {
		provider = m
		log.Printf("Loaded model artifact: %s", modelPath)
	}

	// Trusted domains come from postgres when configured, built-in defaults
	// otherwise. DB trouble falls back to defaults rather than aborting.
	trustedDomains := loadTrustedDomains(dbConnStr)

	engine := detection.NewEngine(trustedDomains, provider)
	log.Printf("Engine mode: %s", engine.Mode())

	// Dependency injection via constructors: main wires the adapters into the
	// application service (hexagonal architecture)
	service := application.NewAnalysisService(engine, presenter.NewConsole())

	for _, text := range readInputs() {
		if _, err := service.AnalyzeEmail(text); err != nil {
			log.Fatalf("Analysis failed: %v", err)
		}
	}

	log.Println("Email analysis completed")
}

// readInputs returns the email bodies to analyze: a file named on the command
// line, stdin when piped, or the built-in samples
func readInputs() []string {
	if len(os.Args) > 1 {
		data, err := os.ReadFile(os.Args[1])
		if err != nil {
			log.Fatalf("Failed to read input file: %v", err)
		}
		return []string{string(data)}
	}

	if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("Failed to read stdin: %v", err)
		}
		return []string{string(data)}
	}

	log.Println("No input given, analyzing built-in sample emails")
	return sampleEmails
}

// loadTrustedDomains fetches the allowlist from postgres, falling back to the
// built-in defaults when the database is not configured or unreachable
func loadTrustedDomains(connStr string) []string {
	if connStr == "" {
		return detection.DefaultTrustedDomains
	}

	store, err := storage.NewPostgresAllowlist(connStr)
	if err != nil {
		log.Printf("Allowlist store unavailable, using defaults: %v", err)
		return detection.DefaultTrustedDomains
	}
	defer store.Close()

	if err := store.InitSchema(); err != nil {
		log.Printf("Allowlist schema init failed, using defaults: %v", err)
		return detection.DefaultTrustedDomains
	}

	domains, err := store.ListTrustedDomains(context.Background())
	if err != nil || len(domains) == 0 {
		log.Printf("Allowlist query failed, using defaults: %v", err)
		return detection.DefaultTrustedDomains
	}

	log.Printf("Loaded %d trusted domains from database", len(domains))
	return domains
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
