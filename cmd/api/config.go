package main

import "os"

// config carries the process settings, all sourced from the environment
// (optionally seeded from .env by loadDotEnv).
type config struct {
	Addr        string
	GroqAPIKey  string
	GroqBaseURL string
	GroqModel   string
}

func loadConfig() config {
	return config{
		Addr:        envOr("SMARTCALC_ADDR", ":8080"),
		GroqAPIKey:  os.Getenv("GROQ_API_KEY"),
		GroqBaseURL: os.Getenv("GROQ_BASE_URL"),
		GroqModel:   os.Getenv("GROQ_MODEL"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
