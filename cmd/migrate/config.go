package main

import (
	"os"

	"github.com/joho/godotenv"
)

func loadEnvFiles() {
	// godotenv.Load never overrides environment already provided by the
	// runtime (e.g. Docker), so the files only fill in gaps.
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return "db/migrations"
}
