package config

import (
	"os"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr            string
	DatabaseURL     string
	StoreBackend    string
	ShutdownTimeout time.Duration
}

// Store backends selectable via CRM_STORE.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("CRM_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	backend := os.Getenv("CRM_STORE")
	if backend == "" {
		backend = StoreMemory
	}

	return Server{
		Addr:            addr,
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		StoreBackend:    backend,
		ShutdownTimeout: 10 * time.Second,
	}
}
