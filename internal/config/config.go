package config

import (
	"log"
	"os"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=burgerclub port=5432 sslmode=disable"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
	}

	// Controles de seguridad para producción
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] Falta la variable de entorno JWT_SECRET. Es obligatoria.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET debe tener al menos 32 caracteres.")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=burgerclub port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN usa el valor por defecto; define tu propia conexión de Postgres en producción.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS usa el valor por defecto; define tu dominio en producción.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
