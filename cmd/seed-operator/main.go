// Command seed-operator provisions the single operator account.
//
//	DATABASE_URL=postgres://... seed-operator -password 'secret'
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/P-N-S-U/backend/internal/modules/auth"
	"github.com/P-N-S-U/backend/internal/modules/operator"
	"github.com/P-N-S-U/backend/internal/platform/config"
	"github.com/P-N-S-U/backend/internal/platform/database"
	"github.com/P-N-S-U/backend/internal/platform/errs"
	"github.com/P-N-S-U/backend/internal/platform/logger"
)

func main() {
	_ = godotenv.Load()
	log := logger.New(os.Getenv("LOG_LEVEL"))

	email := flag.String("email", envOr("OPERATOR_EMAIL", config.DefaultOperatorEmail), "operator email; must match the API's OPERATOR_EMAIL")
	password := flag.String("password", os.Getenv("OPERATOR_PASSWORD"), "operator password")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" || *password == "" {
		log.Error("DATABASE_URL and a password are required")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Open(ctx, dsn)
	if err != nil {
		log.Error("connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		log.Error("migrate database", "error", err)
		os.Exit(1)
	}

	hash, err := auth.NewBcryptHasher(0).Hash(*password)
	if err != nil {
		log.Error("hash password", "error", err)
		os.Exit(1)
	}

	o := &operator.Operator{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(*email)),
		PasswordHash: hash,
	}
	if err := operator.NewPostgresRepository(db).CreateOperator(ctx, o); err != nil {
		if errors.Is(err, errs.ErrConflict) {
			log.Warn("operator already exists", "email", o.Email)
			return
		}
		log.Error("create operator", "error", err)
		os.Exit(1)
	}
	log.Info("operator created", "id", o.ID, "email", o.Email)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
