// Команда issuetoken выпускает JWT для ручной проверки защищенных эндпоинтов.
//
//	CONFIG_PATH=config.toml go run ./cmd/issuetoken -user 3f1c... -role ADMIN
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/nguyendangquyen/MAP-DRESS/internal/config"
	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/authtoken"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to config.toml")
	userID := flag.String("user", "", "user ID (uuid), random if empty")
	role := flag.String("role", string(domain.RoleUser), "USER or ADMIN")
	flag.Parse()

	if *configPath == "" {
		*configPath = "config.toml"
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	switch domain.UserRole(*role) {
	case domain.RoleUser, domain.RoleAdmin:
	default:
		fmt.Fprintf(os.Stderr, "Unknown role %q\n", *role)
		os.Exit(2)
	}

	subject := *userID
	if subject == "" {
		subject = uuid.NewString()
	} else if _, err := uuid.Parse(subject); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid user ID: %v\n", err)
		os.Exit(2)
	}

	manager := authtoken.NewManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	token, err := manager.Issue(subject, *role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to issue token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("user=%s role=%s\n%s\n", subject, *role, token)
}
