// Command admintoken prints a bearer token for the /api/admin routes, signed
// with the same JWT_SECRET the server reads.
package main

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GlebRadaev/paybridge/internal/config"
	"github.com/GlebRadaev/paybridge/pkg/auth"
)

type tokenIssuer interface {
	GenerateJWT(subject, role string, expirationTime time.Time) (string, error)
}

func issue(issuer tokenIssuer, subject string, ttl time.Duration, now time.Time) (string, error) {
	if subject == "" {
		return "", errors.New("subject is required")
	}
	if ttl <= 0 {
		return "", errors.New("ttl must be positive")
	}
	return issuer.GenerateJWT(subject, auth.RoleAdmin, now.Add(ttl))
}

func main() {
	subject := flag.String("sub", "ops", "token subject, written to the admin audit log")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	cfg := config.New()

	token, err := issue(auth.NewJWTService(cfg.JWTSecret), *subject, *ttl, time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("Can't issue admin token")
	}
	fmt.Println(token)
}
