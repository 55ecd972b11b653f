// Command issue_token mints a bearer token for the ledger API. The service trusts whatever
// identity provider signs with JWT_SECRET; this is the local stand-in for one.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/property_ledger/internal/platform/config"
	"github.com/SscSPs/property_ledger/internal/utils"
	"github.com/spf13/pflag"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	subject := pflag.StringP("user", "u", "", "user id recorded as the actor on ledger mutations")
	ttl := pflag.DurationP("ttl", "t", 24*time.Hour, "token lifetime")
	pflag.Parse()

	if *subject == "" {
		pflag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	token, err := utils.GenerateJWT(*subject, cfg.JWTSecret, cfg.JWTIssuer, *ttl, time.Now())
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(token)
}
