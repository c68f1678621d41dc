package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"
	"hookalert/internal/api"
	"hookalert/internal/api/handlers"
	"hookalert/internal/engine/mailer"
	"hookalert/internal/engine/provision"
	"hookalert/internal/pkg/logger"
	"hookalert/internal/platform/config"
)

type loginVerifier interface {
	VerifyLogin() error
}

type webhookProvisioner interface {
	CreateWebhook(ctx context.Context) (string, error)
}

// startup runs the pre-listen sequence. A failed credential check returns
// before provisioning is attempted.
func startup(ctx context.Context, verifier loginVerifier, prov webhookProvisioner) (string, error) {
	if err := verifier.VerifyLogin(); err != nil {
		return "", fmt.Errorf("email login failed: %w", err)
	}
	log.Info().Msg("email login successful")

	url, err := prov.CreateWebhook(ctx)
	if err != nil {
		return "", fmt.Errorf("webhook provisioning failed: %w", err)
	}
	return url, nil
}

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging)

	m := mailer.New(cfg.SMTP)
	prov := provision.New(cfg.Provisioner)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Provisioner.Timeout)
	webhookURL, err := startup(ctx, m, prov)
	cancel()
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		os.Exit(1)
	}

	log.Info().Str("url", webhookURL).Msg("created webhook")
	fmt.Printf("Webhook URL: %s\n", webhookURL)
	fmt.Println("Please configure your service to send webhooks to this URL.")

	webhookHandler := handlers.NewWebhookHandler(m, cfg.Webhooks.Quota)
	statusHandler := handlers.NewStatusHandler(webhookHandler, webhookURL)

	router := api.NewRouter(&api.Dependencies{
		WebhookHandler: webhookHandler,
		StatusHandler:  statusHandler,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	log.Info().Str("addr", addr).Msg("server starting")
	if err := server.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
