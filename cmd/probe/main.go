// Command probe performs a connectivity check against the configured
// completion endpoint and exits non-zero on failure.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"storyteller/internal/ai"
	"storyteller/internal/config"
	"storyteller/internal/transport"
)

func main() {
	_ = godotenv.Load()

	log := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	log.Info().
		Str("endpoint", cfg.AIEndpoint).
		Str("model", cfg.AIModel).
		Str("apiKey", cfg.MaskedKey()).
		Msg("configuration loaded")

	client := ai.New(cfg.TransportConfig(), transport.NewHTTPTransport(), log)

	ok := true
	client.TestConnection(ai.BuildTestRequest(cfg.AIModel),
		func() { log.Info().Msg("connection OK") },
		func(msg string) {
			ok = false
			log.Error().Str("error", msg).Msg("connection failed")
		},
	)
	if !ok {
		os.Exit(1)
	}
}
