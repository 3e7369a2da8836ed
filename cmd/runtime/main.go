package main

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	container "github.com/thehyperflames/dicontainer-go"

	"github.com/hookswap/route-engine/internal/aggregator"
	"github.com/hookswap/route-engine/internal/config"
	"github.com/hookswap/route-engine/internal/http"
)

func main() {
	// load env; defaults cover a missing .env
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("no .env file loaded")
	}

	// di container config
	conf := container.NewConf(
		&config.GeneralConfig{},
		&config.AggregatorConfig{},
	)

	applyLogLevel()

	// di container
	dic, err := container.New(
		conf,

		&aggregator.Service{},
		&http.HTTPService{},
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to create di container")
		return
	}

	if err := dic.Run(); err != nil {
		log.Error().Err(err).Msg("failed to run di container")
		return
	}

	log.Info().Msg("Shutting down services...")
	if err := dic.Stop(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("Shutdown complete")
}

func applyLogLevel() {
	var gc config.GeneralConfig
	if err := gc.Load(); err != nil {
		return
	}
	switch strings.ToUpper(gc.LogLevel) {
	case "DEBUG":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "WARN":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "ERROR":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
