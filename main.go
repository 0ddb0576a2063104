package main

import (
	"os"
	"viruswar/experiments"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	results, err := experiments.RunBaselineExperiment()
	if err != nil {
		log.Fatal().Err(err).Msg("baseline experiment failed")
	}
	log.Info().Msgf("wins per agent: %v", results.Wins)
}
