package main

import (
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mixle/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("mixle exited")
	}
}
