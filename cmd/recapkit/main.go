package main

import (
	"os"

	"github.com/recapkit/recapkit/cmd/recapkit/cmd"
	"github.com/recapkit/recapkit/pkg/logger"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("Application execution failed")
		os.Exit(1)
	}
}
