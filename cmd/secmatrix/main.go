package main

import (
	"os"

	"secmatrix/internal/cli"

	"github.com/rs/zerolog/log"
)

func main() {
	root := cli.NewRootCmd()
	// serve is the default when no subcommand is given
	if len(os.Args) == 1 {
		root.SetArgs([]string{"serve"})
	}
	if err := root.Execute(); err != nil {
		log.Fatal().Err(err).Msg("secmatrix")
	}
}
