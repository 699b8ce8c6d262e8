// Command debugconvert prints the fields of one entry page in the line order
// of the old conversion script. Usage: debugconvert <n|v|a> <url>
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/hebcard/internal/app"
	"github.com/hyperifyio/hebcard/internal/extract"
	"github.com/hyperifyio/hebcard/internal/fetch"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: debugconvert <n|v|a> <url>")
		return 2
	}
	kind, ok := extract.KindFromCode(args[0])
	if !ok {
		// unknown codes do nothing
		return 0
	}

	var cfg app.Config
	app.ApplyEnvToConfig(&cfg)
	if cfg.UserAgent == "" {
		cfg.UserAgent = fetch.DefaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = app.DefaultTimeout
	}
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	a, err := app.New(cfg)
	if err != nil {
		log.Error().Err(err).Msg("config")
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout+5*time.Second)
	defer cancel()
	res, err := a.ConvertAs(ctx, kind, args[1])
	if err != nil {
		log.Error().Err(err).Msg("convert failed")
		return 1
	}
	if err := app.WriteLegacy(stdout, res); err != nil {
		log.Error().Err(err).Msg("write")
		return 1
	}
	return 0
}
