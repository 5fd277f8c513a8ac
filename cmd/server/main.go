package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/antigravity/bumps/config"
	"github.com/antigravity/bumps/internal/bumps"
	"github.com/antigravity/bumps/internal/db"
	"github.com/antigravity/bumps/internal/handlers"
	"github.com/antigravity/bumps/internal/logging"
	"github.com/antigravity/bumps/internal/matrix"
	"github.com/antigravity/bumps/internal/metrics"
	"github.com/antigravity/bumps/internal/models"
	"github.com/antigravity/bumps/internal/state"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "bumps",
		Usage:     "work out which holes each golfer gets a stroke on",
		Writer:    out,
		Commands:  []*cli.Command{serveCommand(), calcCommand()},
		ErrWriter: os.Stderr,
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the web app",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to the configuration file"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	root := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Pretty)
	logger := logging.Module(root, logging.ModuleServer)

	store, err := db.Open(ctx, cfg.Store.DSN, logging.Module(root, logging.ModuleDB))
	if err != nil {
		return errors.Wrap(err, "open store")
	}
	defer store.Close()

	m := metrics.New()
	board := state.New(store, logging.Module(root, logging.ModuleState), m)
	board.Subscribe(func(s state.Snapshot) {
		logger.Debug().
			Str("view", string(s.View)).
			Int("golfers", len(s.Golfers)).
			Msg("board changed")
	})

	h, err := handlers.New(board, logger)
	if err != nil {
		return errors.Wrap(err, "load templates")
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handlers.NewRouter(h, m.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("server started")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info().Msg("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func calcCommand() *cli.Command {
	return &cli.Command{
		Name:      "calc",
		Usage:     "print the bump matrix for the given golfers",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "golfer", Aliases: []string{"g"}, Usage: "name:allowance, repeatable"},
			&cli.StringFlag{Name: "difficulties", Aliases: []string{"d"}, Usage: "comma separated difficulties, applied by position"},
			&cli.StringFlag{Name: "log-level", Value: "warn"},
		},
		Action: func(c *cli.Context) error {
			logger := logging.Module(logging.New(c.App.ErrWriter, c.String("log-level"), true), logging.ModuleCLI)
			return calc(c.App.Writer, logger, c.StringSlice("golfer"), c.String("difficulties"))
		},
	}
}

func calc(out io.Writer, logger zerolog.Logger, golferArgs []string, difficulties string) error {
	golfers := make([]models.Golfer, 0, len(golferArgs))
	for _, arg := range golferArgs {
		name, allowance, ok := strings.Cut(arg, ":")
		if !ok {
			return errors.Errorf("golfer %q: want name:allowance", arg)
		}
		g, err := bumps.ParseGolfer(name, allowance)
		if err != nil {
			return err
		}
		golfers = append(golfers, g)
	}

	holes := bumps.DefaultHoles()
	if difficulties != "" {
		values, dropped := bumps.ParseDifficulties(difficulties)
		if dropped > 0 {
			logger.Warn().Int("dropped", dropped).Msg("skipped difficulty values that are not numbers")
		}
		bumps.ApplyDifficulties(holes, values)
	}

	return matrix.Build(golfers, holes, bumps.Allocate(golfers, holes)).WriteText(out)
}
