package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/storepilot/storepilot/config"
	"github.com/storepilot/storepilot/internal/chat"
	"github.com/storepilot/storepilot/internal/llm"
	"github.com/storepilot/storepilot/internal/server"
	"github.com/storepilot/storepilot/internal/shopify"
	"github.com/storepilot/storepilot/internal/store"
)

const defaultListenAddr = ":8080"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	config.LoadEnvFile()

	if os.Getenv("GEMINI_API_KEY") == "" {
		log.Fatal().Msg("GEMINI_API_KEY environment variable is required")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	llmClient, err := llm.NewClient(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize gemini client")
	}
	log.Info().Msg("gemini client initialized")

	// The shopify client is constructed even without credentials. Missing
	// config surfaces as an error on first use, so the assistant works in
	// mock-only mode out of the box.
	shopClient := shopify.NewClient(shopify.ClientOpts{
		Domain:      os.Getenv("SHOPIFY_SHOP_DOMAIN"),
		AccessToken: os.Getenv("SHOPIFY_ADMIN_ACCESS_TOKEN"),
	})
	catalog := shopify.NewTools(shopClient)
	agent := llm.NewAgent(llmClient, catalog)

	st := store.New()
	interp := chat.NewInterpreter(llmClient, agent, st)
	sessions := chat.NewSessionStore(interp)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = defaultListenAddr
	}
	srv := &http.Server{
		Addr: addr,
		Handler: server.New(server.Deps{
			Sessions:  sessions,
			Store:     st,
			Shop:      shopClient,
			Suggester: llmClient,
		}),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("shutdown with error")
	} else {
		log.Info().Msg("shutdown complete")
	}
}
