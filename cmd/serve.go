package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/mixle/internal/daily"
	"github.com/robalobadob/mixle/internal/game"
	"github.com/robalobadob/mixle/internal/history"
	"github.com/robalobadob/mixle/internal/httpserver"
)

// now is the clock for every command.
var now = time.Now

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the game behind a local HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.serve(cmd)
		},
	}
}

// serve runs the HTTP host and the midnight rollover until interrupted.
func (c *cli) serve(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := c.openBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	sess, err := game.NewSession(ctx, game.Options{
		History: history.NewStore(backend),
		Now:     now,
	})
	if err != nil {
		return err
	}
	defer sess.Close()

	ln, err := net.Listen("tcp", ":"+c.cfg.Port)
	if err != nil {
		return err
	}
	log.Info().Str("port", c.cfg.Port).Str("storage", c.cfg.Storage).Str("db", c.cfg.DBPath).Msg("starting mixle")
	return c.serveOn(ctx, ln, sess)
}

// serveOn serves sess on ln until ctx ends. Request contexts derive from the
// group context, so open /events streams end as soon as shutdown begins.
func (c *cli) serveOn(ctx context.Context, ln net.Listener, sess *game.Session) error {
	srv := httpserver.New(sess, httpserver.Options{
		ClientOrigin: c.cfg.ClientOrigin,
		ShareHost:    c.cfg.ShareHost,
		Now:          now,
	})

	g, gctx := errgroup.WithContext(ctx)
	httpSrv := &http.Server{
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return gctx },
	}

	g.Go(func() error {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return rollover(gctx, sess, now)
	})
	return g.Wait()
}

// rollover reloads the session at every UTC midnight until ctx ends.
func rollover(ctx context.Context, sess *game.Session, clock func() time.Time) error {
	for {
		wait := daily.UntilNext(clock())
		log.Debug().Dur("in", wait).Msg("next challenge scheduled")

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case <-t.C:
		}

		if err := sess.Reload(ctx); err != nil {
			log.Error().Err(err).Msg("day rollover")
			continue
		}
		log.Info().Str("day", sess.Snapshot().Day).Msg("new challenge loaded")
	}
}
