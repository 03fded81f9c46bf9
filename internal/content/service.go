package content

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	dbm "github.com/tendermint/tm-db"
)

const shutdownTimeout = 5 * time.Second

// Serve opens the content database and serves it until the context is done
func Serve(ctx context.Context, cfg Config, logger zerolog.Logger) error {
	db, err := dbm.NewDB(dbName, dbm.GoLevelDBBackend, cfg.DBDir)
	if err != nil {
		return err
	}
	store := NewStore(db, cfg.MaxSize)
	defer store.Close()

	ln, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		return err
	}
	return serveOn(ctx, ln, store, logger)
}

func serveOn(ctx context.Context, ln net.Listener, store *Store, logger zerolog.Logger) error {
	srv := &http.Server{
		Handler:           NewHandler(store, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ln)
	}()
	logger.Info().Str("address", ln.Addr().String()).Msg("content service started")

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-done; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info().Msg("content service stopped")
	return nil
}
