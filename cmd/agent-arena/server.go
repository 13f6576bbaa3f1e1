package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ericogr/agent-arena/internal/constants"
	"github.com/ericogr/agent-arena/internal/logging"
)

const shutdownTimeout = 10 * time.Second

// serve blocks until SIGINT or SIGTERM, then drains in-flight requests.
func serve(addr string, handler http.Handler) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("server started", logging.Fields{constants.LogFieldAddr: addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err, ok := <-errCh:
		if ok {
			logging.Fatal("failed to start server", err, logging.Fields{constants.LogFieldAddr: addr})
		}
		return
	case sig := <-stop:
		logging.Info("shutting down", logging.Fields{"signal": sig.String()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("graceful shutdown failed", err, nil)
	}
}
