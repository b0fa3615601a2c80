package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/CodeStranger-Fred/gridq/mdp"
)

func chartDir(path string) string {
	return filepath.Dir(path)
}

func writeChart(path, runID string, res mdp.TrainingResult, window int) error {
	if err := os.MkdirAll(chartDir(path), 0o700); err != nil {
		return fmt.Errorf("create chart directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	defer f.Close()

	subtitle := fmt.Sprintf("run %s, %d episodes, %d goals, %d traps", runID, len(res.Episodes), res.Goals, res.Traps)
	if err := mdp.PlotTraining(f, "gridq q-learning", subtitle, res, window); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return f.Close()
}

// serveCharts serves dir over HTTP until ctx is cancelled.
func serveCharts(ctx context.Context, dir, addr string, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           http.FileServer(http.Dir(dir)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Str("dir", dir).Msg("serving charts")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("chart server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("chart server shutdown: %w", err)
	}
	logger.Info().Msg("chart server stopped")
	return nil
}
