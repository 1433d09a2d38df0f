package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mnehpets/jrpc/config"
	"github.com/mnehpets/jrpc/lint"
	"github.com/mnehpets/jrpc/logging"
	"github.com/mnehpets/jrpc/schema"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve packet checks over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	log, err := logging.New(cfg.Log, nil)
	if err != nil {
		return err
	}

	var schemas *schema.Registry
	if cfg.Schemas.Dir != "" {
		if schemas, err = schema.LoadDir(cfg.Schemas.Dir); err != nil {
			return err
		}
		log.WithField("methods", schemas.Methods()).Info("loaded params schemas")
	}

	svc := &lint.Service{
		Schemas:      schemas,
		Log:          log,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	}
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      lint.NewMux(svc, cfg.Server),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
