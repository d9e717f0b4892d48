/*
Copyright © 2026 ZJJ Tools

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjjtools/mededu/internal/config"
	"github.com/zjjtools/mededu/internal/pipeline"
	"github.com/zjjtools/mededu/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the medication-education HTTP API",
	Long: `Start the HTTP server exposing:

  POST /api/v1      generate the first education sheet (V1)
  POST /api/refine  critique a V1 and rewrite it into a V3
  GET  /ping        liveness check

Configuration comes from the environment (and an optional .env file):
MEDEDU_TOKEN or GITHUB_TOKEN, MEDEDU_ENDPOINT, MEDEDU_MODEL, MEDEDU_PROVIDER,
MEDEDU_ADDR.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}

		client, err := buildClient(cfg)
		if err != nil {
			return err
		}

		srv := server.New(pipeline.New(client))

		httpSrv := &http.Server{
			Addr:              cfg.Addr,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errc := make(chan error, 1)
		go func() {
			log.Printf("listening on %s (model %s via %s)", cfg.Addr, cfg.Model, cfg.Provider)
			errc <- httpSrv.ListenAndServe()
		}()

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		log.Printf("server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides MEDEDU_ADDR)")
}
