package cmd

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/barnettlynn/linkguard/internal/metrics"
)

func serveMetricsCmd() *cobra.Command {
	var listenAddr string

	cmd := &cobra.Command{
		Use:   "serve-metrics",
		Short: "Serve the linkframe decode metrics over HTTP for Prometheus scraping",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			reg := prometheus.NewRegistry()
			metrics.NewCollector(reg)

			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

			slog.Info("serving metrics", "addr", listenAddr)
			fmt.Printf("serving metrics on %s/metrics\n", listenAddr)
			return http.ListenAndServe(listenAddr, mux)
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", ":9090", "address to serve /metrics on")

	return cmd
}
