package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/c360studio/semmap/config"
	"github.com/c360studio/semmap/load"
	"github.com/c360studio/semmap/metric"
	"github.com/c360studio/semmap/selector"
	"github.com/c360studio/semmap/vocabulary/rml"
)

// errRejected signals a completed check that found invalid term maps. The
// report has already been printed.
var errRejected = errors.New("invalid term maps")

type checkFlags struct {
	policy          string
	strictDatatypes bool
	source          string
	formulation     string
	watch           bool
	metricsAddr     string
}

func checkCmd(configPath, logLevel *string) *cobra.Command {
	var flags checkFlags

	cmd := &cobra.Command{
		Use:   "check [patterns...]",
		Short: "Validate term map record files",
		Long: `Check loads every record file matched by the given patterns (or by
inputs.patterns from the configuration) and validates each term map.

Patterns are doublestar globs; a directory selects every *.termmap.yaml below it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader(newLogger(*logLevel)).Load(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			applyFlags(cmd, cfg, &flags, *logLevel, args)
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return runCheck(ctx, cmd.OutOrStdout(), cfg, flags.watch)
		},
	}

	cmd.Flags().StringVar(&flags.policy, "policy", "", "Rejection policy (fail-fast, skip)")
	cmd.Flags().BoolVar(&flags.strictDatatypes, "strict-datatypes", false, "Only accept XSD and RDF datatypes")
	cmd.Flags().StringVar(&flags.source, "source", "", "Default logical source for field names")
	cmd.Flags().StringVar(&flags.formulation, "formulation", "", "Default reference formulation (column, csv, jsonpath, xpath)")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "Re-check when record files change")
	cmd.Flags().StringVar(&flags.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")

	return cmd
}

// applyFlags lets explicitly set flags override the layered configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Config, flags *checkFlags, logLevel string, args []string) {
	if cmd.Flags().Changed("policy") {
		cfg.Validation.Policy = flags.policy
	}
	if cmd.Flags().Changed("strict-datatypes") {
		cfg.Validation.StrictDatatypes = flags.strictDatatypes
	}
	if cmd.Flags().Changed("source") {
		cfg.Selectors.Source = flags.source
	}
	if cmd.Flags().Changed("formulation") {
		cfg.Selectors.Formulation = flags.formulation
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.Metrics.Addr = flags.metricsAddr
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if len(args) > 0 {
		// Command line patterns are relative to the working directory
		cfg.Inputs.Patterns = args
		cfg.Inputs.Root = ""
	}
}

func runCheck(ctx context.Context, out io.Writer, cfg *config.Config, watch bool) error {
	logger := newLogger(cfg.Log.Level)

	reg := prometheus.NewRegistry()
	collector, err := metric.NewCollector(reg, cfg.Metrics.Namespace)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	loader := load.NewLoader(load.Options{
		Policy:          load.Policy(cfg.Validation.Policy),
		StrictDatatypes: cfg.Validation.StrictDatatypes,
		Source:          cfg.Selectors.Source,
		Formulation:     selector.Formulation(cfg.Selectors.Formulation),
		Logger:          logger,
		Metrics:         collector,
	})

	files, checkErr := checkOnce(ctx, out, cfg, loader)
	if !watch {
		return checkErr
	}

	if cfg.Metrics.Addr != "" {
		srv := &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("Serving metrics", "addr", cfg.Metrics.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	return watchLoop(ctx, out, cfg, loader, files, logger)
}

func watchLoop(ctx context.Context, out io.Writer, cfg *config.Config, loader *load.Loader, files []string, logger *slog.Logger) error {
	w, err := load.NewWatcher(load.WatcherConfig{
		Root:          cfg.Inputs.Root,
		Patterns:      cfg.Inputs.Patterns,
		DebounceDelay: cfg.Inputs.Debounce,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Start(ctx, files); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	for batch := range w.Events() {
		for _, c := range batch {
			logger.Info("Record file changed", "path", c.Path, "op", c.Operation)
		}
		// Check errors are reported; watching continues
		_, _ = checkOnce(ctx, out, cfg, loader)
	}
	logger.Info("Watch stopped")
	return nil
}

func checkOnce(ctx context.Context, out io.Writer, cfg *config.Config, loader *load.Loader) ([]string, error) {
	files, err := load.ResolveFiles(cfg.Inputs.Root, cfg.Inputs.Patterns)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return nil, err
	}

	res, loadErr := loader.Load(ctx, files)
	printReport(out, res)

	switch {
	case loadErr != nil && !errors.Is(loadErr, load.ErrRejected):
		fmt.Fprintf(out, "error: %v\n", loadErr)
		return files, loadErr
	case !res.OK():
		return files, errRejected
	default:
		return files, nil
	}
}

func printReport(out io.Writer, res *load.Result) {
	if res == nil {
		return
	}
	for _, r := range res.Rejections {
		fmt.Fprintf(out, "%s:%d: %s error in %s map (group %q, map %d)\n",
			r.File, r.Line, r.Err.Kind, r.Err.Role, r.Group, r.Index)
		fmt.Fprintf(out, "    %v\n", r.Err)
		if iri := r.Err.FieldIRI(); iri != "" {
			fmt.Fprintf(out, "    field: %s\n", iri)
		}
		if link := r.Err.Role.GroupPredicate(); link != "" {
			fmt.Fprintf(out, "    link: %s\n", rml.FieldIRI(link))
		}
		if hint := r.Err.Hint(); hint != "" {
			fmt.Fprintf(out, "    hint: %s\n", hint)
		}
	}
	s := res.Summary
	fmt.Fprintf(out, "checked %d files: %d term maps built, %d rejected (load %s)\n",
		len(res.Files), s.Built, s.Rejected, s.LoadID)
}
