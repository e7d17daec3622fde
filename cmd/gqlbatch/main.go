// cmd/gqlbatch/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gqlbatch/internal/config"
	"gqlbatch/internal/dispatch"
	"gqlbatch/internal/domain"
	"gqlbatch/internal/infra/graphql"
	"gqlbatch/internal/input"
	"gqlbatch/internal/runlog"
	"gqlbatch/internal/tracing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

type flags struct {
	input          string
	logfile        string
	concurrency    int
	retries        int
	stop           bool
	disableLogging bool
	timeout        time.Duration
	metricsAddr    string
	trace          bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "gqlbatch [flags] IDs|FILE...",
		Short: "Run a batch of GraphQL operations against one endpoint",
		Long: `gqlbatch runs many GraphQL queries or mutations against a single
endpoint. Give it identifiers (4, 8, 100-200) and a template containing
the ` + input.Placeholder + ` placeholder, or give it files containing one complete
operation per line. The endpoint URI and bearer token are read from the
environment or a local .env file.`,
		Example: `  gqlbatch -i mutation.graphql 1 5 10 100-200
  gqlbatch myMutations.graphql`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, &f, args)
		},
	}

	cmd.Flags().StringVarP(&f.input, "input", "i", "", "file containing the GraphQL template rather than reading from stdin")
	cmd.Flags().StringVarP(&f.logfile, "logfile", "l", "", "log file path (default gqlbatch-YYYYMMDDhhmmss.log)")
	cmd.Flags().IntVarP(&f.concurrency, "concurrency", "c", 0, "concurrent requests to run; overrides CONCURRENT_REQUESTS")
	cmd.Flags().IntVarP(&f.retries, "retries", "r", dispatch.DefaultMaxAttempts, "total attempts per operation, including the first request")
	cmd.Flags().BoolVarP(&f.stop, "stop", "s", false, "stop claiming new operations after the first failure; in-flight requests still complete")
	cmd.Flags().BoolVarP(&f.disableLogging, "disable-logging", "d", false, "disable the log file and only write to stdout")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "per-request timeout; 0 waits as long as the server takes")
	cmd.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address for the duration of the run")
	cmd.Flags().BoolVar(&f.trace, "trace", false, "emit OpenTelemetry spans to stderr")

	return cmd
}

func runBatch(cmd *cobra.Command, f *flags, args []string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With("run_id", uuid.NewString())
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("concurrency") {
		if f.concurrency < 1 {
			return fmt.Errorf("concurrency must be at least 1, got %d", f.concurrency)
		}
		cfg.ConcurrentRequests = f.concurrency
	}
	if cmd.Flags().Changed("timeout") {
		cfg.RequestTimeout = f.timeout
	}

	if f.trace {
		shutdown, err := tracing.InitTracer("gqlbatch", os.Stderr)
		if err != nil {
			return fmt.Errorf("initializing tracer: %w", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Error("tracer shutdown failed", "error", err)
			}
		}()
	}

	ops, err := collectOperations(f, args)
	if err != nil {
		return err
	}

	log, err := openRunLog(f, logger)
	if err != nil {
		return err
	}
	defer log.Close()

	if f.metricsAddr != "" {
		go serveMetrics(f.metricsAddr, logger)
	}

	// An interrupt stops new claims; requests already sent run to their
	// natural conclusion, like fail-fast cancellation.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	transport := graphql.NewClient(cfg.URI, cfg.BearerToken, cfg.RequestTimeout)
	policy := dispatch.NewRetryPolicy(transport, f.retries, logger)
	dispatcher := dispatch.New(policy, log, logger, dispatch.Options{
		Concurrency: cfg.ConcurrentRequests,
		FailFast:    f.stop,
	})

	start := time.Now()
	log.Printf("Processing %d operations with %d concurrent request(s) on %s",
		len(ops), cfg.ConcurrentRequests, cfg.URI)

	result := dispatcher.Run(ctx, ops)

	summary := fmt.Sprintf("%d/%d requests succeeded", result.Succeeded, result.Total)
	if log.Path() != "" {
		summary += fmt.Sprintf(" and logged to '%s'", log.Path())
	}
	summary += fmt.Sprintf(". Time taken: %s", time.Since(start).Round(time.Millisecond))
	log.Printf("%s", summary)
	if len(result.Unanswered) > 0 {
		log.Printf("Never heard back from: %s", strings.Join(result.Unanswered, ","))
	}
	if err := log.Err(); err != nil {
		logger.Error("log file writes failed", "error", err)
	}

	return result.ExitErr()
}

// collectOperations builds the payload sequence from the positional
// arguments: identifier mode renders one template per ID, file mode
// reads one operation per non-empty line.
func collectOperations(f *flags, args []string) ([]domain.Operation, error) {
	ids, files, err := input.Classify(args)
	if err != nil {
		return nil, err
	}

	if len(files) > 0 {
		return input.ReadOperationFiles(files)
	}

	var tmpl string
	if f.input != "" {
		b, err := os.ReadFile(f.input)
		if err != nil {
			return nil, fmt.Errorf("reading template file: %w", err)
		}
		tmpl = string(b)
	} else {
		fmt.Fprintf(os.Stderr, "Paste your GraphQL query or mutation below and put a . on a line by itself to execute. Use %s for the iterator value.\n", input.Placeholder)
		tmpl, err = input.ReadTemplate(os.Stdin)
		if err != nil {
			return nil, err
		}
	}
	if err := input.ValidateTemplate(tmpl); err != nil {
		return nil, err
	}
	return input.RenderAll(tmpl, ids), nil
}

func openRunLog(f *flags, logger *slog.Logger) (*runlog.Log, error) {
	if f.disableLogging {
		return runlog.New(os.Stdout, nil), nil
	}
	path := f.logfile
	if path == "" {
		path = runlog.DefaultPath()
	}
	log, err := runlog.Open(path, os.Stdout)
	if err != nil {
		return nil, err
	}
	logger.Info("logging to file", "path", path)
	return log, nil
}

func serveMetrics(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logger.Info("serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		logger.Error("metrics server failed", "error", err)
	}
}
