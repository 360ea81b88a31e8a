package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"talos/internal/adapters/config"
	"talos/internal/adapters/errors/noop"
	"talos/internal/adapters/errors/sentry"
	"talos/internal/domain/option"
	"talos/internal/metrics"
	selectionsvc "talos/internal/services/selection"
	"talos/pkg/errors"
	"talos/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get().With("run_id", uuid.NewString())
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	// Initialize error tracker
	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	metrics.Register()

	svc, err := selectionsvc.NewService(cfg.Selection.ToDomain())
	if err != nil {
		log.Fatalf("Failed to build selection service: %v", err)
	}

	action := option.Action(cfg.Evaluator.Action)
	if !action.Valid() {
		log.Fatalf("Unknown action %q", cfg.Evaluator.Action)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Evaluator.MetricsAddr != "" {
		startMetricsServer(cfg.Evaluator.MetricsAddr, log)
	}

	interval := parseInterval(cfg.Evaluator.Interval, log)
	if interval <= 0 {
		if err := evaluateOnce(svc, action, cfg.Evaluator.ChainPath, log); err != nil {
			log.Fatalf("Evaluation failed: %v", err)
		}
		return
	}

	// Re-evaluate the snapshot file on a fixed cadence, e.g. once per
	// completed five-minute bar written by an upstream connector.
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := evaluateOnce(svc, action, cfg.Evaluator.ChainPath, log); err != nil {
					log.Errorf("Evaluation failed: %v", err)
				}
			}
		}
	}()

	waitForShutdown(ctx, cancel, errorTracker, log)
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}

// evaluateOnce loads the chain snapshot file, runs selection, and prints
// the outcome
func evaluateOnce(svc *selectionsvc.Service, action option.Action, path string, log *logger.Logger) error {
	chain, err := loadChain(path)
	if err != nil {
		return err
	}

	rec, err := svc.Select(action, chain.Quotes, chain.Snapshot)
	if err != nil {
		return err
	}

	if rec == nil {
		fmt.Println("no contract meets the risk/reward bar")
		return nil
	}

	fmt.Println(rec.Explanation)
	if rec.Context != nil {
		fmt.Printf("market context: VIX %.1f (%s, %s), %s, %.1f hours to close\n",
			rec.Context.VIX, rec.Context.VIXRegime, rec.Context.VIXPercentile,
			rec.Context.PhaseText, rec.Context.HoursRemaining)
	}
	return nil
}

// loadChain reads an option chain snapshot from a JSON file
func loadChain(path string) (*option.Chain, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read chain file %s", path)
	}

	var chain option.Chain
	if err := json.Unmarshal(data, &chain); err != nil {
		return nil, errors.Wrap(err, "failed to parse chain file")
	}

	if chain.Snapshot.Timestamp.IsZero() {
		chain.Snapshot.Timestamp = time.Now()
	}
	return &chain, nil
}

func parseInterval(raw string, log *logger.Logger) time.Duration {
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Warnf("Invalid EVALUATOR_INTERVAL %q, evaluating once: %v", raw, err)
		return 0
	}
	return d
}

func startMetricsServer(addr string, log *logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	go func() {
		log.Infof("Metrics server listening on %s", addr)
		if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
			log.Errorf("Metrics server failed: %v", err)
		}
	}()
}

// waitForShutdown blocks until SIGINT/SIGTERM and flushes pending events
func waitForShutdown(ctx context.Context, cancel context.CancelFunc, tracker errors.Tracker, log *logger.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Infof("Received signal %s, shutting down", sig)
	case <-ctx.Done():
	}

	cancel()

	flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer flushCancel()
	_ = tracker.Flush(flushCtx)
}
