package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"pathway-compass/survey-portal-backend/internal/projects"
)

// AuditWorker periodically re-derives progress for every stored project
// and logs the ones whose stored value has drifted.
type AuditWorker struct {
	auditor *projects.DriftAuditor
	logger  *zap.Logger
	config  AuditWorkerConfig
	done    chan struct{}
}

// AuditWorkerConfig configuration for the audit worker
type AuditWorkerConfig struct {
	ScanInterval time.Duration
	ScanTimeout  time.Duration
}

// DefaultAuditWorkerConfig returns default configuration
func DefaultAuditWorkerConfig() AuditWorkerConfig {
	return AuditWorkerConfig{
		ScanInterval: time.Hour,
		ScanTimeout:  5 * time.Minute,
	}
}

// NewAuditWorker creates a new audit worker
func NewAuditWorker(auditor *projects.DriftAuditor, logger *zap.Logger, config AuditWorkerConfig) *AuditWorker {
	return &AuditWorker{
		auditor: auditor,
		logger:  logger,
		config:  config,
		done:    make(chan struct{}),
	}
}

// Start runs the scan loop until the context is cancelled or Stop is
// called. The first scan happens immediately.
func (w *AuditWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting audit worker",
		zap.Duration("scan_interval", w.config.ScanInterval))

	ticker := time.NewTicker(w.config.ScanInterval)
	defer ticker.Stop()

	w.scan(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

// Stop signals the worker to exit its loop.
func (w *AuditWorker) Stop() {
	close(w.done)
}

func (w *AuditWorker) scan(ctx context.Context) {
	scanCtx, cancel := context.WithTimeout(ctx, w.config.ScanTimeout)
	defer cancel()

	start := time.Now()
	drifted, err := w.auditor.Run(scanCtx)
	if err != nil {
		w.logger.Error("Progress drift scan failed", zap.Error(err))
		return
	}
	w.logger.Info("Progress drift scan finished",
		zap.Int("drifted", drifted),
		zap.Duration("elapsed", time.Since(start)))
}
