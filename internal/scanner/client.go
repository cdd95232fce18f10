package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"docket/internal/config"
	"docket/internal/logging"
	"docket/internal/preflight"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) (string, error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithClock overrides the timestamp source used in filenames.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// Request describes one document scan.
type Request struct {
	CaseID       string
	DocumentType string
	Description  string
}

// Document describes a completed scan.
type Document struct {
	Path         string    `json:"path"`
	Filename     string    `json:"filename"`
	CaseID       string    `json:"case_id"`
	DocumentType string    `json:"document_type"`
	Description  string    `json:"description"`
	ScannedAt    time.Time `json:"scanned_at"`
}

// ErrScannerUnavailable indicates no matching scanner answered the SANE probe.
var ErrScannerUnavailable = errors.New("scanner not available")

// Client wraps scanimage CLI interactions.
type Client struct {
	binary        string
	device        string
	deviceMatch   string
	resolution    int
	mode          string
	outputDir     string
	minFreeMiB    int
	scanTimeout   time.Duration
	detectTimeout time.Duration
	exec          Executor
	logger        *slog.Logger
	now           func() time.Time
}

// New constructs a scanimage client from configuration.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config required")
	}
	if strings.TrimSpace(cfg.Paths.ScansDir) == "" {
		return nil, errors.New("scans directory required")
	}
	client := &Client{
		binary:        cfg.ScanimageBinary(),
		device:        cfg.Scanner.Device,
		deviceMatch:   cfg.Scanner.DeviceMatch,
		resolution:    cfg.Scanner.Resolution,
		mode:          cfg.Scanner.Mode,
		outputDir:     cfg.Paths.ScansDir,
		minFreeMiB:    cfg.Scanner.MinFreeMiB,
		scanTimeout:   time.Duration(cfg.Scanner.ScanTimeout) * time.Second,
		detectTimeout: time.Duration(cfg.Scanner.DetectTimeout) * time.Second,
		exec:          commandExecutor{},
		logger:        logging.NewComponentLogger(logger, "scanner"),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Available probes SANE for the configured scanner. A missing binary or probe
// timeout reports unavailable rather than failing.
func (c *Client) Available(ctx context.Context) bool {
	probeCtx := ctx
	if c.detectTimeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, c.detectTimeout)
		defer cancel()
	}

	output, err := c.exec.Run(probeCtx, c.binary, []string{"-L"})
	if err != nil {
		c.logger.Warn("scanner probe failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "scanner_probe_failed"),
			logging.String(logging.FieldErrorHint, "install SANE backends and check the USB connection"),
			logging.String(logging.FieldImpact, "document scanning unavailable"),
		)
		return false
	}
	return strings.Contains(strings.ToLower(output), c.deviceMatch)
}

// Scan digitizes one document to a timestamped PDF in the scans directory.
// It refuses to start when the scans directory sits below the configured
// free-space floor. The scans directory lock is held for the duration so
// concurrent docket invocations cannot contend for the scanner.
func (c *Client) Scan(ctx context.Context, req Request) (*Document, error) {
	caseID := strings.TrimSpace(req.CaseID)
	if caseID == "" {
		return nil, errors.New("case id required")
	}
	docType := strings.TrimSpace(req.DocumentType)
	if docType == "" {
		docType = "evidence"
	}

	if !c.Available(ctx) {
		return nil, fmt.Errorf("%w: no device matching %q answered `%s -L`", ErrScannerUnavailable, c.deviceMatch, c.binary)
	}

	if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create scans directory: %w", err)
	}

	if c.minFreeMiB > 0 {
		free, err := preflight.FreeSpaceMiB(c.outputDir)
		if err != nil {
			return nil, fmt.Errorf("check free space: %w", err)
		}
		if free < int64(c.minFreeMiB) {
			return nil, fmt.Errorf("insufficient free space in %s: %d MiB available, %d MiB required", c.outputDir, free, c.minFreeMiB)
		}
	}

	lock := flock.New(filepath.Join(c.outputDir, ".scan.lock"))
	locked, err := lock.TryLockContext(ctx, 250*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("acquire scan lock: %w", err)
	}
	if !locked {
		return nil, errors.New("another scan is in progress")
	}
	defer func() { _ = lock.Unlock() }()

	scannedAt := c.now()
	filename := buildFilename(caseID, docType, req.Description, scannedAt)
	outputPath := filepath.Join(c.outputDir, filename)

	scanCtx := ctx
	if c.scanTimeout > 0 {
		var cancel context.CancelFunc
		scanCtx, cancel = context.WithTimeout(ctx, c.scanTimeout)
		defer cancel()
	}

	args := make([]string, 0, 5)
	if c.device != "" {
		args = append(args, "--device-name="+c.device)
	}
	args = append(args,
		"--format=pdf",
		"--resolution="+strconv.Itoa(c.resolution),
		"--mode="+c.mode,
		"--output="+outputPath,
	)

	c.logger.Info("scanning document",
		logging.String(logging.FieldCaseID, caseID),
		logging.String("document_type", docType),
		logging.String("filename", filename),
	)

	if _, err := c.exec.Run(scanCtx, c.binary, args); err != nil {
		if errors.Is(scanCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("scan timed out after %s; check the scanner connection", c.scanTimeout)
		}
		return nil, fmt.Errorf("scanimage: %w", err)
	}

	if _, err := os.Stat(outputPath); err != nil {
		return nil, fmt.Errorf("scanimage produced no output file at %s", outputPath)
	}

	c.logger.Info("document scanned",
		logging.String(logging.FieldCaseID, caseID),
		logging.String("path", outputPath),
	)

	return &Document{
		Path:         outputPath,
		Filename:     filename,
		CaseID:       caseID,
		DocumentType: docType,
		Description:  req.Description,
		ScannedAt:    scannedAt,
	}, nil
}

// OutputDir reports the directory scans land in.
func (c *Client) OutputDir() string {
	return c.outputDir
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		trimmed := strings.TrimSpace(string(output))
		if trimmed != "" {
			return string(output), fmt.Errorf("%w: %s", err, trimmed)
		}
		return string(output), err
	}
	return string(output), nil
}
