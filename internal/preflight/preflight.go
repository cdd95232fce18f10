package preflight

import (
	"context"

	"docket/internal/config"
)

// ScannerProbe reports whether a scanner answered the SANE probe.
type ScannerProbe interface {
	Available(ctx context.Context) bool
}

// RuntimeStatus summarizes the scanning environment for status output.
type RuntimeStatus struct {
	Binaries         []Status `json:"binaries"`
	ScannerAvailable bool     `json:"scanner_available"`
	ScansDir         string   `json:"scans_dir"`
	FreeMiB          int64    `json:"free_mib"`
	FreeSpaceOK      bool     `json:"free_space_ok"`
	Ready            bool     `json:"ready"`
}

// Run gathers the runtime status for the configured environment.
func Run(ctx context.Context, cfg *config.Config, probe ScannerProbe) RuntimeStatus {
	status := RuntimeStatus{ScansDir: cfg.Paths.ScansDir}

	status.Binaries = CheckBinaries([]Requirement{
		{
			Name:        "SANE scanimage",
			Command:     cfg.ScanimageBinary(),
			Description: "scanner frontend (install sane-backends / sane-utils)",
		},
	})

	binariesOK := true
	for _, b := range status.Binaries {
		if !b.Available && !b.Optional {
			binariesOK = false
		}
	}

	if probe != nil {
		status.ScannerAvailable = probe.Available(ctx)
	}

	status.FreeSpaceOK = true
	if free, err := FreeSpaceMiB(cfg.Paths.ScansDir); err == nil {
		status.FreeMiB = free
		if cfg.Scanner.MinFreeMiB > 0 && free < int64(cfg.Scanner.MinFreeMiB) {
			status.FreeSpaceOK = false
		}
	}

	status.Ready = binariesOK && status.ScannerAvailable && status.FreeSpaceOK
	return status
}
