package config

const (
	defaultScansDir      = "~/.local/share/docket/scans"
	defaultLogDir        = "~/.local/share/docket/logs"
	defaultDeviceMatch   = "epson"
	defaultResolution    = 300
	defaultScanMode      = "Color"
	defaultScanTimeout   = 60
	defaultDetectTimeout = 10
	defaultMinFreeMiB    = 64
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ScansDir: defaultScansDir,
			LogDir:   defaultLogDir,
		},
		Scanner: Scanner{
			DeviceMatch:   defaultDeviceMatch,
			Resolution:    defaultResolution,
			Mode:          defaultScanMode,
			ScanTimeout:   defaultScanTimeout,
			DetectTimeout: defaultDetectTimeout,
			MinFreeMiB:    defaultMinFreeMiB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
