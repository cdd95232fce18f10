package devicewatch

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pilebones/go-udev/netlink"

	"docket/internal/logging"
)

// Event describes a matched device attach.
type Event struct {
	Device string
	Action string
	Vendor string
	Model  string
}

// Monitor waits for USB device attach events.
type Monitor struct {
	match  string
	logger *slog.Logger
}

// NewMonitor creates a monitor that reports USB attach events whose vendor or
// model contains match (case-insensitive). An empty match reports every USB
// attach.
func NewMonitor(match string, logger *slog.Logger) *Monitor {
	return &Monitor{
		match:  strings.ToLower(strings.TrimSpace(match)),
		logger: logging.NewComponentLogger(logger, "device-watch"),
	}
}

// Await blocks until a matching device is attached or ctx ends. It returns
// ctx.Err() when the context is canceled or its deadline passes.
func (m *Monitor) Await(ctx context.Context) (*Event, error) {
	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		m.logger.Warn("failed to connect to netlink socket",
			logging.Error(err),
			logging.String(logging.FieldEventType, "netlink_connect_failed"),
			logging.String(logging.FieldErrorHint, "run with permission to open netlink sockets, or poll `scanimage -L` instead"),
			logging.String(logging.FieldImpact, "cannot wait for scanner hotplug"),
		)
		return nil, err
	}
	defer conn.Close()

	queue := make(chan netlink.UEvent)
	errs := make(chan error)
	quit := conn.Monitor(queue, errs, buildMatcher())
	defer close(quit)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case uevent := <-queue:
			if event, ok := m.matchEvent(uevent); ok {
				m.logger.Info("scanner attached",
					logging.String(logging.FieldEventType, "scanner_attached"),
					logging.String("device", event.Device),
					logging.String("vendor", event.Vendor),
					logging.String("model", event.Model),
				)
				return event, nil
			}
		case err := <-errs:
			m.logger.Warn("netlink monitor error",
				logging.Error(err),
				logging.String(logging.FieldEventType, "netlink_monitor_error"),
				logging.String(logging.FieldErrorHint, "check kernel netlink subsystem"),
				logging.String(logging.FieldImpact, "hotplug events may be missed"),
			)
		}
	}
}

// buildMatcher accepts USB device add events.
func buildMatcher() netlink.Matcher {
	action := "add|bind"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM": "usb",
		},
	})
	return rules
}

func (m *Monitor) matchEvent(uevent netlink.UEvent) (*Event, bool) {
	event := &Event{
		Device: extractDeviceName(uevent),
		Action: string(uevent.Action),
		Vendor: uevent.Env["ID_VENDOR"],
		Model:  uevent.Env["ID_MODEL"],
	}
	if m.match == "" {
		return event, true
	}
	haystack := strings.ToLower(event.Vendor + " " + event.Model + " " + uevent.Env["PRODUCT"])
	if strings.Contains(haystack, m.match) {
		return event, true
	}
	return nil, false
}

// extractDeviceName gets the device path from a uevent.
func extractDeviceName(uevent netlink.UEvent) string {
	if devname := uevent.Env["DEVNAME"]; devname != "" {
		return devname
	}
	devpath := uevent.Env["DEVPATH"]
	if devpath == "" {
		return ""
	}
	parts := strings.Split(devpath, "/")
	return parts[len(parts)-1]
}
