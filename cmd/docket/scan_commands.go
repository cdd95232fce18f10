package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"docket/internal/devicewatch"
	"docket/internal/logging"
	"docket/internal/preflight"
	"docket/internal/scanlog"
	"docket/internal/scanner"
)

func listHistory(ctx context.Context, store *scanlog.Store, caseID string, limit int) ([]scanlog.Entry, error) {
	if strings.TrimSpace(caseID) != "" {
		entries, err := store.ListByCase(ctx, caseID)
		if err != nil {
			return nil, err
		}
		if limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}
		return entries, nil
	}
	return store.List(ctx, limit)
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan and track legal documents",
	}

	scanCmd.AddCommand(newScanRunCommand(ctx))
	scanCmd.AddCommand(newScanListCommand(ctx))
	scanCmd.AddCommand(newScanHistoryCommand(ctx))
	scanCmd.AddCommand(newScanStatusCommand(ctx))
	scanCmd.AddCommand(newScanAwaitCommand(ctx))

	return scanCmd
}

func newScanRunCommand(ctx *commandContext) *cobra.Command {
	var (
		vinFlag     string
		caseFlag    string
		typeFlag    string
		description string
		jsonOut     bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Scan one document to a timestamped PDF",
		Long: "Run digitizes the document currently on the scanner bed. Files are named\n" +
			"{case}_{type}_{timestamp}[_{description}].pdf and every scan is recorded\n" +
			"in the audit trail. Pass --vin to derive the case identifier from a\n" +
			"vehicle's VIN.",
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID := strings.TrimSpace(caseFlag)
			if vinFlag != "" {
				caseID = scanner.CaseIDFromVIN(vinFlag)
			}
			if caseID == "" {
				return fmt.Errorf("a case identifier is required (--case or --vin)")
			}

			client, err := ctx.scannerClient()
			if err != nil {
				return err
			}

			doc, err := client.Scan(cmd.Context(), scanner.Request{
				CaseID:       caseID,
				DocumentType: typeFlag,
				Description:  description,
			})
			if err != nil {
				return err
			}

			recordAudit(ctx, cmd.Context(), doc)

			if jsonOut {
				return writeJSON(cmd, doc)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Scanned %s\n", doc.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&vinFlag, "vin", "", "Derive the case identifier from this VIN")
	cmd.Flags().StringVar(&caseFlag, "case", "", "Case identifier used in the filename")
	cmd.Flags().StringVarP(&typeFlag, "type", "t", "evidence", "Document type (evidence, service_invoice, ...)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Free-text description appended to the filename")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}

// recordAudit best-effort appends the scan to the audit database. A failed
// audit write must not discard an already-scanned document, so failures are
// logged rather than returned.
func recordAudit(ctx *commandContext, cmdCtx context.Context, doc *scanner.Document) {
	store, err := ctx.auditStore()
	if err == nil {
		_, err = store.Record(cmdCtx, doc.Filename, doc.CaseID, doc.DocumentType, doc.Description, doc.ScannedAt)
		_ = store.Close()
	}
	if err != nil {
		if logger, lerr := ctx.ensureLogger(); lerr == nil {
			logger.Warn("failed to record scan in audit trail",
				logging.Error(err),
				logging.String(logging.FieldEventType, "audit_record_failed"),
				logging.String(logging.FieldErrorHint, "check the scans directory permissions"),
				logging.String(logging.FieldImpact, "chain of custody record incomplete"),
				logging.String("filename", doc.Filename),
			)
		}
	}
}

func newScanListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scanned PDFs on disk, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			docs, err := scanner.ListDocuments(cfg.Paths.ScansDir)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, docs)
			}

			out := cmd.OutOrStdout()
			if len(docs) == 0 {
				fmt.Fprintln(out, "No scanned documents found")
				return nil
			}
			rows := make([][]string, 0, len(docs))
			for _, doc := range docs {
				rows = append(rows, []string{
					doc.Filename,
					strconv.FormatFloat(doc.SizeMiB, 'f', 2, 64),
					doc.Modified.Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"File", "Size (MiB)", "Modified"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}

func newScanHistoryCommand(ctx *commandContext) *cobra.Command {
	var (
		limit   int
		caseID  string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the scan audit trail",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.auditStore()
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := listHistory(cmd.Context(), store, caseID, limit)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, entries)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No audit entries recorded")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.CreatedAt.Local().Format("2006-01-02 15:04"),
					entry.CaseID,
					docTypeLabel(entry.DocumentType),
					entry.Filename,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"When", "Case", "Type", "File"},
				rows,
				nil,
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show (0 for all)")
	cmd.Flags().StringVar(&caseID, "case", "", "Only show entries for this case")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}

func newScanStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check scanner availability and environment readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := ctx.scannerClient()
			if err != nil {
				return err
			}

			status := preflight.Run(cmd.Context(), cfg, client)

			if jsonOut {
				return writeJSON(cmd, status)
			}

			out := cmd.OutOrStdout()
			for _, binary := range status.Binaries {
				if binary.Available {
					fmt.Fprintf(out, "%s: found\n", binary.Name)
				} else {
					fmt.Fprintf(out, "%s: missing (%s)\n", binary.Name, binary.Detail)
				}
			}
			fmt.Fprintf(out, "Scanner detected: %s\n", yesNo(status.ScannerAvailable))
			fmt.Fprintf(out, "Scans directory:  %s (%d MiB free)\n", status.ScansDir, status.FreeMiB)
			fmt.Fprintf(out, "Ready to scan:    %s\n", yesNo(status.Ready))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}

func newScanAwaitCommand(ctx *commandContext) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "await",
		Short: "Block until the scanner is attached",
		Long: "Await listens for USB hotplug events and returns when a device matching\n" +
			"scanner.device_match is attached. Useful before a batch of scans when the\n" +
			"scanner wakes from sleep or is plugged in on demand.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			waitCtx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				waitCtx, cancel = context.WithTimeout(waitCtx, timeout)
				defer cancel()
			}

			monitor := devicewatch.NewMonitor(cfg.Scanner.DeviceMatch, logger)
			event, err := monitor.Await(waitCtx)
			if err != nil {
				if waitCtx.Err() != nil {
					return fmt.Errorf("no scanner matching %q attached: %w", cfg.Scanner.DeviceMatch, waitCtx.Err())
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Scanner attached: %s %s (%s)\n", event.Vendor, event.Model, event.Device)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Give up after this long (0 waits forever)")
	return cmd
}
