package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newVINCommand(ctx *commandContext) *cobra.Command {
	vinCmd := &cobra.Command{
		Use:   "vin",
		Short: "Decode and validate Vehicle Identification Numbers",
	}

	vinCmd.AddCommand(newVINDecodeCommand(ctx))
	vinCmd.AddCommand(newVINValidateCommand(ctx))
	vinCmd.AddCommand(newVINReportCommand(ctx))

	return vinCmd
}

func newVINDecodeCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "decode <vin>",
		Short: "Decode a VIN into descriptive fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decoder, err := ctx.decoder()
			if err != nil {
				return err
			}
			result := decoder.Decode(args[0])

			if jsonOut {
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "VIN:          %s\n", result.VIN)
			fmt.Fprintf(out, "Manufacturer: %s\n", result.Manufacturer)
			fmt.Fprintf(out, "Model year:   %s\n", formatYear(result.ModelYear))
			fmt.Fprintf(out, "Plant code:   %s\n", emptyDash(result.PlantCode))
			fmt.Fprintf(out, "Vehicle type: %s\n", emptyDash(result.VehicleType))
			fmt.Fprintf(out, "Valid:        %s\n", yesNo(result.Valid))
			printVINErrors(cmd, result.Errors)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}

func newVINValidateCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "validate <vin>",
		Short: "Run structural validation checks against a VIN",
		Long: "Validate runs every structural check (length, alphabet, check digit) and\n" +
			"reports all failures. The command exits non-zero when the VIN is invalid.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decoder, err := ctx.decoder()
			if err != nil {
				return err
			}
			valid, errs := decoder.Validate(args[0])

			if jsonOut {
				if err := writeJSON(cmd, map[string]any{"vin": args[0], "valid": valid, "errors": errs}); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Valid: %s\n", yesNo(valid))
				printVINErrors(cmd, errs)
			}

			if !valid {
				return fmt.Errorf("VIN failed validation with %d error(s)", len(errs))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}

func newVINReportCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "report <vin>",
		Short: "Produce a forensic summary for legal documentation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decoder, err := ctx.decoder()
			if err != nil {
				return err
			}
			summary := decoder.ForensicSummary(args[0])

			if jsonOut {
				return writeJSON(cmd, summary)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "=== Forensic VIN Summary ===")
			fmt.Fprintf(out, "VIN:               %s\n", summary.VIN)
			fmt.Fprintf(out, "Manufacturer:      %s\n", summary.Manufacturer)
			fmt.Fprintf(out, "Model year:        %s\n", formatYear(summary.ModelYear))
			fmt.Fprintf(out, "Vehicle type:      %s\n", emptyDash(summary.VehicleType))
			fmt.Fprintf(out, "Validation status: %s\n", summary.ValidationStatus)
			fmt.Fprintln(out, "Forensic notes:")
			fmt.Fprintf(out, "  WMI code:      %s\n", summary.ForensicNotes.WMICode)
			fmt.Fprintf(out, "  Plant code:    %s\n", summary.ForensicNotes.PlantCode)
			fmt.Fprintf(out, "  Serial number: %s\n", summary.ForensicNotes.SerialNumber)
			if len(summary.LegalRelevance) > 0 {
				fmt.Fprintln(out, "Legal relevance:")
				keys := make([]string, 0, len(summary.LegalRelevance))
				for key := range summary.LegalRelevance {
					keys = append(keys, key)
				}
				sort.Strings(keys)
				for _, key := range keys {
					fmt.Fprintf(out, "  %s: %s\n", key, summary.LegalRelevance[key])
				}
			}
			printVINErrors(cmd, summary.Errors)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}

func printVINErrors(cmd *cobra.Command, errs []string) {
	if len(errs) == 0 {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Errors:")
	for _, e := range errs {
		fmt.Fprintf(out, "  - %s\n", e)
	}
}

func formatYear(year int) string {
	if year == 0 {
		return "unknown"
	}
	return fmt.Sprintf("%d", year)
}

func emptyDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
