package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tair/retail-dashboard/internal/app"
	"github.com/tair/retail-dashboard/pkg/auth"
)

var exportOut string

// exportCmd writes the catalog as CSV
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog as CSV",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, cleanup, err := app.Bootstrap(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	var w io.Writer = cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOut, err)
		}
		defer f.Close()
		w = f
	}

	n, err := a.ExportHandler.Handle(cmd.Context(), auth.System, w)
	if err != nil {
		return err
	}
	if exportOut != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "exported %d products to %s\n", n, exportOut)
	}
	return nil
}
