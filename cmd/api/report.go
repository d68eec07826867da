package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"realtyapi/internal/report"
	"realtyapi/internal/repository/postgres"
	"realtyapi/internal/service"
)

func newReportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the contacts report to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			svc := service.NewReportService(postgres.NewInquiryPostgres(e.db), e.cfg.Location())
			n, err := writeReport(cmd.Context(), svc, out, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			e.log.Info("contacts report written", zap.String("out", out), zap.Int("bytes", n))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", report.Filename, `output file, "-" for stdout`)
	return cmd
}

// writeReport renders the report and writes it to path, or to stdout when path is "-".
// The file is only created once the document has been fully built.
func writeReport(ctx context.Context, svc service.ReportService, path string, stdout io.Writer) (int, error) {
	pdf, err := svc.Generate(ctx)
	if err != nil {
		return 0, err
	}
	if path == "-" {
		return stdout.Write(pdf)
	}
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	return len(pdf), nil
}
