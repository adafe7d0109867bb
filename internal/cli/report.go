package cli

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"secmatrix/internal/models"
	"secmatrix/internal/report"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func reportCmd(st *state) *cobra.Command {
	var (
		sections []string
		out      string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the PDF report to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			var selected []models.SourceName
			if cmd.Flags().Changed("sections") {
				selected = report.ParseSections(sections)
			}
			names := selected
			if names == nil {
				names = models.SourceOrder
			}

			snaps, err := st.matrix(nil).Select(names)
			if err != nil {
				return err
			}

			now := time.Now()
			if out == "" {
				out = report.Filename(now)
			}

			var buf bytes.Buffer
			if err := report.Generate(&buf, report.Request{
				Sections:    selected,
				Snapshots:   snaps,
				GeneratedAt: now,
				ProjectName: st.cfg.ProjectName,
			}); err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}

			log.Info().Str("output", out).Int("bytes", buf.Len()).Msg("report saved")
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&sections, "sections", nil, "Sections to include (magerit,anexo_a,cobit,nist); all when omitted")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default reporte_seguridad_<timestamp>.pdf)")
	return cmd
}
