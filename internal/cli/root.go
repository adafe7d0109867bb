// Package cli wires the secmatrix commands.
package cli

import (
	"secmatrix/internal/config"
	"secmatrix/internal/csvstore"
	"secmatrix/internal/logging"
	"secmatrix/internal/matrix"
	"secmatrix/internal/metrics"

	"github.com/spf13/cobra"
)

// state is filled by the root command before any subcommand runs.
type state struct {
	cfg *config.Config
}

func (s *state) matrix(m *metrics.Metrics) *matrix.Service {
	return matrix.New(csvstore.New(s.cfg.DataDir, s.cfg.Sources), matrix.WithMetrics(m))
}

func NewRootCmd() *cobra.Command {
	st := &state{}

	cmd := &cobra.Command{
		Use:           "secmatrix",
		Short:         "Security matrices dashboard (MAGERIT, ISO 27001 Anexo A, COBIT, NIST)",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logging.Setup(cfg.LogLevel, cfg.LogFormat)
			st.cfg = cfg
			return nil
		},
	}

	cmd.AddCommand(serveCmd(st))
	cmd.AddCommand(reportCmd(st))
	cmd.AddCommand(calcCmd())
	cmd.AddCommand(showCmd(st))
	cmd.AddCommand(hashPasswordCmd())
	return cmd
}
