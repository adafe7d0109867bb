package cli

import (
	"fmt"

	"secmatrix/internal/database"
	"secmatrix/internal/handlers"
	"secmatrix/internal/metrics"
	"secmatrix/internal/models"
	"secmatrix/internal/server"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func serveCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := st.cfg
			m := metrics.New()

			audit := database.NewAuditTrail(nil)
			if cfg.DBDSN != "" {
				db, err := database.Open(cfg.DBDSN)
				if err != nil {
					return err
				}
				audit = database.NewAuditTrail(db)
			}

			h := handlers.New(handlers.Deps{
				Matrix:  st.matrix(m),
				Audit:   audit,
				Metrics: m,
				Editor: models.Editor{
					Username:     cfg.EditorUsername,
					PasswordHash: cfg.EditorPasswordHash,
					Role:         models.RoleEditor,
				},
				ProjectName: cfg.ProjectName,
			})

			r, err := server.NewRouter(cfg, h, m)
			if err != nil {
				return err
			}

			addr := fmt.Sprintf(":%s", cfg.ServerPort)
			log.Info().
				Str("addr", addr).
				Str("data_dir", cfg.DataDir).
				Bool("editor_auth", cfg.EditorAuthEnabled()).
				Bool("audit", audit.Enabled()).
				Msg("starting server")
			if err := r.Run(addr); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
}
