package cli

import (
	"encoding/json"
	"fmt"

	"secmatrix/internal/models"

	"github.com/spf13/cobra"
)

func showCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:       "show <source>",
		Short:     "Print a matrix snapshot as JSON",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"magerit", "anexo_a", "cobit", "nist"},
		RunE: func(cmd *cobra.Command, args []string) error {
			name, ok := models.ParseSourceName(args[0])
			if !ok {
				return fmt.Errorf("unknown source %q", args[0])
			}
			snap, err := st.matrix(nil).Snapshot(name)
			if err != nil {
				return err
			}
			raw, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal snapshot: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return nil
		},
	}
}
