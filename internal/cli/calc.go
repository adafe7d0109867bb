package cli

import (
	"encoding/json"
	"fmt"

	"secmatrix/internal/risk"

	"github.com/spf13/cobra"
)

type calcOutput struct {
	risk.Result
	Level      string `json:"nivel"`
	Impact     string `json:"nivel_impacto"`
	Safeguard  string `json:"nivel_salvaguarda"`
	Expression string `json:"expresion"`
}

func calcCmd() *cobra.Command {
	var frequency, impact, safeguard float64
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute intrinsic and residual risk",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := risk.Compute(frequency, impact, safeguard)
			out := calcOutput{
				Result:    r,
				Level:     risk.ClassifyResidual(r.ResidualRisk).Label(),
				Impact:    risk.ClassifyImpact(impact).Label(),
				Safeguard: risk.ClassifySafeguard(safeguard).Label(),
				Expression: fmt.Sprintf("%s * %s = %s",
					risk.FormatNumber(frequency), risk.FormatNumber(impact), risk.FormatNumber(r.IntrinsicRisk)),
			}
			raw, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return nil
		},
	}
	cmd.Flags().Float64Var(&frequency, "frecuencia", 0, "Threat frequency")
	cmd.Flags().Float64Var(&impact, "impacto", 0, "Impact")
	cmd.Flags().Float64Var(&safeguard, "salvaguarda", 0, "Safeguard effectiveness in percent")
	return cmd
}
