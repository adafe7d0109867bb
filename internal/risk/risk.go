// Package risk implements the MAGERIT risk arithmetic used by the matrix:
//
//	intrinsic = frequency * impact
//	residual  = intrinsic - intrinsic*safeguard/100
//
// Results are rounded half-to-even to two decimals. Inputs are not range
// checked; out-of-range values flow through the formulas unchanged.
package risk

import "strconv"

type Result struct {
	IntrinsicRisk float64 `json:"riesgo_intrinseco"`
	ResidualRisk  float64 `json:"riesgo_residual"`
}

func Compute(frequency, impact, safeguardPct float64) Result {
	intrinsic := frequency * impact
	mitigated := SafeguardValue(intrinsic, safeguardPct)
	return Result{
		IntrinsicRisk: Round2(intrinsic),
		ResidualRisk:  Round2(intrinsic - mitigated),
	}
}

// SafeguardValue is the share of intrinsic risk removed by the safeguard.
func SafeguardValue(intrinsic, safeguardPct float64) float64 {
	return intrinsic * (safeguardPct / 100)
}

// Round2 rounds the exact binary value of v to two decimals, ties to even.
func Round2(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return r
}
