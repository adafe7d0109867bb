package risk

// Level is a named tier. String returns the English name used by the API;
// Label returns the Spanish text written into the matrix files.
type Level struct {
	name  string
	label string
}

func (l Level) String() string { return l.name }
func (l Level) Label() string  { return l.label }

func (l Level) MarshalText() ([]byte, error) { return []byte(l.name), nil }

var (
	ResidualLow        = Level{"Low", "Bajo"}
	ResidualMediumLow  = Level{"Medium-Low", "Medio-Bajo"}
	ResidualMediumHigh = Level{"Medium-High", "Medio-Alto"}
	ResidualHigh       = Level{"High", "Alto"}

	ImpactLow      = Level{"Low", "Bajo"}
	ImpactNormal   = Level{"Normal", "Normal"}
	ImpactHigh     = Level{"High", "Alto"}
	ImpactVeryHigh = Level{"Very High", "Muy Alto"}

	SafeguardLow      = Level{"Low", "Bajo"}
	SafeguardNormal   = Level{"Normal", "Normal"}
	SafeguardHigh     = Level{"High", "Alto"}
	SafeguardVeryHigh = Level{"Very High", "Muy alto"}
)

func ClassifyResidual(v float64) Level {
	switch {
	case v < 2:
		return ResidualLow
	case v < 3:
		return ResidualMediumLow
	case v < 4:
		return ResidualMediumHigh
	default:
		return ResidualHigh
	}
}

func ClassifyImpact(v float64) Level {
	switch {
	case v <= 1.5:
		return ImpactLow
	case v <= 2.5:
		return ImpactNormal
	case v <= 3.5:
		return ImpactHigh
	default:
		return ImpactVeryHigh
	}
}

func ClassifySafeguard(pct float64) Level {
	switch {
	case pct >= 80:
		return SafeguardVeryHigh
	case pct >= 60:
		return SafeguardHigh
	case pct >= 40:
		return SafeguardNormal
	default:
		return SafeguardLow
	}
}
