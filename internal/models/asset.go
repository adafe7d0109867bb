package models

// Column positions of a MAGERIT asset row.
const (
	ColAssetNumber = iota
	ColAssetType
	ColAssetName
	ColThreat
	ColEconomicValue
	ColFrequency
	ColImpact
	ColIntrinsicRisk // "f * i = r" expression text
	ColSafeguard
	ColSafeguardLevel // "Alto: 60%"
	ColResidualRisk   // "r - s = rr (Riesgo ...)" expression text

	AssetColumns
)

// Asset is a typed view over one MAGERIT data row. The CSV keeps every
// field as display text, so no numeric parsing happens here.
type Asset struct {
	Number         string `json:"numero"`
	AssetType      string `json:"tipo_activo"`
	Name           string `json:"activo"`
	Threat         string `json:"amenaza"`
	EconomicValue  string `json:"valor_economico"`
	Frequency      string `json:"frecuencia"`
	Impact         string `json:"impacto"`
	IntrinsicRisk  string `json:"riesgo_intrinseco"`
	Safeguard      string `json:"salvaguarda"`
	SafeguardLevel string `json:"valor_salvaguarda"`
	ResidualRisk   string `json:"riesgo_residual"`
}

// AssetFromRow maps a row onto an Asset; missing trailing cells stay empty.
func AssetFromRow(row []string) Asset {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	return Asset{
		Number:         cell(ColAssetNumber),
		AssetType:      cell(ColAssetType),
		Name:           cell(ColAssetName),
		Threat:         cell(ColThreat),
		EconomicValue:  cell(ColEconomicValue),
		Frequency:      cell(ColFrequency),
		Impact:         cell(ColImpact),
		IntrinsicRisk:  cell(ColIntrinsicRisk),
		Safeguard:      cell(ColSafeguard),
		SafeguardLevel: cell(ColSafeguardLevel),
		ResidualRisk:   cell(ColResidualRisk),
	}
}

// Row returns the asset in column order.
func (a Asset) Row() []string {
	return []string{
		a.Number,
		a.AssetType,
		a.Name,
		a.Threat,
		a.EconomicValue,
		a.Frequency,
		a.Impact,
		a.IntrinsicRisk,
		a.Safeguard,
		a.SafeguardLevel,
		a.ResidualRisk,
	}
}
