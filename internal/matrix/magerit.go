package matrix

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"secmatrix/internal/csvstore"
	"secmatrix/internal/models"
	"secmatrix/internal/risk"

	"github.com/rs/zerolog/log"
)

// request keys accepted by UpdateAsset and the column each one overwrites
var updatableColumns = []struct {
	key string
	col int
}{
	{"valor_economico", models.ColEconomicValue},
	{"frecuencia", models.ColFrequency},
	{"impacto", models.ColImpact},
	{"salvaguarda", models.ColSafeguard},
	{"valor_salvaguarda", models.ColSafeguardLevel},
}

// UpdateAsset overwrites the given fields of the asset numbered n and, when
// frequency, impact and safeguard text all parse, rewrites both risk
// expressions. Unparseable numbers leave the previous risk text in place.
// Duplicate asset numbers are not detected; the first match is updated.
func (s *Service) UpdateAsset(n int, fields map[string]any) ([]string, error) {
	rows, start, err := s.readMagerit()
	if err != nil {
		return nil, err
	}

	key := strconv.Itoa(n)
	target := -1
	for i := start; i < len(rows); i++ {
		if len(rows[i]) > 0 && rows[i][0] == key {
			target = i
			break
		}
	}
	if target < 0 {
		return nil, fmt.Errorf("%w N° %d", ErrAssetNotFound, n)
	}

	row := rows[target]
	for len(row) < models.AssetColumns {
		row = append(row, "")
	}
	for _, u := range updatableColumns {
		if v, ok := fields[u.key]; ok {
			row[u.col] = cellText(v)
		}
	}

	if err := recalculate(row); err != nil {
		s.metrics.RecalculationSkipped()
		log.Warn().Err(err).Int("asset", n).Msg("risk recalculation skipped")
	}
	rows[target] = row

	if err := s.store.Write(models.SourceMagerit, rows); err != nil {
		return nil, err
	}

	log.Info().Int("asset", n).Int("fields", len(fields)).Msg("asset updated")
	return row, nil
}

func recalculate(row []string) error {
	f, err := risk.ParseDecimal(row[models.ColFrequency])
	if err != nil {
		return fmt.Errorf("frecuencia: %w", err)
	}
	i, err := risk.ParseDecimal(row[models.ColImpact])
	if err != nil {
		return fmt.Errorf("impacto: %w", err)
	}
	pct, err := safeguardPercent(row[models.ColSafeguardLevel])
	if err != nil {
		return fmt.Errorf("valor_salvaguarda: %w", err)
	}

	r := risk.Compute(f, i, pct)
	row[models.ColIntrinsicRisk] = intrinsicExpression(f, i, r)
	row[models.ColResidualRisk] = residualExpression(r, pct)
	return nil
}

// safeguardPercent extracts NN from "Label: NN%". Text without a percent
// sign means no safeguard.
func safeguardPercent(text string) (float64, error) {
	if !strings.Contains(text, "%") {
		return 0, nil
	}
	parts := strings.Split(text, ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("%q has no level label", text)
	}
	return risk.ParseDecimal(strings.ReplaceAll(parts[1], "%", ""))
}

// AppendAsset computes the risk of a new asset, numbers it after the highest
// existing asset number and inserts it at the end of the first contiguous
// block of data rows.
func (s *Service) AppendAsset(fields map[string]any) ([]string, error) {
	if err := ValidateNewAsset(fields); err != nil {
		return nil, err
	}

	f, err := numberField(fields, "frecuencia")
	if err != nil {
		return nil, err
	}
	i, err := numberField(fields, "impacto")
	if err != nil {
		return nil, err
	}
	pct, err := numberField(fields, "valor_salvaguarda_pct")
	if err != nil {
		return nil, err
	}

	rows, start, err := s.readMagerit()
	if err != nil {
		return nil, err
	}

	r := risk.Compute(f, i, pct)
	n := NextAssetNumber(rows[start:])

	freqText := risk.FormatNumber(f)
	if v, ok := fields["frecuencia_texto"]; ok && v != nil {
		freqText = cellText(v)
	}

	asset := models.Asset{
		Number:         strconv.Itoa(n),
		AssetType:      cellText(fields["tipo_activo"]),
		Name:           cellText(fields["activo"]),
		Threat:         cellText(fields["amenaza"]),
		EconomicValue:  cellText(fields["valor_economico"]),
		Frequency:      freqText,
		Impact:         commaDecimals(risk.ClassifyImpact(i).Label() + ": " + risk.FormatNumber(i)),
		IntrinsicRisk:  commaDecimals(intrinsicExpression(f, i, r)),
		Safeguard:      cellText(fields["salvaguarda"]),
		SafeguardLevel: risk.ClassifySafeguard(pct).Label() + ": " + risk.FormatFixed(pct, 0) + "%",
		ResidualRisk:   commaDecimals(residualExpression(r, pct)),
	}
	row := asset.Row()

	rows = slices.Insert(rows, InsertionIndex(rows, start), row)
	if err := s.store.Write(models.SourceMagerit, rows); err != nil {
		return nil, err
	}

	log.Info().Int("asset", n).Str("name", asset.Name).Float64("residual_risk", r.ResidualRisk).Msg("asset added")
	return row, nil
}

// NextAssetNumber is one more than the largest all-digit first cell in rows.
func NextAssetNumber(rows [][]string) int {
	highest := 0
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		id := strings.TrimSpace(row[0])
		if id == "" || strings.TrimLeft(id, "0123456789") != "" {
			continue
		}
		if n, err := strconv.Atoi(id); err == nil && n > highest {
			highest = n
		}
	}
	return highest + 1
}

// InsertionIndex returns the position right after the contiguous run of keyed
// rows that begins at start.
func InsertionIndex(rows [][]string, start int) int {
	idx := start
	for i := start; i < len(rows); i++ {
		if !csvstore.HasKey(rows[i]) {
			break
		}
		idx = i + 1
	}
	return idx
}

// readMagerit returns the MAGERIT rows and the index of the first row after
// the header.
func (s *Service) readMagerit() ([][]string, int, error) {
	src, err := s.store.Source(models.SourceMagerit)
	if err != nil {
		return nil, 0, err
	}
	rows, err := s.store.Read(models.SourceMagerit)
	if err != nil {
		return nil, 0, err
	}
	idx, ok := csvstore.LocateHeader(rows, src.Sentinel)
	if !ok {
		return nil, 0, fmt.Errorf("no se encontraron los encabezados en MAGERIT: %w", csvstore.ErrHeaderNotFound)
	}
	return rows, idx + 1, nil
}

func intrinsicExpression(f, i float64, r risk.Result) string {
	return fmt.Sprintf("%s * %s = %s", risk.FormatNumber(f), risk.FormatNumber(i), risk.FormatNumber(r.IntrinsicRisk))
}

func residualExpression(r risk.Result, pct float64) string {
	return fmt.Sprintf("%s - %s = %s (Riesgo %s)",
		risk.FormatNumber(r.IntrinsicRisk),
		risk.FormatFixed(r.IntrinsicRisk*pct/100, 2),
		risk.FormatNumber(r.ResidualRisk),
		risk.ClassifyResidual(r.ResidualRisk).Label(),
	)
}

func commaDecimals(s string) string {
	return strings.ReplaceAll(s, ".", ",")
}

func numberField(fields map[string]any, key string) (float64, error) {
	v, err := toFloat(fields[key])
	if err != nil {
		return 0, &ValidationError{Field: key, Reason: err.Error()}
	}
	return v, nil
}

// toFloat reads a request value as a dot-decimal number. Comma decimals are
// only tolerated in cells already stored in the CSV.
func toFloat(v any) (float64, error) {
	var text string
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case json.Number:
		text = x.String()
	case string:
		text = strings.TrimSpace(x)
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", text)
	}
	return f, nil
}

// cellText is the text written to the CSV for a JSON request value. JSON
// numbers keep their literal form when decoded with UseNumber.
func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(x)
	}
}
