package matrix

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrAssetNotFound = errors.New("no se encontró el activo")

// ValidationError names the request field that was missing or unusable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return "Campo requerido faltante: " + e.Field
	}
	return fmt.Sprintf("Campo %s inválido: %s", e.Field, e.Reason)
}

// RequiredAssetFields must all be present and non-empty to append an asset.
var RequiredAssetFields = []string{
	"tipo_activo",
	"activo",
	"amenaza",
	"valor_economico",
	"frecuencia",
	"impacto",
	"salvaguarda",
	"valor_salvaguarda_pct",
}

// ValidateNewAsset reports the first required field that is absent or empty.
// Zero numbers and empty strings count as empty.
func ValidateNewAsset(fields map[string]any) error {
	for _, name := range RequiredAssetFields {
		if !truthy(fields[name]) {
			return &ValidationError{Field: name}
		}
	}
	return nil
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case json.Number:
		f, err := x.Float64()
		return err != nil || f != 0
	case float64:
		return x != 0
	case int:
		return x != 0
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		return true
	}
}
