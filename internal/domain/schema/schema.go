// Package schema define el registro estático de entidades sincronizables:
// tabla destino, columnas ordenadas con su tipo, y filtro de alcance opcional.
// El Bulk Loader lo consume de forma genérica, sin un loader por entidad.
package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// FieldKind tipo declarado de una columna.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldDecimal
)

// FieldSpec describe una columna de la tabla destino y su regla de coerción.
type FieldSpec struct {
	Name       string    // nombre de la columna en la tabla
	JSONKey    string    // clave en el payload (por defecto igual a Name)
	Kind       FieldKind
	Required   bool // nil o vacío rechaza el registro completo
	PrimaryKey bool
	MaxLen     int // 0 = sin límite; excedido rechaza el registro
}

// ScopeFilter restringe todas las operaciones de una entidad a un sub-conjunto
// de filas (columna = valor). Solo masters lo usa (super_code = "DEBTO").
type ScopeFilter struct {
	Column string
	Value  string
}

// Definition describe una entidad sincronizable completa.
type Definition struct {
	Kind   string // identificador externo: products, masters, ...
	Table  string
	Fields []FieldSpec
	Scope  *ScopeFilter
}

// Columns devuelve los nombres de columna en orden de declaración.
func (d Definition) Columns() []string {
	cols := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		cols[i] = f.Name
	}
	return cols
}

// PrimaryKey devuelve la columna marcada como clave primaria.
func (d Definition) PrimaryKey() string {
	for _, f := range d.Fields {
		if f.PrimaryKey {
			return f.Name
		}
	}
	return ""
}

// RowError razón estructurada por la que un registro fue rechazado.
// No aborta el lote: el registro se omite y se contabiliza.
type RowError struct {
	Key    string // valor de la clave primaria si se pudo extraer
	Field  string
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("registro rechazado (key=%q, campo=%q): %s", e.Key, e.Field, e.Reason)
}

// BuildRow intenta construir una fila tipada (valores ordenados por columna)
// a partir de un registro sin tipar. Todo-o-nada: cualquier campo inválido
// rechaza el registro completo, nunca se inserta una fila parcial.
func (d Definition) BuildRow(rec map[string]any) ([]any, *RowError) {
	key := d.recordKey(rec)
	row := make([]any, len(d.Fields))

	for i, f := range d.Fields {
		raw, present := rec[f.jsonKey()]

		if f.PrimaryKey {
			s, err := coerceText(raw)
			if err != nil || s == nil || strings.TrimSpace(*s) == "" {
				return nil, &RowError{Key: key, Field: f.Name, Reason: "clave primaria nula o vacía"}
			}
			if exceedsMaxLen(*s, f.MaxLen) {
				return nil, &RowError{Key: key, Field: f.Name, Reason: "excede longitud máxima"}
			}
			row[i] = *s
			continue
		}

		if !present || raw == nil {
			if f.Required {
				return nil, &RowError{Key: key, Field: f.Name, Reason: "campo requerido ausente"}
			}
			row[i] = nil
			continue
		}

		switch f.Kind {
		case FieldText:
			s, err := coerceText(raw)
			if err != nil {
				return nil, &RowError{Key: key, Field: f.Name, Reason: err.Error()}
			}
			if s == nil || *s == "" {
				if f.Required {
					return nil, &RowError{Key: key, Field: f.Name, Reason: "campo requerido vacío"}
				}
				row[i] = nil
				continue
			}
			if exceedsMaxLen(*s, f.MaxLen) {
				return nil, &RowError{Key: key, Field: f.Name, Reason: "excede longitud máxima"}
			}
			row[i] = *s
		case FieldDecimal:
			dec, err := coerceDecimal(raw)
			if err != nil {
				return nil, &RowError{Key: key, Field: f.Name, Reason: err.Error()}
			}
			if dec == nil {
				row[i] = nil
				continue
			}
			row[i] = *dec
		default:
			return nil, &RowError{Key: key, Field: f.Name, Reason: "tipo de campo desconocido"}
		}
	}

	// Guardia de alcance: una entidad con filtro nunca escribe fuera de él.
	// Si el payload omite la columna se asume el valor del filtro.
	if d.Scope != nil {
		if err := d.applyScope(row, key); err != nil {
			return nil, err
		}
	}

	return row, nil
}

func (d Definition) applyScope(row []any, key string) *RowError {
	for i, f := range d.Fields {
		if f.Name != d.Scope.Column {
			continue
		}
		switch v := row[i].(type) {
		case nil:
			row[i] = d.Scope.Value
		case string:
			if v != d.Scope.Value {
				return &RowError{Key: key, Field: f.Name, Reason: "fuera del alcance " + d.Scope.Column + "=" + d.Scope.Value}
			}
		}
		return nil
	}
	return nil
}

// recordKey extrae la clave primaria del payload para logging; "" si no se puede.
func (d Definition) recordKey(rec map[string]any) string {
	for _, f := range d.Fields {
		if !f.PrimaryKey {
			continue
		}
		if s, err := coerceText(rec[f.jsonKey()]); err == nil && s != nil {
			return strings.TrimSpace(*s)
		}
	}
	return ""
}

// exceedsMaxLen compara en caracteres, no en bytes: los varchar(n) de las
// tablas destino cuentan caracteres y el origen envía texto con tildes.
func exceedsMaxLen(s string, max int) bool {
	return max > 0 && utf8.RuneCountInString(s) > max
}

func (f FieldSpec) jsonKey() string {
	if f.JSONKey != "" {
		return f.JSONKey
	}
	return f.Name
}

// coerceText acepta string o número (el cliente a veces envía códigos numéricos).
// Devuelve nil para valores ausentes.
func coerceText(raw any) (*string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return &v, nil
	case json.Number:
		s := v.String()
		return &s, nil
	case float64:
		// encoding/json decodifica todo número JSON como float64
		s := strconv.FormatFloat(v, 'f', -1, 64)
		return &s, nil
	case int:
		s := strconv.Itoa(v)
		return &s, nil
	case int64:
		s := strconv.FormatInt(v, 10)
		return &s, nil
	default:
		return nil, fmt.Errorf("no es texto: %T", raw)
	}
}

// coerceDecimal acepta string o número y construye un decimal exacto.
// String vacío se trata como nulo (el origen exporta celdas vacías así).
func coerceDecimal(raw any) (*decimal.Decimal, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("no es decimal: %q", v)
		}
		return &d, nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return nil, fmt.Errorf("no es decimal: %q", v.String())
		}
		return &d, nil
	case float64:
		d := decimal.NewFromFloat(v)
		return &d, nil
	case int:
		d := decimal.NewFromInt(int64(v))
		return &d, nil
	case int64:
		d := decimal.NewFromInt(v)
		return &d, nil
	default:
		return nil, fmt.Errorf("no es decimal: %T", raw)
	}
}
