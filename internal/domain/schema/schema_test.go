package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omegapos/omega-sync-api/internal/domain"
	"github.com/omegapos/omega-sync-api/internal/domain/schema"
)

// ──────────────────────────────────────────────────────────────────────────────
// Registry
// ──────────────────────────────────────────────────────────────────────────────

func TestLookup_EntidadesRegistradas(t *testing.T) {
	for _, kind := range schema.Kinds() {
		def, err := schema.Lookup(kind)
		require.NoError(t, err, "la entidad %q debe estar registrada", kind)
		assert.Equal(t, kind, def.Kind)
		assert.NotEmpty(t, def.Table)
		assert.NotEmpty(t, def.PrimaryKey(), "toda entidad debe declarar clave primaria")
	}
}

func TestLookup_EntidadDesconocida(t *testing.T) {
	_, err := schema.Lookup("invoices")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownEntity)
}

func TestLookup_SoloMastersTieneFiltro(t *testing.T) {
	for _, kind := range schema.Kinds() {
		def, err := schema.Lookup(kind)
		require.NoError(t, err)
		if kind == "masters" {
			require.NotNil(t, def.Scope)
			assert.Equal(t, "super_code", def.Scope.Column)
			assert.Equal(t, "DEBTO", def.Scope.Value)
		} else {
			assert.Nil(t, def.Scope, "%q no debe tener filtro de alcance", kind)
		}
	}
}

func TestDefinition_ColumnasOrdenadas(t *testing.T) {
	def, err := schema.Lookup("products")
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"code", "name", "product", "brand", "unit", "taxcode", "defect", "company"},
		def.Columns())
	assert.Equal(t, "code", def.PrimaryKey())
}

// ──────────────────────────────────────────────────────────────────────────────
// BuildRow — coerción y rechazo por registro
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildRow_ProductoValido(t *testing.T) {
	def, _ := schema.Lookup("products")
	row, rerr := def.BuildRow(map[string]any{
		"code": "P1",
		"name": "Widget",
		"unit": "EA",
	})
	require.Nil(t, rerr)
	require.Len(t, row, 8)
	assert.Equal(t, "P1", row[0])
	assert.Equal(t, "Widget", row[1])
	assert.Nil(t, row[2], "campo ausente no requerido queda en NULL")
	assert.Equal(t, "EA", row[4])
}

func TestBuildRow_ClavePrimariaVaciaRechaza(t *testing.T) {
	def, _ := schema.Lookup("products")

	casos := []map[string]any{
		{"name": "sin code"},
		{"code": "", "name": "code vacío"},
		{"code": "   ", "name": "code en blanco"},
		{"code": nil, "name": "code nulo"},
	}
	for _, rec := range casos {
		row, rerr := def.BuildRow(rec)
		assert.Nil(t, row)
		require.NotNil(t, rerr, "registro sin clave debe rechazarse: %v", rec)
		assert.Equal(t, "code", rerr.Field)
	}
}

func TestBuildRow_CodigoNumericoSeConvierteATexto(t *testing.T) {
	// encoding/json entrega números como float64; códigos numéricos son válidos.
	def, _ := schema.Lookup("products")
	row, rerr := def.BuildRow(map[string]any{"code": float64(1001), "name": "num"})
	require.Nil(t, rerr)
	assert.Equal(t, "1001", row[0])
}

func TestBuildRow_ExcedeLongitudRechaza(t *testing.T) {
	def, _ := schema.Lookup("products")
	largo := make([]byte, 31)
	for i := range largo {
		largo[i] = 'x'
	}
	_, rerr := def.BuildRow(map[string]any{"code": string(largo)})
	require.NotNil(t, rerr)
	assert.Equal(t, "code", rerr.Field)
}

func TestBuildRow_LongitudCuentaCaracteresNoBytes(t *testing.T) {
	// varchar(n) cuenta caracteres; 30 letras con tilde ocupan 60 bytes
	// pero siguen cabiendo en code varchar(30).
	def, _ := schema.Lookup("products")
	tildes := ""
	for i := 0; i < 30; i++ {
		tildes += "á"
	}
	row, rerr := def.BuildRow(map[string]any{"code": tildes, "name": "acentos"})
	require.Nil(t, rerr)
	assert.Equal(t, tildes, row[0])

	_, rerr = def.BuildRow(map[string]any{"code": tildes + "á"})
	require.NotNil(t, rerr, "31 caracteres sí excede el límite")
	assert.Equal(t, "code", rerr.Field)
}

func TestBuildRow_JSONNumberSeCoerciona(t *testing.T) {
	// Un decoder con UseNumber entrega json.Number en vez de float64;
	// tanto texto como decimal deben aceptarlo.
	def, _ := schema.Lookup("productbatches")
	row, rerr := def.BuildRow(map[string]any{
		"productcode": json.Number("1001"),
		"cost":        json.Number("12.500"),
	})
	require.Nil(t, rerr)
	assert.Equal(t, "1001", row[0])

	cost, ok := row[1].(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, cost.Equal(decimal.RequireFromString("12.5")))

	_, rerr = def.BuildRow(map[string]any{
		"productcode": "P1",
		"cost":        json.Number("doce"),
	})
	require.NotNil(t, rerr)
	assert.Equal(t, "cost", rerr.Field)
}

func TestBuildRow_DecimalesDeProductBatch(t *testing.T) {
	def, _ := schema.Lookup("productbatches")
	row, rerr := def.BuildRow(map[string]any{
		"productcode": "P1",
		"cost":        "12.500",
		"salesprice":  15.75,
		"bmrp":        20,
		"barcode":     "750123",
		"secondprice": "",
	})
	require.Nil(t, rerr)

	cost, ok := row[1].(decimal.Decimal)
	require.True(t, ok, "cost debe coercionarse a decimal")
	assert.True(t, cost.Equal(decimal.RequireFromString("12.5")))

	sales, ok := row[2].(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, sales.Equal(decimal.RequireFromString("15.75")))

	bmrp, ok := row[3].(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, bmrp.Equal(decimal.NewFromInt(20)))

	assert.Equal(t, "750123", row[4])
	assert.Nil(t, row[5], "string vacío en decimal se trata como NULL")
}

func TestBuildRow_DecimalInvalidoRechaza(t *testing.T) {
	def, _ := schema.Lookup("productbatches")
	_, rerr := def.BuildRow(map[string]any{"productcode": "P1", "cost": "doce"})
	require.NotNil(t, rerr)
	assert.Equal(t, "cost", rerr.Field)
	assert.Equal(t, "P1", rerr.Key, "el rechazo debe conservar la clave para el log")
}

func TestBuildRow_MasterRequiereName(t *testing.T) {
	def, _ := schema.Lookup("masters")
	_, rerr := def.BuildRow(map[string]any{"code": "C001"})
	require.NotNil(t, rerr)
	assert.Equal(t, "name", rerr.Field)
}

// ──────────────────────────────────────────────────────────────────────────────
// Guardia de alcance (masters)
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildRow_MasterFueraDeAlcanceRechaza(t *testing.T) {
	def, _ := schema.Lookup("masters")
	_, rerr := def.BuildRow(map[string]any{
		"code": "C001", "name": "Acreedor", "super_code": "CREDI",
	})
	require.NotNil(t, rerr)
	assert.Equal(t, "super_code", rerr.Field)
}

func TestBuildRow_MasterSinSuperCodeAsumeDebto(t *testing.T) {
	def, _ := schema.Lookup("masters")
	row, rerr := def.BuildRow(map[string]any{"code": "C001", "name": "Deudor"})
	require.Nil(t, rerr)
	assert.Equal(t, "DEBTO", row[2], "super_code omitido toma el valor del filtro")
}

func TestBuildRow_UserRequierePass(t *testing.T) {
	def, _ := schema.Lookup("users")
	_, rerr := def.BuildRow(map[string]any{"id": "admin", "role": "admin"})
	require.NotNil(t, rerr)
	assert.Equal(t, "pass", rerr.Field)

	row, rerr := def.BuildRow(map[string]any{"id": "admin", "pass": "s3creto", "role": "admin"})
	require.Nil(t, rerr)
	assert.Equal(t, []any{"admin", "s3creto", "admin"}, row)
}
