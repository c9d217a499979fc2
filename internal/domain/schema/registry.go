package schema

import (
	"fmt"

	"github.com/omegapos/omega-sync-api/internal/domain"
)

// Tablas del ERP origen. El esquema es externo: este servicio no crea ni
// migra estas tablas, solo las reemplaza por lotes.
const (
	TableMaster       = "acc_master"
	TableProduct      = "acc_product"
	TableProductBatch = "acc_productbatch"
	TableUsers        = "acc_users"
)

// SuperCodeDebtors categoría de masters que maneja este servicio.
// Filas con otro super_code (ej. "CREDI") son invisibles para todas las operaciones.
const SuperCodeDebtors = "DEBTO"

var registry = map[string]Definition{
	"products": {
		Kind:  "products",
		Table: TableProduct,
		Fields: []FieldSpec{
			{Name: "code", Kind: FieldText, Required: true, PrimaryKey: true, MaxLen: 30},
			{Name: "name", Kind: FieldText, MaxLen: 200},
			{Name: "product", Kind: FieldText, MaxLen: 30},
			{Name: "brand", Kind: FieldText, MaxLen: 30},
			{Name: "unit", Kind: FieldText, MaxLen: 10},
			{Name: "taxcode", Kind: FieldText, MaxLen: 5},
			{Name: "defect", Kind: FieldText, MaxLen: 50},
			{Name: "company", Kind: FieldText, MaxLen: 30},
		},
	},
	"productbatches": {
		Kind:  "productbatches",
		Table: TableProductBatch,
		Fields: []FieldSpec{
			// Una fila por producto: snapshot de precios, no lote real.
			{Name: "productcode", Kind: FieldText, Required: true, PrimaryKey: true, MaxLen: 30},
			{Name: "cost", Kind: FieldDecimal},
			{Name: "salesprice", Kind: FieldDecimal},
			{Name: "bmrp", Kind: FieldDecimal},
			{Name: "barcode", Kind: FieldText, MaxLen: 35},
			{Name: "secondprice", Kind: FieldDecimal},
			{Name: "thirdprice", Kind: FieldDecimal},
		},
	},
	"masters": {
		Kind:  "masters",
		Table: TableMaster,
		Fields: []FieldSpec{
			{Name: "code", Kind: FieldText, Required: true, PrimaryKey: true, MaxLen: 30},
			{Name: "name", Kind: FieldText, Required: true, MaxLen: 250},
			{Name: "super_code", Kind: FieldText, MaxLen: 5},
			{Name: "address", Kind: FieldText, MaxLen: 100},
			{Name: "phone", Kind: FieldText, MaxLen: 60},
			{Name: "phone2", Kind: FieldText, MaxLen: 60},
		},
		Scope: &ScopeFilter{Column: "super_code", Value: SuperCodeDebtors},
	},
	"users": {
		Kind:  "users",
		Table: TableUsers,
		Fields: []FieldSpec{
			{Name: "id", Kind: FieldText, Required: true, PrimaryKey: true, MaxLen: 30},
			{Name: "pass", Kind: FieldText, Required: true, MaxLen: 100},
			{Name: "role", Kind: FieldText, MaxLen: 30},
		},
	},
}

// Lookup devuelve la definición de una entidad sincronizable.
func Lookup(kind string) (Definition, error) {
	def, ok := registry[kind]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", domain.ErrUnknownEntity, kind)
	}
	return def, nil
}

// Kinds devuelve los identificadores de entidad registrados (orden estable).
func Kinds() []string {
	return []string{"products", "productbatches", "masters", "users"}
}
