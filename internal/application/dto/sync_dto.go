package dto

// Record registro sin tipar tal como llega en el payload JSON.
// La coerción a fila tipada la hace schema.Definition.BuildRow.
type Record map[string]any

// SyncResponse contrato estable de los endpoints de sincronización,
// idéntico para toda entidad. Skipped cuenta los registros rechazados
// por validación (el detalle por clave va al log, no al caller).
type SyncResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
	Skipped int    `json:"skipped"`
	Method  string `json:"method"`
}

// ClearResponse respuesta de los endpoints de borrado.
type ClearResponse struct {
	Message string `json:"message"`
	Deleted int    `json:"deleted"`
}
