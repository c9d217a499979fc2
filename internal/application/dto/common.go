package dto

// ErrorResponse cuerpo de error HTTP con código estable.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LegacyErrorResponse cuerpo de error de los endpoints de sincronización.
// El cliente ERP existente solo entiende {"error": "..."}.
type LegacyErrorResponse struct {
	Error string `json:"error"`
}
