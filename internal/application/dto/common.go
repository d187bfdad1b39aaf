package dto

import "github.com/shopspring/decimal"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// NotDurableResponse cuerpo de 507: la operación se aplicó en memoria pero no se pudo guardar.
type NotDurableResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Durable bool   `json:"durable"`
	Result  any    `json:"result"`
}

// HealthResponse salida de /health. StorageBytes solo aparece si el almacén informa su tamaño.
type HealthResponse struct {
	Status       string           `json:"status"`
	Service      string           `json:"service"`
	StorageBytes *decimal.Decimal `json:"storageBytes,omitempty"`
	Error        string           `json:"error,omitempty"`
}
