package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// InsufficientStockResponse detalle estructurado de una falta de stock.
type InsufficientStockResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Subject   string `json:"subject"`
	Field     string `json:"field,omitempty"`
	Available string `json:"available"`
	Required  string `json:"required"`
}
