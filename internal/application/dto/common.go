package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusResponse estado de conectividad del proceso.
type StatusResponse struct {
	Online bool `json:"online"`
}

// SetStatusRequest entrada para marcar el proceso online/offline.
type SetStatusRequest struct {
	Online bool `json:"online"`
}
