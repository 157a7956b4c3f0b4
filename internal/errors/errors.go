package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError é a interface central de todos os erros customizados da lib.
// Permite que o código chamador acesse a Categoria do erro e, quando houver,
// o status HTTP recebido do backend.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "API_ERROR", "NETWORK_ERROR")
	Status() int      // Status HTTP recebido (0 quando não há resposta HTTP)
	Unwrap() error    // Permite encapsular erros subjacentes
}

// --- Erros de resposta do backend ---

// ApiError representa uma resposta não-2xx do backend. Carrega a mensagem
// já extraída (o backend tem pelo menos quatro formatos de erro), o status
// e o corpo bruto para diagnóstico.
type ApiError struct {
	Message    string
	StatusCode int
	Body       []byte
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("erro da API (%d): %s", e.StatusCode, e.Message)
}
func (e *ApiError) Category() string { return "API_ERROR" }
func (e *ApiError) Status() int      { return e.StatusCode }
func (e *ApiError) Unwrap() error    { return nil }

// NewApiError cria um erro de resposta da API. Se a mensagem vier vazia,
// cai para o texto padrão do status HTTP.
func NewApiError(message string, status int, body []byte) *ApiError {
	if message == "" {
		message = http.StatusText(status)
	}
	return &ApiError{Message: message, StatusCode: status, Body: body}
}

// IsUnauthorized informa se o erro é um 401 do backend. O 401 do
// profile-check é um estado normal ("não logado"), não uma falha.
func IsUnauthorized(err error) bool {
	var apiErr *ApiError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// --- Erros de transporte ---

// NetworkError representa uma falha de rede onde nenhuma resposta HTTP
// chegou. Distinto do ApiError: não existe status nem corpo.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("falha de rede em %s: %v", e.Op, e.Err)
}
func (e *NetworkError) Category() string { return "NETWORK_ERROR" }
func (e *NetworkError) Status() int      { return 0 }
func (e *NetworkError) Unwrap() error    { return e.Err }

// NewNetworkError cria um erro de transporte encapsulando o erro original.
func NewNetworkError(op string, err error) *NetworkError {
	return &NetworkError{Op: op, Err: err}
}

// --- Erros de validação de forma ---

// ShapeError indica que a entrada do validador não era um objeto
// parseável. O item é descartado do lote; o lote nunca é abortado.
type ShapeError struct {
	Msg string
}

func (e *ShapeError) Error() string    { return fmt.Sprintf("forma inválida: %s", e.Msg) }
func (e *ShapeError) Category() string { return "SHAPE_ERROR" }
func (e *ShapeError) Status() int      { return 0 }
func (e *ShapeError) Unwrap() error    { return nil }

// NewShapeError cria um erro de forma para entrada não-objeto.
func NewShapeError(msg string) *ShapeError {
	return &ShapeError{Msg: msg}
}

// --- Erros de entrada do próprio cliente ---

// ValidationError representa entrada inválida detectada antes de ir à rede.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("erro de validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) Status() int      { return 0 }
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação local.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

// --- Erros do serviço de imagens (terceiro) ---

// UploadError representa falha do host externo de imagens. Surfaceado
// separado do ApiError porque não é o backend primário.
type UploadError struct {
	Msg string
	Err error
}

func (e *UploadError) Error() string    { return fmt.Sprintf("erro do serviço de imagens: %s", e.Msg) }
func (e *UploadError) Category() string { return "UPLOAD_ERROR" }
func (e *UploadError) Status() int      { return 0 }
func (e *UploadError) Unwrap() error    { return e.Err }

// NewUploadError cria um erro do serviço externo de imagens.
func NewUploadError(msg string, err error) *UploadError {
	return &UploadError{Msg: msg, Err: err}
}
