package monitoring

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de monitoramento de links
var (
	// Erros de validação
	ErrLinkRequired  = errors.New("link é obrigatório")
	ErrSKURequired   = errors.New("sku é obrigatório")
	ErrInvalidStore  = errors.New("loja não suportada")
	ErrLinkNotFound  = errors.New("link não encontrado")
	ErrTagRequired   = errors.New("tag é obrigatória")
	ErrInvalidRating = errors.New("preço de referência inválido")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// MonitoringError é um erro com contexto adicional de monitoramento
type MonitoringError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	SKU     string // SKU envolvido (quando aplicável)
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *MonitoringError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *MonitoringError) Unwrap() error {
	return e.Err
}

// NewMonitoringError cria um novo MonitoringError
func NewMonitoringError(err error, code string, details string) *MonitoringError {
	return &MonitoringError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewMonitoringErrorWithSKU cria um novo MonitoringError com o SKU envolvido
func NewMonitoringErrorWithSKU(err error, code string, sku string, details string) *MonitoringError {
	return &MonitoringError{
		Err:     err,
		Code:    code,
		SKU:     sku,
		Details: details,
	}
}
