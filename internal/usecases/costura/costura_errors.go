package costura

import (
	"errors"
	"fmt"
)

// Erros específicos do contexto de lotes de costura
var (
	// Erros de validação
	ErrJobIDRequired    = errors.New("id do lote é obrigatório")
	ErrJobNotFound      = errors.New("lote não encontrado")
	ErrLoteRequired     = errors.New("número do lote é obrigatório")
	ErrInvalidDimension = errors.New("dimensões e quantidade devem ser positivas")
	ErrInvalidField     = errors.New("campo não reconhecido")
	ErrInvalidRate      = errors.New("avaliação deve estar entre 1 e 10")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// CosturaError é um erro com contexto adicional de lotes
type CosturaError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	JobID   string // ID do lote envolvido (quando aplicável)
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *CosturaError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *CosturaError) Unwrap() error {
	return e.Err
}

// NewCosturaError cria um novo CosturaError
func NewCosturaError(err error, code string, details string) *CosturaError {
	return &CosturaError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewCosturaErrorWithJob cria um novo CosturaError com o lote envolvido
func NewCosturaErrorWithJob(err error, code string, jobID string, details string) *CosturaError {
	return &CosturaError{
		Err:     err,
		Code:    code,
		JobID:   jobID,
		Details: details,
	}
}
