package expedicao

import (
	"errors"
	"fmt"

	"github.com/lrodrigues/costura-backoffice-api/internal/domain"
)

// Erros específicos do contexto de expedição
var (
	// Erros de validação
	ErrOrderIDRequired = errors.New("código de barras é obrigatório")
	ErrInvalidMesa     = errors.New("mesa inválida")
	ErrInvalidSeller   = errors.New("canal de venda inválido")
	ErrFutureDate      = errors.New("não é possível encerrar uma data futura")
	ErrInvalidMetaMode = errors.New("modo de configuração de meta inválido")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// DuplicateError sinaliza bipagem repetida. Carrega o registro original para
// o operador da mesa ver onde e quando o pacote já foi contado.
type DuplicateError struct {
	Existing *domain.ExpedicaoRegistro
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("pacote %s já registrado na mesa %s", e.Existing.OrderID, e.Existing.MesaID)
}

// AlreadyClosedError sinaliza encerramento repetido, carregando o
// encerramento existente.
type AlreadyClosedError struct {
	Existing *domain.ExpedicaoDiaEncerrado
}

func (e *AlreadyClosedError) Error() string {
	return fmt.Sprintf("dia %s já encerrado", e.Existing.Data.Format("2006-01-02"))
}

// ExpedicaoError é um erro com contexto adicional de expedição
type ExpedicaoError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ExpedicaoError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ExpedicaoError) Unwrap() error {
	return e.Err
}

// NewExpedicaoError cria um novo ExpedicaoError
func NewExpedicaoError(err error, code string, details string) *ExpedicaoError {
	return &ExpedicaoError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
