package domain

import "time"

// Job é um lote de costura entregue a um faccionista. TotMetros e Orcamento
// são sempre derivados de (Larg, Compr, Qtd, Emenda) pela fórmula de custeio;
// nunca são aceitos de fora nem persistidos de forma independente dela.
type Job struct {
	ID                    string     `json:"id"`
	Lote                  string     `json:"lote"`
	Data                  time.Time  `json:"data"`
	Qtd                   float64    `json:"qtd"`
	Larg                  float64    `json:"larg"`
	Compr                 float64    `json:"compr"`
	Emenda                bool       `json:"emenda"`
	TotMetros             float64    `json:"totMetros"`
	Orcamento             float64    `json:"orcamento"`
	RecebidoConferido     bool       `json:"recebidoConferido"`
	DataRecebidoConferido *time.Time `json:"dataRecebidoConferido"`
	LotePronto            bool       `json:"lotePronto"`
	DataLotePronto        *time.Time `json:"dataLotePronto"`
	Recebido              bool       `json:"recebido"`
	Aprovado              bool       `json:"aprovado"`
	EmAnalise             bool       `json:"emAnalise"`
	Pago                  bool       `json:"pago"`
	DataPgto              *time.Time `json:"dataPgto"`
	RateLote              *int       `json:"rateLote"`
	AdvancedMoneyPayment  float64    `json:"advancedMoneyPayment"`
	Observacao            string     `json:"observacao"`
	IsArchived            bool       `json:"isArchived"`
	FaccionistaID         string     `json:"faccionistaId"`
	OwnerID               string     `json:"ownerId"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

// JobToggleField enumera os campos booleanos mutáveis de um Job. O conjunto é
// fechado: cada campo tem um handler próprio com suas regras de efeito
// colateral (carimbo de data, recálculo de orçamento).
type JobToggleField string

const (
	ToggleRecebidoConferido JobToggleField = "recebidoConferido"
	ToggleLotePronto        JobToggleField = "lotePronto"
	ToggleRecebido          JobToggleField = "recebido"
	ToggleAprovado          JobToggleField = "aprovado"
	TogglePago              JobToggleField = "pago"
	ToggleEmenda            JobToggleField = "emenda"
	ToggleIsArchived        JobToggleField = "isArchived"
)

// ParseJobToggleField valida um nome de campo vindo da API
func ParseJobToggleField(raw string) (JobToggleField, bool) {
	f := JobToggleField(raw)
	switch f {
	case ToggleRecebidoConferido, ToggleLotePronto, ToggleRecebido,
		ToggleAprovado, TogglePago, ToggleEmenda, ToggleIsArchived:
		return f, true
	}
	return "", false
}

// Ações registradas no log de alterações
const (
	JobActionCreate = "create"
	JobActionUpdate = "update"
)

// JobChange é uma entrada imutável do log de auditoria de Jobs. O core só
// insere; nunca altera nem remove.
type JobChange struct {
	ID        string    `json:"id"`
	JobID     string    `json:"jobId"`
	UserID    string    `json:"userId"`
	Action    string    `json:"action"`
	Field     string    `json:"field"`
	OldValue  string    `json:"oldValue"`
	NewValue  string    `json:"newValue"`
	OwnerID   string    `json:"ownerId"`
	Timestamp time.Time `json:"timestamp"`
}
