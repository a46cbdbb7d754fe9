package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Papéis reconhecidos pelo core. A emissão de tokens e o CRUD de usuários
// vivem fora deste serviço; aqui apenas validamos e resolvemos o tenant.
const (
	RoleOwner       = "owner"
	RoleFaccionista = "faccionista"
	RoleOperador    = "operador"
)

// User é a projeção mínima da tabela de usuários que o core consulta
// (destinatários de notificação e vínculo faccionista→owner).
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	OwnerID     string    `json:"ownerId"`
	EmailNotify string    `json:"emailNotify"`
	SendEmail   bool      `json:"sendEmail"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Claims é o conteúdo do JWT emitido pelo colaborador de autenticação
type Claims struct {
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	OwnerID string `json:"ownerId"`
	jwt.RegisteredClaims
}

// TenantID resolve a chave de tenant de todas as consultas: o próprio id
// quando o usuário é owner, senão o owner ao qual ele pertence.
func (c *Claims) TenantID() string {
	if c.Role == RoleOwner {
		return c.UserID
	}
	return c.OwnerID
}
