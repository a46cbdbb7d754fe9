package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/lrodrigues/costura-backoffice-api/internal/domain"
	"github.com/lrodrigues/costura-backoffice-api/pkg/apiErrors"
)

// RoleMiddleware restringe o acesso com base no papel do usuário autenticado
func RoleMiddleware(allowedRoles []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromRequest(r)
			if !ok {
				logrus.Warning("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			isAllowed := false
			for _, role := range allowedRoles {
				if claims.Role == role {
					isAllowed = true
					break
				}
			}

			if !isAllowed {
				logrus.Warningf("Acesso negado para usuário ID=%s, Role=%s", claims.UserID, claims.Role)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// OwnerOnly permite acesso apenas para o dono da operação
func OwnerOnly() func(http.Handler) http.Handler {
	return RoleMiddleware([]string{domain.RoleOwner})
}

// OwnerOrOperador permite acesso para o dono e os operadores de expedição
func OwnerOrOperador() func(http.Handler) http.Handler {
	return RoleMiddleware([]string{domain.RoleOwner, domain.RoleOperador})
}

// AllRoles permite acesso para qualquer papel autenticado
func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware([]string{domain.RoleOwner, domain.RoleOperador, domain.RoleFaccionista})
}
