package middleware

import (
	"net/http"

	"github.com/vfg2006/flow-erp-api/internal/domain"
	"github.com/vfg2006/flow-erp-api/pkg/apiErrors"
	"github.com/vfg2006/flow-erp-api/pkg/log"
)

// RoleMiddleware restringe o acesso aos perfis informados
func RoleMiddleware(allowedRoles []int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userClaims, ok := ClaimsFromContext(r.Context())
			if !ok {
				log.ForContext(r.Context()).Warn("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			isAllowed := false
			for _, role := range allowedRoles {
				if userClaims.UserRoleID == role {
					isAllowed = true
					break
				}
			}

			if !isAllowed {
				log.ForContext(r.Context()).Warnf("Acesso negado para usuário ID=%d, Role=%d", userClaims.UserID, userClaims.UserRoleID)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly permite acesso apenas para administradores
func AdminOnly() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{domain.UserRoleAdmin})
}

// AdminOrSeller permite acesso para administradores e vendedores
func AdminOrSeller() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{domain.UserRoleAdmin, domain.UserRoleSeller})
}

// AdminOrProduction permite acesso para administradores e produção
func AdminOrProduction() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{domain.UserRoleAdmin, domain.UserRoleProduction})
}

func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{domain.UserRoleAdmin, domain.UserRoleSeller, domain.UserRoleProduction})
}
