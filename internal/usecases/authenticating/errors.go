package authenticating

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials  = errors.New("credenciais inválidas")
	ErrUserDisabled        = errors.New("usuário desativado")
	ErrUserNotFound        = errors.New("usuário não encontrado")
	ErrUserAlreadyExists   = errors.New("usuário já existe")
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")

	ErrInvalidToken      = errors.New("token inválido")
	ErrExpiredToken      = errors.New("token expirado")
	ErrNoAdminPrivileges = errors.New("apenas administradores podem realizar esta ação")

	ErrWeakPassword = errors.New("senha fraca")
	ErrSamePassword = errors.New("nova senha deve ser diferente da atual")
)

// AuthError carrega o código de API e, quando houver, o usuário envolvido
type AuthError struct {
	Err     error
	Code    string
	UserID  int
	Details string
}

func (e *AuthError) Error() string {
	if e.Details == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func NewAuthError(baseErr error, code string, details string) *AuthError {
	return NewUserAuthError(baseErr, code, 0, details)
}

func NewUserAuthError(baseErr error, code string, userID int, details string) *AuthError {
	return &AuthError{
		Err:     baseErr,
		Code:    code,
		UserID:  userID,
		Details: details,
	}
}

// IsCredentialsError cobre as falhas de login que não devem revelar qual dado estava errado
func IsCredentialsError(err error) bool {
	for _, target := range []error{ErrInvalidCredentials, ErrUserDisabled, ErrUserNotFound} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func IsAuthorizationError(err error) bool {
	for _, target := range []error{ErrInvalidToken, ErrExpiredToken, ErrNoAdminPrivileges} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
