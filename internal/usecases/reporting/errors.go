package reporting

import "errors"

var (
	// ErrLoadFailed indica que alguma das coleções não pôde ser carregada
	ErrLoadFailed = errors.New("erro ao carregar dados dos indicadores")
	// ErrEmptySnapshot indica que o corpo da requisição não trouxe estado algum
	ErrEmptySnapshot = errors.New("estado local ausente")
)
