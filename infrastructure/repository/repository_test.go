package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestNullableDate(t *testing.T) {
	assert.Nil(t, nullableDate(""))
	assert.Equal(t, "2024-03-10", nullableDate("2024-03-10"))
}

func TestTranslateError(t *testing.T) {
	duplicated := fmt.Errorf("exec: %w", &pq.Error{Code: uniqueViolation})
	assert.ErrorIs(t, translateError(duplicated), ErrDuplicated)

	other := errors.New("conexão recusada")
	assert.Equal(t, other, translateError(other))
}

func TestCardColumnsMatchScan(t *testing.T) {
	// scanCard lê exatamente uma coluna por campo selecionado
	assert.Len(t, cardColumns, 11)
	assert.Len(t, transactionColumns, 8)
	assert.Len(t, collaboratorColumns, 9)
	assert.Len(t, projectColumns, 8)
}
