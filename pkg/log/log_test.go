package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background())
	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))

	ctx, id = WithCorrelationID(context.Background(), " req-42 ")
	assert.Equal(t, "req-42", id)
	assert.Equal(t, "req-42", GetCorrelationID(ctx))

	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestIsDevField(t *testing.T) {
	assert.True(t, isDevField("correlation_id"))
	assert.True(t, isDevField("user_id"))
	assert.True(t, isDevField("view"))
	assert.False(t, isDevField("remote_addr"))
}
