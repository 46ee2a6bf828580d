package db

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorHelpers(t *testing.T) {
	notFound := &NotFoundError{Key: "k", Message: "staker not found"}
	wrapped := fmt.Errorf("lookup: %w", notFound)

	assert.True(t, IsNotFoundError(notFound))
	assert.True(t, IsNotFoundError(wrapped))
	assert.False(t, IsDuplicateKeyError(wrapped))

	dup := &DuplicateKeyError{Key: "k", Message: "token account already exists"}
	assert.True(t, IsDuplicateKeyError(fmt.Errorf("save: %w", dup)))
	assert.False(t, IsNotFoundError(dup))

	token := &InvalidPaginationTokenError{Message: "bad token"}
	assert.True(t, IsInvalidPaginationTokenError(token))
	assert.False(t, IsInvalidPaginationTokenError(nil))
}
