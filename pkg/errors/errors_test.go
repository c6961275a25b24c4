package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFound("parent", nil).StatusCode())
	assert.Equal(t, http.StatusConflict, AlreadyExists("drug", nil).StatusCode())
	assert.Equal(t, http.StatusConflict, Conflict("duplicate key", nil).StatusCode())
	assert.Equal(t, http.StatusBadRequest, InvalidArgument("bad date", nil).StatusCode())
	assert.Equal(t, http.StatusInternalServerError, Internal(nil).StatusCode())
}

func TestCodePredicatesUnwrapChains(t *testing.T) {
	err := fmt.Errorf("create parent: %w", AlreadyExists("parent", nil))
	assert.True(t, IsAlreadyExists(err))
	assert.False(t, IsNotFound(err))

	wrapped := fmt.Errorf("lookup: %w", NotFound("kid", fmt.Errorf("no rows")))
	assert.True(t, IsNotFound(wrapped))
}

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := fmt.Errorf("pq: duplicate key value")
	err := Conflict("drug name taken", cause)
	assert.Contains(t, err.Error(), "drug name taken")
	assert.Contains(t, err.Error(), "duplicate key")
	assert.ErrorIs(t, err, cause)
}
