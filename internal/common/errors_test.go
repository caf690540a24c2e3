package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorageError_MatchesKindAndCause(t *testing.T) {
	cause := errors.New("disk full")
	err := StorageError("write credentials", cause)

	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "write credentials")
	assert.Contains(t, err.Error(), "disk full")
}
