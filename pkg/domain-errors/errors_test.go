package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	err := New(CodeNotFound, "missing")
	assert.True(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(err, CodeConflict))
	assert.False(t, HasCode(errors.New("plain"), CodeNotFound))
	assert.False(t, HasCode(nil, CodeNotFound))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "failed to load")

	assert.True(t, errors.Is(err, cause))
	assert.True(t, HasCode(err, CodeInternal))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestHasCodeThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeBadRequest, "bad offset"))
	assert.True(t, HasCode(err, CodeBadRequest))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeConflict, CodeOf(New(CodeConflict, "dup")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}

func TestToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(CodeBadRequest))
	assert.Equal(t, http.StatusUnauthorized, ToHTTPStatus(CodeUnauthorized))
	assert.Equal(t, http.StatusNotFound, ToHTTPStatus(CodeNotFound))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(CodeInternal))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(Code("unknown")))
}
