package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(E(CodeInvalidArgument, "op", "bad", nil)))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(E(CodeForbidden, "op", "no", nil)))
	assert.Equal(t, http.StatusConflict, HTTPStatus(E(CodeConflict, "op", "dup", nil)))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(E(CodeUnavailable, "op", "down", nil)))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("wrap: %w", ErrNotFound)))
	assert.Equal(t, http.StatusConflict, HTTPStatus(ErrDuplicate))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestAppErrorUnwrap(t *testing.T) {
	err := E(CodeNotFound, "JobService.Get", "job not found", ErrNotFound)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsCode(err, CodeNotFound))
	assert.False(t, IsCode(err, CodeConflict))
	assert.Equal(t, "JobService.Get: job not found: not found", err.Error())
}
