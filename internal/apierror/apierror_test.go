package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("x")))
	assert.Equal(t, KindConflict, KindOf(Conflict("x")))
	assert.Equal(t, KindInvalid, KindOf(Invalid("x")))
	assert.Equal(t, KindUnauthorized, KindOf(Unauthorized("x")))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestKindOfDesenvuelve(t *testing.T) {
	wrapped := fmt.Errorf("capa extra: %w", Conflict("stock insuficiente"))
	assert.Equal(t, KindConflict, KindOf(wrapped))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("x")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(Conflict("x")))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(Invalid("x")))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(Unauthorized("x")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func TestInternalConservaCausa(t *testing.T) {
	cause := errors.New("pq: deadlock detected")
	err := Internal(cause, "no se pudo guardar")
	assert.Equal(t, "no se pudo guardar", err.Error())
	assert.ErrorIs(t, err, cause)
}
