package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEstado(t *testing.T) {
	cases := []struct {
		code int
		want EstadoOperacion
	}{
		{1, EstadoPendiente},
		{2, EstadoEnProceso},
		{3, EstadoCompletada},
		{4, EstadoAnulada},
	}
	for _, c := range cases {
		got, err := ParseEstado(c.code)
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}

func TestParseEstadoDesconocido(t *testing.T) {
	for _, code := range []int{0, 5, -1, 99} {
		_, err := ParseEstado(code)
		assert.Error(t, err, "code %d", code)
	}
}

func TestEstadoString(t *testing.T) {
	assert.Equal(t, "pendiente", EstadoPendiente.String())
	assert.Equal(t, "en_proceso", EstadoEnProceso.String())
	assert.Equal(t, "completada", EstadoCompletada.String())
	assert.Equal(t, "anulada", EstadoAnulada.String())
	assert.Equal(t, "desconocido", EstadoOperacion(42).String())
}
