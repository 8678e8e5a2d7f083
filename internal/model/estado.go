package model

import "fmt"

// EstadoOperacion is the lifecycle state shared by traslados, ordenes de
// restablecimiento and facturas. The numeric values are fixed by the legacy
// schema and must not be renumbered.
type EstadoOperacion int

const (
	EstadoPendiente  EstadoOperacion = 1
	EstadoEnProceso  EstadoOperacion = 2
	EstadoCompletada EstadoOperacion = 3
	EstadoAnulada    EstadoOperacion = 4
)

// ParseEstado rejects codes outside the known set instead of guessing.
func ParseEstado(code int) (EstadoOperacion, error) {
	e := EstadoOperacion(code)
	switch e {
	case EstadoPendiente, EstadoEnProceso, EstadoCompletada, EstadoAnulada:
		return e, nil
	}
	return 0, fmt.Errorf("estado desconocido: %d", code)
}

func (e EstadoOperacion) String() string {
	switch e {
	case EstadoPendiente:
		return "pendiente"
	case EstadoEnProceso:
		return "en_proceso"
	case EstadoCompletada:
		return "completada"
	case EstadoAnulada:
		return "anulada"
	default:
		return "desconocido"
	}
}
