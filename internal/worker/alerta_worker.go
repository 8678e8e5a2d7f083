package worker

// alerta_worker.go
// Processes low stock alert jobs from QueueAlertas: scans the branch bucket
// and emails the branch responsible with the products under their minimum.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"farmavita/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AlertaJobPayload asks for a low stock scan of one branch.
type AlertaJobPayload struct {
	SucursalID string `json:"sucursal_id"`
}

type AlertaWorker struct {
	sucursalRepo   repository.SucursalRepository
	inventarioRepo repository.InventarioRepository
	personaRepo    repository.PersonaRepository
	dispatcher     *Dispatcher
}

func NewAlertaWorker(
	sucursalRepo repository.SucursalRepository,
	inventarioRepo repository.InventarioRepository,
	personaRepo repository.PersonaRepository,
	dispatcher *Dispatcher,
) *AlertaWorker {
	return &AlertaWorker{
		sucursalRepo:   sucursalRepo,
		inventarioRepo: inventarioRepo,
		personaRepo:    personaRepo,
		dispatcher:     dispatcher,
	}
}

// Process scans one branch and chains an email job when anything is under
// its minimum. No responsible configured means nothing to notify.
func (w *AlertaWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload AlertaJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alerta_worker: invalid payload")
		return
	}

	sucursalID, err := uuid.Parse(payload.SucursalID)
	if err != nil {
		log.Error().Str("sucursal_id", payload.SucursalID).Msg("alerta_worker: invalid sucursal_id")
		return
	}

	sucursal, err := w.sucursalRepo.FindByID(ctx, sucursalID)
	if err != nil {
		log.Error().Err(err).Str("sucursal_id", payload.SucursalID).Msg("alerta_worker: sucursal not found")
		return
	}
	if sucursal.ResponsableID == nil {
		log.Warn().Str("sucursal", sucursal.Nombre).Msg("alerta_worker: no responsable configured — skipping")
		return
	}

	rows, err := w.inventarioRepo.ListStockBajo(ctx, &sucursal.InventarioID)
	if err != nil {
		log.Error().Err(err).Str("sucursal", sucursal.Nombre).Msg("alerta_worker: stock scan failed")
		return
	}
	if len(rows) == 0 {
		return
	}

	responsable, err := w.personaRepo.FindByID(ctx, *sucursal.ResponsableID)
	if err != nil {
		log.Error().Err(err).Str("sucursal", sucursal.Nombre).Msg("alerta_worker: responsable not found")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Productos bajo stock mínimo en %s:\n\n", sucursal.Nombre)
	for _, row := range rows {
		nombre := row.ProductoID.String()
		if row.Producto != nil {
			nombre = row.Producto.Nombre
		}
		fmt.Fprintf(&b, "- %s: %d unidades (mínimo %d)\n", nombre, row.Cantidad, row.StockMinimo)
	}

	emailJob := EmailJobPayload{
		ToEmail: responsable.Email,
		Subject: fmt.Sprintf("Alerta de stock bajo — %s", sucursal.Nombre),
		Body:    b.String(),
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Warn().Err(err).Str("sucursal", sucursal.Nombre).Msg("alerta_worker: failed to enqueue email")
		return
	}
	log.Info().Str("sucursal", sucursal.Nombre).Int("productos", len(rows)).Msg("alerta_worker: alert email enqueued")
}
