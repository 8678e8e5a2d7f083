package worker

// factura_worker.go
// Processes jobs from QueueFactura: generates the invoice PDF and, when the
// customer left an email, chains an email job with the attachment.

import (
	"context"
	"encoding/json"
	"fmt"

	"farmavita/internal/infra"
	"farmavita/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type FacturaWorker struct {
	facturaRepo    repository.FacturaRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
}

func NewFacturaWorker(facturaRepo repository.FacturaRepository, dispatcher *Dispatcher, pdfStoragePath string) *FacturaWorker {
	return &FacturaWorker{
		facturaRepo:    facturaRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process handles a single factura job:
//  1. Parse FacturaJobPayload from the job envelope
//  2. Fetch the Factura (with detalles) from DB
//  3. Generate the PDF
//  4. Optionally enqueue the email job
func (w *FacturaWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload FacturaJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("factura_worker: invalid payload")
		return
	}

	facturaID, err := uuid.Parse(payload.FacturaID)
	if err != nil {
		log.Error().Str("factura_id", payload.FacturaID).Msg("factura_worker: invalid factura_id")
		return
	}

	factura, err := w.facturaRepo.FindByID(ctx, facturaID)
	if err != nil {
		log.Error().Err(err).Str("factura_id", payload.FacturaID).Msg("factura_worker: factura not found")
		return
	}

	pdfPath, err := infra.GenerateFacturaPDF(factura, w.pdfStoragePath)
	if err != nil {
		log.Error().Err(err).Str("factura_id", payload.FacturaID).Msg("factura_worker: PDF generation failed")
		return
	}
	log.Info().Str("pdf", pdfPath).Int64("numero", factura.Numero).Msg("factura_worker: PDF generated")

	if payload.ClienteEmail != nil && *payload.ClienteEmail != "" {
		emailJob := EmailJobPayload{
			ToEmail: *payload.ClienteEmail,
			Subject: fmt.Sprintf("Factura FarmaVita N° %d", factura.Numero),
			Body:    fmt.Sprintf("Adjunto encontrará su factura de compra.\nTotal: Q%.2f", factura.Total.InexactFloat64()),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *payload.ClienteEmail).Msg("factura_worker: failed to enqueue email")
		} else {
			log.Info().Str("email", *payload.ClienteEmail).Msg("factura_worker: email job enqueued")
		}
	}
}
