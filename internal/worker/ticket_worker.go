package worker

// ticket_worker.go
// Renders a registered sale as a plain-text ticket and emails it to the
// customer. Best-effort: a failed send is logged, never retried into the sale
// flow.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"tiendapos/internal/infra"
	"tiendapos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// TicketJobPayload is the job envelope sent to QueueTickets.
type TicketJobPayload struct {
	VentaID      string `json:"venta_id"`
	ClienteEmail string `json:"cliente_email"`
}

type TicketWorker struct {
	ventaRepo repository.VentaRepository
	mailer    *infra.Mailer
}

func NewTicketWorker(ventaRepo repository.VentaRepository, mailer *infra.Mailer) *TicketWorker {
	return &TicketWorker{ventaRepo: ventaRepo, mailer: mailer}
}

func (w *TicketWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload TicketJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("ticket_worker: invalid payload")
		return
	}
	if payload.ClienteEmail == "" {
		log.Warn().Msg("ticket_worker: empty cliente_email; skipping")
		return
	}

	id, err := uuid.Parse(payload.VentaID)
	if err != nil {
		log.Error().Str("venta_id", payload.VentaID).Msg("ticket_worker: malformed venta_id")
		return
	}
	venta, err := w.ventaRepo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID).Msg("ticket_worker: venta not found")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Ticket #%d\n", venta.NumeroTicket)
	fmt.Fprintf(&b, "Fecha: %s\n\n", venta.CreatedAt.Format("2006-01-02 15:04"))
	for _, item := range venta.Items {
		fmt.Fprintf(&b, "%-30s %3d x %10s = %10s\n",
			item.ProductoNombre, item.Cantidad,
			item.PrecioUnitario.StringFixed(2), item.Subtotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nSubtotal:  %s\n", venta.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "IGV:       %s\n", venta.Impuestos.StringFixed(2))
	if venta.Descuento.IsPositive() {
		fmt.Fprintf(&b, "Descuento: -%s\n", venta.Descuento.StringFixed(2))
	}
	fmt.Fprintf(&b, "TOTAL:     %s\n", venta.Total.StringFixed(2))
	fmt.Fprintf(&b, "Pago:      %s\n", venta.MetodoPago)
	if venta.Vuelto != nil {
		fmt.Fprintf(&b, "Vuelto:    %s\n", venta.Vuelto.StringFixed(2))
	}

	subject := fmt.Sprintf("Tu ticket de compra #%d", venta.NumeroTicket)
	if err := w.mailer.SendTicket(payload.ClienteEmail, subject, b.String()); err != nil {
		log.Error().Err(err).Str("to", payload.ClienteEmail).Msg("ticket_worker: failed to send email")
		return
	}
	log.Info().Str("to", payload.ClienteEmail).Int("ticket", venta.NumeroTicket).Msg("ticket_worker: ticket sent")
}
