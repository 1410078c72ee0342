package service

import (
	"fmt"

	"tiendapos/internal/domain"
	"tiendapos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineaVenta is one resolved cart line: product data is snapshotted at
// calculation time so later price edits never alter a registered sale.
type LineaVenta struct {
	ProductoID     uuid.UUID
	Nombre         string
	Cantidad       int
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
}

// TotalesVenta carries the money aggregates of a cart.
type TotalesVenta struct {
	Lineas    []LineaVenta
	Subtotal  decimal.Decimal
	Impuestos decimal.Decimal
	Descuento decimal.Decimal
	Total     decimal.Decimal
}

// ItemCarrito is the calculator's input: product reference plus quantity.
type ItemCarrito struct {
	Producto *model.Producto
	Cantidad int
}

// CalcularTotales computes the cart totals without touching any storage.
//
// Rounding happens once per aggregate (half up, 2 decimals), never per line:
// line subtotals keep full precision, then subtotal, taxes and total are each
// rounded independently. Total is clamped at zero when the discount exceeds
// subtotal plus taxes.
//
// Lines for the same product accumulate, and the combined quantity is checked
// against stock in a single pass. Service products skip the stock check.
func CalcularTotales(items []ItemCarrito, descuento, tasaImpuesto decimal.Decimal) (*TotalesVenta, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: la venta no tiene items", domain.ErrValidacion)
	}
	if descuento.IsNegative() {
		return nil, fmt.Errorf("%w: el descuento no puede ser negativo", domain.ErrMontoInvalido)
	}

	// Accumulate per-product quantities so repeated lines of the same SKU
	// are validated against stock as a whole.
	porProducto := make(map[uuid.UUID]int)
	for _, it := range items {
		if it.Producto == nil {
			return nil, domain.ErrProductoNoEncontrado
		}
		if it.Cantidad <= 0 {
			return nil, fmt.Errorf("%w: cantidad debe ser mayor que cero", domain.ErrValidacion)
		}
		porProducto[it.Producto.ID] += it.Cantidad
	}

	vistos := make(map[uuid.UUID]bool)
	lineas := make([]LineaVenta, 0, len(items))
	subtotal := decimal.Zero

	for _, it := range items {
		p := it.Producto
		if !p.Activo {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductoNoEncontrado, p.Nombre)
		}
		if !p.EsServicio && !vistos[p.ID] && porProducto[p.ID] > p.Stock {
			return nil, fmt.Errorf("%w: %s (disponible %d, pedido %d)",
				domain.ErrStockInsuficiente, p.Nombre, p.Stock, porProducto[p.ID])
		}
		vistos[p.ID] = true

		lineSubtotal := p.PrecioVenta.Mul(decimal.NewFromInt(int64(it.Cantidad)))
		subtotal = subtotal.Add(lineSubtotal)
		lineas = append(lineas, LineaVenta{
			ProductoID:     p.ID,
			Nombre:         p.Nombre,
			Cantidad:       it.Cantidad,
			PrecioUnitario: p.PrecioVenta,
			Subtotal:       lineSubtotal,
		})
	}

	subtotalRed := subtotal.Round(2)
	impuestos := subtotal.Mul(tasaImpuesto).Round(2)
	total := subtotalRed.Add(impuestos).Sub(descuento).Round(2)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return &TotalesVenta{
		Lineas:    lineas,
		Subtotal:  subtotalRed,
		Impuestos: impuestos,
		Descuento: descuento,
		Total:     total,
	}, nil
}
