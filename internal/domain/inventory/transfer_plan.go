package inventory

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/jhoicas/pos-inventario/internal/domain"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
)

// CartLine renglón del carrito de una transferencia.
type CartLine struct {
	ProductID int64
	Quantity  int64
}

// AggregateCart valida el carrito y suma cantidades por producto (un producto repetido
// mueve la suma de sus renglones). Devuelve también los IDs de producto ordenados.
func AggregateCart(cart []CartLine) (map[int64]int64, []int64, error) {
	if len(cart) == 0 {
		return nil, nil, fmt.Errorf("%w: el carrito está vacío", domain.ErrInvalidInput)
	}
	totals := make(map[int64]int64, len(cart))
	for i, line := range cart {
		if line.ProductID <= 0 {
			return nil, nil, fmt.Errorf("%w: cart[%d].productId inválido", domain.ErrInvalidInput, i)
		}
		if line.Quantity <= 0 {
			return nil, nil, fmt.Errorf("%w: cart[%d].quantity debe ser mayor a 0", domain.ErrInvalidInput, i)
		}
		if totals[line.ProductID] > math.MaxInt64-line.Quantity {
			return nil, nil, fmt.Errorf("%w: cantidad total del producto %d fuera de rango", domain.ErrInvalidInput, line.ProductID)
		}
		totals[line.ProductID] += line.Quantity
	}
	ids := make([]int64, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return totals, ids, nil
}

// StockChange par de existencias (origen, destino) ya modificadas para un producto.
type StockChange struct {
	ProductID   int64
	Quantity    int64
	Origin      *entity.StockEntry
	Destination *entity.StockEntry
}

type stockKey struct {
	productID   int64
	warehouseID int64
}

// PlanTransfer aplica los movimientos sobre las existencias bloqueadas: resta en origen
// y suma en destino por producto. Cada existencia se asocia por (producto, bodega), nunca
// por posición. Falla si falta algún registro, si el origen queda negativo sin permitirlo
// o si el movimiento desborda int64.
func PlanTransfer(originID, destinationID int64, totals map[int64]int64, productIDs []int64, entries []*entity.StockEntry, now time.Time) ([]StockChange, error) {
	if originID == destinationID {
		return nil, domain.ErrSameWarehouse
	}
	index := make(map[stockKey]*entity.StockEntry, len(entries))
	for _, e := range entries {
		index[stockKey{e.ProductID, e.WarehouseID}] = e
	}

	changes := make([]StockChange, 0, len(productIDs))
	for _, pid := range productIDs {
		qty := totals[pid]
		origin, ok := index[stockKey{pid, originID}]
		if !ok {
			return nil, fmt.Errorf("%w: producto %d, bodega %d", domain.ErrStockEntryNotFound, pid, originID)
		}
		dest, ok := index[stockKey{pid, destinationID}]
		if !ok {
			return nil, fmt.Errorf("%w: producto %d, bodega %d", domain.ErrStockEntryNotFound, pid, destinationID)
		}
		if origin.Stock < math.MinInt64+qty || dest.Stock > math.MaxInt64-qty {
			return nil, fmt.Errorf("%w: producto %d, la cantidad %d desborda las existencias", domain.ErrInvalidInput, pid, qty)
		}
		if origin.Stock-qty < 0 && !origin.AllowNegative {
			return nil, fmt.Errorf("%w: producto %d tiene %d y se solicitan %d", domain.ErrInsufficientStock, pid, origin.Stock, qty)
		}
		origin.ApplyDelta(-qty, now)
		dest.ApplyDelta(qty, now)
		changes = append(changes, StockChange{ProductID: pid, Quantity: qty, Origin: origin, Destination: dest})
	}
	return changes, nil
}
