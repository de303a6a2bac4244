package workorders

import (
	"strings"

	"fieldservice-golang/internal/storage"
)

// Backlog filtra las OT sin técnico asignado sobre la lista completa,
// igual que lo hacía el dashboard en el navegador.
func Backlog(orders []storage.WorkOrder) []storage.WorkOrder {
	var out []storage.WorkOrder
	for _, o := range orders {
		if o.TechnicianID == "" {
			out = append(out, o)
		}
	}
	return out
}

// FilterByStatus devuelve las OT con el estado pedido (case-insensitive).
// Estado vacío devuelve todo.
func FilterByStatus(orders []storage.WorkOrder, status string) []storage.WorkOrder {
	if status == "" {
		return orders
	}

	var out []storage.WorkOrder
	for _, o := range orders {
		if strings.EqualFold(o.Status, status) {
			out = append(out, o)
		}
	}
	return out
}
