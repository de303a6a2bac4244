package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"fieldservice-golang/internal/storage"
	"fieldservice-golang/internal/workorders"
)

type WorkOrderProvider interface {
	GetWorkOrders(ctx context.Context) ([]storage.WorkOrder, error)
}

// GetWorkOrders devuelve todas las OT. Con ?backlog=true solo las que no
// tienen técnico; con ?status= filtra por estado. Los filtros son sobre la
// lista completa, igual que en el dashboard.
func GetWorkOrders(log *slog.Logger, provider WorkOrderProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.workorders.get.GetWorkOrders"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		orders, err := provider.GetWorkOrders(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("error obteniendo órdenes de trabajo")
			http.Error(w, "Error interno del servidor", http.StatusInternalServerError)
			return
		}

		if r.URL.Query().Get("backlog") == "true" {
			orders = workorders.Backlog(orders)
		}
		if status := r.URL.Query().Get("status"); status != "" {
			orders = workorders.FilterByStatus(orders, status)
		}

		if orders == nil {
			orders = []storage.WorkOrder{}
		}

		render.JSON(w, r, orders)
	}
}
