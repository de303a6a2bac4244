package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"fieldservice-golang/internal/storage"
)

type AreaAdminProvider interface {
	GetAreasAdmin(ctx context.Context) ([]*storage.AreaAdmin, error)
}

func GetAreasAdmin(log *slog.Logger, provider AreaAdminProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.get.GetAreasAdmin"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		areas, err := provider.GetAreasAdmin(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("error obteniendo áreas para el panel admin")
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, areas)
	}
}
