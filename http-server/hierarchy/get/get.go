package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"fieldservice-golang/internal/hierarchy"
	"fieldservice-golang/internal/storage"
)

type HierarchyProvider interface {
	GetHierarchyRows(ctx context.Context) ([]storage.HierarchyRow, error)
	GetAreas(ctx context.Context) ([]string, error)
}

// GetOrganigrama devuelve {areas, tree}. Con ?area= y/o ?search= el filtro
// se aplica también del lado del servidor, mismo algoritmo que el frontend.
func GetOrganigrama(log *slog.Logger, provider HierarchyProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.hierarchy.get.GetOrganigrama"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var (
			rows  []storage.HierarchyRow
			areas []string
		)

		// nodos y áreas en paralelo, son tablas independientes
		g, gCtx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			rows, err = provider.GetHierarchyRows(gCtx)
			return err
		})
		g.Go(func() error {
			var err error
			areas, err = provider.GetAreas(gCtx)
			return err
		})

		if err := g.Wait(); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("error obteniendo el organigrama")
			http.Error(w, "Error interno del servidor", http.StatusInternalServerError)
			return
		}

		forest := hierarchy.BuildForest(rows)

		areaFilter := r.URL.Query().Get("area")
		searchTerm := r.URL.Query().Get("search")
		if areaFilter != "" || searchTerm != "" {
			forest = hierarchy.Filter(forest, areaFilter, searchTerm)
		}

		if areas == nil {
			areas = []string{}
		}
		if forest == nil {
			forest = []storage.HierarchyNode{}
		}

		render.JSON(w, r, storage.HierarchyForest{Areas: areas, Tree: forest})
	}
}
