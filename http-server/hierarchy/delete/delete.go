package delete_node

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"fieldservice-golang/internal/storage/mysql"
)

type NodeDeleter interface {
	DeleteNode(ctx context.Context, nodeID string) error
}

// DeleteNode borra un nodo del organigrama. Con subordinados todavía
// colgando responde 409: no hay cascada, el frontend reubica primero.
func DeleteNode(log *slog.Logger, deleter NodeDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.hierarchy.delete.DeleteNode"

		nodeID := chi.URLParam(r, "id")
		if nodeID == "" {
			http.Error(w, "ID inválido", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		err := deleter.DeleteNode(ctx, nodeID)
		if err != nil {
			if errors.Is(err, mysql.ErrNodeHasChildren) {
				log.Warn("intento de borrar nodo con subordinados", slog.String("op", op), slog.String("id", nodeID))
				http.Error(w, "El puesto tiene subordinados, reubicarlos primero", http.StatusConflict)
				return
			}
			if errors.Is(err, mysql.ErrNodeNotFound) {
				http.Error(w, "El nodo no existe", http.StatusNotFound)
				return
			}
			log.Error("error borrando nodo", slog.String("op", op), slog.String("id", nodeID), slog.String("error", err.Error()))
			http.Error(w, "No se pudo eliminar el puesto", http.StatusInternalServerError)
			return
		}

		log.Info("nodo eliminado", slog.String("id", nodeID))

		w.WriteHeader(http.StatusOK)
	}
}
