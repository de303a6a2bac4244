package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"fieldservice-golang/internal/storage"
	"fieldservice-golang/internal/storage/mysql"
)

type NodeUpdater interface {
	UpdateNode(ctx context.Context, nodeID string, req storage.UpdateNodeRequest) error
	BindUser(ctx context.Context, nodeID, userID string) error
	UnbindUser(ctx context.Context, nodeID, userID string) error
}

// UpdateNode actualiza cargo y/o área de un nodo. Body {name?, area?}.
func UpdateNode(log *slog.Logger, updater NodeUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.hierarchy.update.UpdateNode"

		nodeID := chi.URLParam(r, "id")
		if nodeID == "" {
			http.Error(w, "ID inválido", http.StatusBadRequest)
			return
		}

		var req storage.UpdateNodeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("JSON inválido", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Datos inválidos", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		err := updater.UpdateNode(ctx, nodeID, req)
		if err != nil {
			if errors.Is(err, mysql.ErrNodeNotFound) {
				http.Error(w, "El nodo no existe", http.StatusNotFound)
				return
			}
			log.Error("error actualizando nodo", slog.String("op", op), slog.String("id", nodeID), slog.String("error", err.Error()))
			http.Error(w, "No se pudo actualizar el puesto", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

// BindUser asocia un usuario al nodo: POST /node/{id}/user/{userid}, sin body.
func BindUser(log *slog.Logger, updater NodeUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.hierarchy.update.BindUser"

		nodeID := chi.URLParam(r, "id")
		userID := chi.URLParam(r, "userid")
		if nodeID == "" || userID == "" {
			http.Error(w, "ID inválido", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		err := updater.BindUser(ctx, nodeID, userID)
		if err != nil {
			if errors.Is(err, mysql.ErrNodeNotFound) {
				http.Error(w, "El nodo no existe", http.StatusNotFound)
				return
			}
			log.Error("error asociando usuario", slog.String("op", op), slog.String("id", nodeID), slog.String("userid", userID), slog.String("error", err.Error()))
			http.Error(w, "No se pudo asociar el usuario", http.StatusInternalServerError)
			return
		}

		log.Info("usuario asociado", slog.String("id", nodeID), slog.String("userid", userID))

		w.WriteHeader(http.StatusOK)
	}
}

// UnbindUser libera el usuario del nodo: DELETE /node/{id}/user/{userid}.
func UnbindUser(log *slog.Logger, updater NodeUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.hierarchy.update.UnbindUser"

		nodeID := chi.URLParam(r, "id")
		userID := chi.URLParam(r, "userid")
		if nodeID == "" || userID == "" {
			http.Error(w, "ID inválido", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		err := updater.UnbindUser(ctx, nodeID, userID)
		if err != nil {
			if errors.Is(err, mysql.ErrUserNotBound) {
				http.Error(w, "El usuario no está asociado a ese puesto", http.StatusNotFound)
				return
			}
			log.Error("error liberando usuario", slog.String("op", op), slog.String("id", nodeID), slog.String("userid", userID), slog.String("error", err.Error()))
			http.Error(w, "No se pudo liberar el puesto", http.StatusInternalServerError)
			return
		}

		log.Info("usuario liberado", slog.String("id", nodeID), slog.String("userid", userID))

		w.WriteHeader(http.StatusOK)
	}
}
