package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"
)

type AreaSaver interface {
	SaveAreaAdmin(ctx context.Context, name string) (int64, error)
}

type SaveAreaRequest struct {
	Name string `json:"name"`
}

// SaveAreaAdmin da de alta un área sin nodos. El área es texto libre:
// duplicados por tipeo quedan como están, no se corrigen acá.
func SaveAreaAdmin(log *slog.Logger, saver AreaSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.save.SaveAreaAdmin"

		var req SaveAreaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("JSON inválido", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Datos inválidos", http.StatusBadRequest)
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			http.Error(w, "El nombre del área es obligatorio", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := saver.SaveAreaAdmin(ctx, req.Name)
		if err != nil {
			log.Error("error guardando área", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]interface{}{
			"id":     id,
			"name":   req.Name,
			"status": "success",
		})
	}
}
