package save

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"fieldservice-golang/internal/storage"
	"fieldservice-golang/internal/storage/mysql"
)

type NodeCreator interface {
	CreateNode(ctx context.Context, req storage.CreateNodeRequest) (*storage.CreatedNode, error)
}

var validate = validator.New()

// SaveNode da de alta un puesto vacante. Body {name, area, parent?};
// sin parent se crea una raíz nueva. Devuelve 201 con el nodo creado.
func SaveNode(log *slog.Logger, creator NodeCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.hierarchy.save.SaveNode"

		var req storage.CreateNodeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("JSON inválido", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Datos inválidos", http.StatusBadRequest)
			return
		}

		// name y area son obligatorios, se corta acá antes de tocar la base
		if err := validate.Struct(req); err != nil {
			log.Warn("alta de nodo sin campos obligatorios", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Cargo y área son obligatorios", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		node, err := creator.CreateNode(ctx, req)
		if err != nil {
			if errors.Is(err, mysql.ErrNodeNotFound) {
				log.Warn("alta de nodo con padre inexistente", slog.String("op", op), slog.String("parent", req.Parent))
				http.Error(w, "El nodo padre no existe", http.StatusNotFound)
				return
			}
			log.Error("error creando nodo", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "No se pudo crear el puesto", http.StatusInternalServerError)
			return
		}

		log.Info("nodo creado", slog.String("id", node.ID), slog.String("cargo", node.Cargo), slog.String("area", node.Area))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, node)
	}
}
