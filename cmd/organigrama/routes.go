package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	getareas "fieldservice-golang/http-server/admin/get"
	saveareas "fieldservice-golang/http-server/admin/save"
	generate_excel "fieldservice-golang/http-server/generate-report/generate-excel"
	delete_node "fieldservice-golang/http-server/hierarchy/delete"
	gethierarchy "fieldservice-golang/http-server/hierarchy/get"
	savehierarchy "fieldservice-golang/http-server/hierarchy/save"
	uphierarchy "fieldservice-golang/http-server/hierarchy/update"
	getot "fieldservice-golang/http-server/workorders/get"
	"fieldservice-golang/internal/config"
	"fieldservice-golang/internal/middleware/auth"
	"fieldservice-golang/internal/service/orgreport"
	"fieldservice-golang/internal/storage/mysql"
)

func routes(cfg config.Config, log *slog.Logger, storage *mysql.Storage, reportService *orgreport.OrgReportService) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.FrontendOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	//ip del usuario
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// API del dashboard, todo detrás del bearer del servicio de sesión
	apiRouter := chi.NewRouter()
	apiRouter.Use(auth.BearerAuth(cfg.APIToken))

	// organigrama completo {areas, tree}, con ?area= y ?search= opcionales
	apiRouter.Get("/organigrama", gethierarchy.GetOrganigrama(log, storage))

	// alta de puesto vacante (con parent opcional)
	apiRouter.Post("/organigrama/node", savehierarchy.SaveNode(log, storage))

	// actualización de cargo/área
	apiRouter.Put("/organigrama/node/{id}", uphierarchy.UpdateNode(log, storage))

	// asociar / liberar usuario
	apiRouter.Post("/organigrama/node/{id}/user/{userid}", uphierarchy.BindUser(log, storage))
	apiRouter.Delete("/organigrama/node/{id}/user/{userid}", uphierarchy.UnbindUser(log, storage))

	// borrado de nodo (409 si tiene subordinados)
	apiRouter.Delete("/organigrama/node/{id}", delete_node.DeleteNode(log, storage))

	// órdenes de trabajo, ?backlog=true para las OT sin técnico
	apiRouter.Get("/ot", getot.GetWorkOrders(log, storage))

	// reporte excel del organigrama
	apiRouter.Get("/report/organigrama", generate_excel.GenerateReportExcel(log, reportService))

	router.Mount("/api", apiRouter)

	// panel admin con basic auth
	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Get("/areas", getareas.GetAreasAdmin(log, storage))
	adminRouter.Post("/areas/new", saveareas.SaveAreaAdmin(log, storage))

	router.Mount("/api/admin", adminRouter)

	// Estática, vue
	frontendDir := "./frontend-dist"
	if _, err := os.Stat(frontendDir); os.IsNotExist(err) {
		log.Warn("carpeta del frontend no encontrada, solo API", "path", frontendDir)
		return router
	}

	fileServer := http.StripPrefix("/", http.FileServer(http.Dir(frontendDir)))

	router.Handle("/assets/*", fileServer)
	router.Handle("/js/*", fileServer)
	router.Handle("/css/*", fileServer)
	router.Handle("/img/*", fileServer)

	//SPA fallback: cualquier otra ruta → index.html
	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, r.URL.Path)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
	})

	return router
}
