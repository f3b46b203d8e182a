package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/The127/ioc"
	"github.com/the127/osmhistory/internal/config"
	"github.com/the127/osmhistory/internal/handlers/apihandlers"
	"github.com/the127/osmhistory/internal/logging"
	"github.com/the127/osmhistory/internal/middlewares"

	gh "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Serve starts the status API in the background. The returned server is used to shut it down.
func Serve(root *ioc.DependencyProvider, serverConfig config.ServerConfig) *http.Server {
	addr := fmt.Sprintf("%s:%d", serverConfig.Host, serverConfig.Port)
	logging.Logger.Infof("Starting server on %s", addr)
	srv := &http.Server{
		Addr:    addr,
		Handler: NewRouter(root, serverConfig),
	}

	go serve(srv)
	return srv
}

func serve(srv *http.Server) {
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(fmt.Errorf("error while running server: %w", err))
	}
}

func NewRouter(root *ioc.DependencyProvider, serverConfig config.ServerConfig) *mux.Router {
	r := mux.NewRouter()

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.Logger.Infof("Not found API Request: %s %s", r.Method, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"errors": []map[string]string{
				{"code": "NOT_FOUND", "message": "route not found"},
			},
		})
	})

	r.Use(middlewares.RecoverMiddleware())
	r.Use(middlewares.LoggingMiddleware())
	r.Use(middlewares.ScopeMiddleware(root))

	r.Use(gh.CORS(
		gh.AllowedOrigins(serverConfig.AllowedOrigins),
		gh.AllowedMethods([]string{"GET"}),
		gh.AllowedHeaders([]string{"Content-Type"}),
		gh.MaxAge(3600),
	))

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	mapApi(r)

	return r
}

func mapApi(r *mux.Router) {
	apiRouter := r.PathPrefix("/api/v1").Subrouter()
	apiRouter.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet, http.MethodOptions)

	apiRouter.HandleFunc("/imports/{id}", apihandlers.GetImportRun).Methods(http.MethodGet, http.MethodOptions)
	apiRouter.HandleFunc("/{type:nodes|ways|relations}/{id:-?[0-9]+}/versions", apihandlers.ListVersions).Methods(http.MethodGet, http.MethodOptions)
}
