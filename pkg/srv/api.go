/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package srv

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-openapi/runtime/middleware"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"jinr.ru/greenlab/go-pel/pkg/config"
	"jinr.ru/greenlab/go-pel/pkg/log"
	"jinr.ru/greenlab/go-pel/pkg/pel"
	"jinr.ru/greenlab/go-pel/pkg/store"
)

type ApiServer struct {
	context.Context
	*config.Config
	*mux.Router
	store    *store.Store
	registry *pel.Registry
	spec     *Spec
}

// NewApiServer returns a server that decodes with the registry and keeps imported logs in the store
func NewApiServer(ctx context.Context, cfg *config.Config, st *store.Store, registry *pel.Registry) (*ApiServer, error) {
	spec, err := LoadSpec()
	if err != nil {
		return nil, err
	}
	s := &ApiServer{
		Context:  ctx,
		Config:   cfg,
		store:    st,
		registry: registry,
		spec:     spec,
	}
	s.configureRouter()
	return s, nil
}

// Handler returns the router wrapped with access logging and panic recovery
func (s *ApiServer) Handler() http.Handler {
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(log.NewWriter(log.ErrorLevel)),
		handlers.PrintRecoveryStack(log.Enabled(log.DebugLevel)),
	)
	return handlers.LoggingHandler(log.NewWriter(log.InfoLevel), recovery(s.Router))
}

// Run serves the API until the server context is done
func (s *ApiServer) Run() error {
	log.Info("Starting API server: %s", s.ListenAddress())
	httpServer := &http.Server{
		Handler: s.Handler(),
		Addr:    s.ListenAddress(),
	}
	go func() {
		<-s.Context.Done()
		log.Debug("Shutting down API server")
		if err := httpServer.Shutdown(context.Background()); err != nil {
			log.Error("Error while shutting down API server: %s", err)
		}
	}()
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *ApiServer) configureRouter() {
	s.Router = mux.NewRouter()
	subRouter := s.Router.PathPrefix(s.spec.BasePath()).Subrouter()
	subRouter.HandleFunc("/decode", s.handleDecode()).Methods("POST")
	subRouter.HandleFunc("/logs", s.handleImport()).Methods("POST")
	subRouter.HandleFunc("/devices", s.handleDevices()).Methods("GET")
	subRouter.HandleFunc("/devices/{serial}/logs", s.handleLogs()).Methods("GET")
	// id is the decimal id assigned on import
	subRouter.HandleFunc("/devices/{serial}/logs/{id:[0-9]+}", s.handleLog()).Methods("GET")
	subRouter.HandleFunc("/devices/{serial}/logs/{id:[0-9]+}", s.handleDeleteLog()).Methods("DELETE")

	s.Router.Handle("/swagger.json", middleware.Spec("/", s.spec.Raw(), http.NotFoundHandler())).Methods("GET")
	s.Router.Handle("/docs", middleware.Redoc(middleware.RedocOpts{
		BasePath: "/",
		Path:     "docs",
		SpecURL:  "/swagger.json",
		Title:    s.spec.Title(),
	}, http.NotFoundHandler())).Methods("GET")
}
