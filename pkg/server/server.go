// Package server exposes the reconcile pipeline over HTTP.
package server

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/metalkit/netrecon/pkg/hwquery"
	log "github.com/sirupsen/logrus"
)

// Server stores info about settings.
type Server struct {
	Address string
	Port    int
	Source  hwquery.Source
}

// log the request and client
func logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debugf("requested %s", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// Router builds the HTTP routing table:
//
//	GET  /healthz    liveness probe
//	GET  /inventory  classified physical NIC groups
//	POST /reconcile  logical config in, projected matched model out
func (s *Server) Router() *mux.Router {
	api := &apiHandler{source: s.Source}

	router := mux.NewRouter()
	router.Use(logRequest)
	router.HandleFunc("/healthz", api.healthz).Methods("GET")
	router.HandleFunc("/inventory", api.inventory).Methods("GET")
	router.HandleFunc("/reconcile", api.reconcile).Methods("POST")
	return router
}

// Start serves the HTTP API until the listener fails.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Address, s.Port)
	log.Infof("starting netrecon server on %s", addr)
	httpServer := &http.Server{
		Handler: s.Router(),
		Addr:    addr,
	}
	return httpServer.ListenAndServe()
}
