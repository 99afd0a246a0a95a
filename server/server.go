// Package server exposes the worker operations over a small JSON API. It is
// the transport used by chat front ends and by operators scripting against
// the bot directly; every response body is {"message": "..."} carrying the
// same HTML the chat surface shows.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/richardcertto/n2-bot/render"
	"github.com/richardcertto/n2-bot/worker"
)

const operatorHeader = "X-Operator-Id"

type reply struct {
	Message      string `json:"message"`
	DetailsBoxID string `json:"details_box_id,omitempty"`
}

type Server struct {
	worker *worker.Worker
	mux    *http.ServeMux
}

func New(w *worker.Worker) *Server {
	s := &Server{worker: w, mux: http.NewServeMux()}

	s.mux.Handle("/api/cto", s.authorized(s.handleCTO))
	s.mux.Handle("/api/box", s.authorized(s.handleBox))
	s.mux.Handle("/api/client", s.authorized(s.handleClient))
	s.mux.Handle("/api/ont", s.authorized(s.handleONT))
	s.mux.Handle("/api/oncall", s.authorized(s.handleOnCall))
	s.mux.Handle("/metrics", promhttp.Handler())
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	logrus.Infof("HTTP API listening on %s", addr)
	server := &http.Server{Addr: addr, Handler: s}
	return server.ListenAndServe()
}

// authorized gates an operation on the operator permission table. The
// operator id travels in a header so the front end stays a thin proxy.
func (s *Server) authorized(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(operatorHeader)
		if raw == "" {
			http.Error(w, "missing "+operatorHeader+" header", http.StatusUnauthorized)
			return
		}
		operatorID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid "+operatorHeader+" header", http.StatusBadRequest)
			return
		}
		if !s.worker.Authorize(r.Context(), operatorID) {
			writeReply(w, http.StatusForbidden, reply{Message: render.AccessDenied("operador")})
			return
		}
		next(w, r)
	})
}

// handleCTO dispatches on the query shape: a box name produces a box report,
// anything else is treated as a subscriber id and resolved.
func (s *Server) handleCTO(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		http.Error(w, "missing q parameter", http.StatusBadRequest)
		return
	}

	if worker.CTONamePattern.MatchString(q) {
		writeReply(w, http.StatusOK, reply{Message: s.worker.BoxReportByName(r.Context(), q)})
		return
	}

	res := s.worker.CheckAttachment(r.Context(), q, r.URL.Query().Get("service_id"))
	writeReply(w, http.StatusOK, reply{Message: res.Message, DetailsBoxID: res.DetailsBoxID})
}

func (s *Server) handleBox(w http.ResponseWriter, r *http.Request) {
	boxID := r.URL.Query().Get("box_id")
	if boxID == "" {
		http.Error(w, "missing box_id parameter", http.StatusBadRequest)
		return
	}
	writeReply(w, http.StatusOK, reply{Message: s.worker.BoxReportByID(r.Context(), boxID)})
}

func (s *Server) handleClient(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		http.Error(w, "missing client_id parameter", http.StatusBadRequest)
		return
	}
	writeReply(w, http.StatusOK, reply{Message: s.worker.ClientStatus(r.Context(), clientID)})
}

func (s *Server) handleONT(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		http.Error(w, "missing client_id parameter", http.StatusBadRequest)
		return
	}
	writeReply(w, http.StatusOK, reply{Message: s.worker.CPEStatus(r.Context(), clientID)})
}

func (s *Server) handleOnCall(w http.ResponseWriter, r *http.Request) {
	writeReply(w, http.StatusOK, reply{Message: s.worker.OnCallStatus(r.Context())})
}

func writeReply(w http.ResponseWriter, status int, body reply) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
