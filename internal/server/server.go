// Package server exposes the settlement cache over HTTP. Handlers never
// issue contract reads for round history; only the price handler's
// cache-miss path may reach upstream, through the price service.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/shopspring/decimal"

	"github.com/dmagro/lotteryd/internal/cache"
	"github.com/dmagro/lotteryd/internal/price"
)

var log = logger.GetOrCreate("server")

type Server struct {
	store  *cache.Store
	prices *price.Service
	http   *http.Server
}

func New(listen string, store *cache.Store, prices *price.Service) *Server {
	s := &Server{store: store, prices: prices}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /tickets/price", s.handlePrice)
	mux.HandleFunc("GET /rounds/prev", s.handlePreviousRounds)

	s.http = &http.Server{
		Addr:              listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// ListenAndServe blocks until the server stops. http.ErrServerClosed after
// a graceful Shutdown is not reported as a failure.
func (s *Server) ListenAndServe() error {
	log.Info("http server listening", "addr", s.http.Addr)
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Handler returns the route table, used directly by tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]string{"status": "ok"})
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	p, err := s.prices.Price(r.Context())
	if err != nil {
		log.Warn("price lookup failed", "err", err)
		writeFailure(w, http.StatusServiceUnavailable, "Ticket price is unavailable. Try again later.")
		return
	}
	writeSuccess(w, priceBody{Price: p})
}

func (s *Server) handlePreviousRounds(w http.ResponseWriter, r *http.Request) {
	rounds, err := s.store.Rounds()
	if err != nil {
		log.Warn("round history unavailable", "err", err)
		writeFailure(w, http.StatusServiceUnavailable, "Round history is unavailable. Try again later.")
		return
	}
	writeSuccess(w, rounds)
}

type priceBody struct {
	Price decimal.Decimal `json:"price"`
}
