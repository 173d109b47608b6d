// steamsim is a development stand-in for the external trade service. It
// accepts any offer, then resolves it randomly on subsequent polls so the
// reconciliation path can be exercised end to end.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/xid"
	"github.com/rs/zerolog/log"

	"skinsbay/internal/app/handler"
	"skinsbay/internal/app/logger"
	mw "skinsbay/internal/app/middleware"
	"skinsbay/pkg/steam"
)

func main() {
	// setting up signal capturing
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		osCall := <-stop
		log.Printf("System call: %+v", osCall)
		cancel()
	}()

	l := logger.New(true, true)

	if err := runServer(ctx, "127.0.0.1:8090", l); err != nil {
		l.Fatal().Err(err).Msg("Server run failed")
	}
}

func runServer(ctx context.Context, listenAddr string, l logger.Logger) (err error) {
	sim := newSimulator()

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(mw.Log(l))
	r.Post("/api/offers", sim.SendOffer)
	r.Get("/api/offers/{offer}", sim.GetOffer)
	r.Get("/api/inventory/{steamID}", sim.GetInventory)

	srv := &http.Server{
		Addr:    listenAddr,
		Handler: r,
	}

	go func() {
		log.Printf("Listening on %s", listenAddr)
		if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("")
		}
	}()

	log.Printf("Server started")
	<-ctx.Done()
	log.Printf("Server stopped")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer func() {
		cancel()
	}()

	if err = srv.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Printf("Server exited properly")

	return
}

type simulator struct {
	mu     sync.Mutex
	offers map[string]steam.OfferState
}

func newSimulator() *simulator {
	return &simulator{offers: make(map[string]steam.OfferState)}
}

func (s *simulator) SendOffer(w http.ResponseWriter, r *http.Request) {
	in := &steam.SendOfferRequest{}
	if err := json.NewDecoder(r.Body).Decode(in); err != nil {
		handler.WriteError(w, err, http.StatusBadRequest)
		return
	}

	id := xid.New().String()

	s.mu.Lock()
	s.offers[id] = steam.OfferStateActive
	s.mu.Unlock()

	handler.WriteResponse(w, &steam.SendOfferResponse{OfferID: id}, http.StatusOK)
}

func (s *simulator) GetOffer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "offer")
	ctx := r.Context()
	l := logger.Ctx(ctx).With().Str("offer_id", id).Str("method", "GetOffer").Logger()

	s.mu.Lock()
	state, ok := s.offers[id]
	if ok && !state.Terminal() {
		// stay active a while, then settle with a bias toward acceptance
		switch f := rand.Float32(); {
		case f < 0.5:
		case f < 0.9:
			state = steam.OfferStateAccepted
		default:
			state = steam.OfferStateDeclined
		}
		s.offers[id] = state
	}
	s.mu.Unlock()

	if !ok {
		l.Error().Msg("Unknown offer id")
		http.Error(w, "offer not found", http.StatusNotFound)
		return
	}

	handler.WriteResponse(w, &steam.GetOfferResponse{OfferID: id, State: state}, http.StatusOK)
}

func (s *simulator) GetInventory(w http.ResponseWriter, r *http.Request) {
	steamID := chi.URLParam(r, "steamID")

	// every simulated inventory holds a couple of assets
	out := &steam.GetInventoryResponse{
		Assets: []steam.Asset{
			{AssetID: "10000001", MarketHashName: "AK-47 | Redline (Field-Tested)"},
			{AssetID: "10000002", MarketHashName: "AWP | Asiimov (Battle-Scarred)"},
		},
	}

	l := logger.Ctx(r.Context())
	l.Debug().Str("steam_id", steamID).Msg("Inventory request")

	handler.WriteResponse(w, out, http.StatusOK)
}
