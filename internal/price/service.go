// Package price serves the current ticket price with cache-aside reads:
// the settlement cache is checked first and the contract is consulted only
// on a miss, with concurrent misses collapsed into one upstream call.
package price

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/dmagro/lotteryd/internal/cache"
	"github.com/dmagro/lotteryd/internal/lotto"
)

var log = logger.GetOrCreate("price")

// Reader is the upstream the service falls back to on a cache miss.
type Reader interface {
	TicketPrice(ctx context.Context) (*big.Int, error)
}

type Service struct {
	reader Reader
	store  *cache.Store
	group  singleflight.Group
}

func New(reader Reader, store *cache.Store) *Service {
	return &Service{reader: reader, store: store}
}

// Price returns the ticket price in whole currency units. A cache hit
// answers without touching the chain; on a miss exactly one upstream
// ticketPrice() call runs regardless of how many callers race in.
func (s *Service) Price(ctx context.Context) (decimal.Decimal, error) {
	cached, err := s.store.Price()
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrNotFound) {
		return decimal.Decimal{}, err
	}

	v, err, _ := s.group.Do("ticket_price", func() (interface{}, error) {
		return s.fetch(ctx)
	})
	if err != nil {
		return decimal.Decimal{}, err
	}
	return v.(decimal.Decimal), nil
}

func (s *Service) fetch(ctx context.Context) (decimal.Decimal, error) {
	// A caller that lost the race to a completed flight lands here after
	// the cache was already filled; answer from it instead of refetching.
	if cached, err := s.store.Price(); err == nil {
		return cached, nil
	}

	wei, err := s.reader.TicketPrice(ctx)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("fetch ticket price: %w", err)
	}

	converted := lotto.WeiToDecimal(wei)
	if err := s.store.SetPrice(converted); err != nil {
		return decimal.Decimal{}, err
	}

	log.Debug("ticket price cached", "price", converted.String())
	return converted, nil
}
