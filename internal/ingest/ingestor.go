// Package ingest tails the contract's settlement event log and keeps the
// round history cache current. One ingestor runs per process; it is the
// sole writer of the history and of the block checkpoint.
package ingest

import (
	"context"
	"errors"
	"time"

	logger "github.com/ElrondNetwork/elrond-go-logger"

	"github.com/dmagro/lotteryd/internal/cache"
	"github.com/dmagro/lotteryd/internal/lotto"
)

var log = logger.GetOrCreate("ingest")

// Reader is the chain surface the ingestor needs.
type Reader interface {
	BlockNumber(ctx context.Context) (uint64, error)
	SettledRounds(ctx context.Context, from, to uint64) ([]uint64, error)
	Round(ctx context.Context, id uint64) (lotto.Round, error)
}

type Ingestor struct {
	reader      Reader
	store       *cache.Store
	deployBlock uint64
	interval    time.Duration
}

func New(reader Reader, store *cache.Store, deployBlock uint64, interval time.Duration) *Ingestor {
	return &Ingestor{
		reader:      reader,
		store:       store,
		deployBlock: deployBlock,
		interval:    interval,
	}
}

// Run polls for settlement events until the context is cancelled. Each
// scan resumes from the persisted checkpoint, so a restart reprocesses at
// most the tail since the last completed scan, and duplicate appends are
// absorbed by the cache either way.
func (ing *Ingestor) Run(ctx context.Context) error {
	log.Info("ingestor started",
		"deployBlock", ing.deployBlock, "interval", ing.interval.String())

	ticker := time.NewTicker(ing.interval)
	defer ticker.Stop()

	ing.Scan(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Info("ingestor stopped")
			return ctx.Err()
		case <-ticker.C:
			ing.Scan(ctx)
		}
	}
}

// Scan processes one block range. The checkpoint only advances when every
// event in the range either appended or deduped; a range with a transient
// failure is rescanned on the next tick.
func (ing *Ingestor) Scan(ctx context.Context) {
	from := ing.deployBlock
	checkpoint, err := ing.store.LastBlock()
	switch {
	case err == nil:
		if checkpoint+1 > from {
			from = checkpoint + 1
		}
	case errors.Is(err, cache.ErrNotFound):
	default:
		log.Error("checkpoint unavailable", "err", err)
		return
	}

	head, err := ing.reader.BlockNumber(ctx)
	if err != nil {
		log.Warn("chain head unavailable", "err", err)
		return
	}
	if head < from {
		return
	}

	ids, err := ing.reader.SettledRounds(ctx, from, head)
	if err != nil {
		log.Warn("settlement scan failed", "from", from, "to", head, "err", err)
		return
	}

	complete := true
	for _, id := range ids {
		if !ing.ingest(ctx, id) {
			complete = false
		}
	}

	if !complete {
		return
	}
	if err := ing.store.SetLastBlock(head); err != nil {
		log.Error("checkpoint write failed", "block", head, "err", err)
	}
}

// ingest enriches one settlement event. Decode failures are permanent for
// that round and do not hold the checkpoint back; transient failures do.
func (ing *Ingestor) ingest(ctx context.Context, id uint64) bool {
	round, err := ing.reader.Round(ctx, id)
	if err != nil {
		var decodeErr *lotto.DecodeError
		if errors.As(err, &decodeErr) {
			log.Error("round snapshot rejected", "round", id, "err", err)
			return true
		}
		log.Warn("round snapshot unavailable", "round", id, "err", err)
		return false
	}

	appended, err := ing.store.AppendRound(round)
	if err != nil {
		log.Error("round append failed", "round", id, "err", err)
		return false
	}
	if appended {
		log.Info("round settled", "round", id,
			"prize", round.Prize.String(), "tickets", round.TotalTickets)
	} else {
		log.Debug("round already cached", "round", id)
	}
	return true
}
