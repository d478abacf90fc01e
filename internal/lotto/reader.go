package lotto

import (
	"context"
	"fmt"
	"math/big"

	"github.com/dmagro/lotteryd/internal/rpc"
)

// Contract function signatures and the settlement event.
const (
	sigTicketPrice   = "ticketPrice()"
	sigCurrentRound  = "getRoundData()"
	sigRoundData     = "getRoundData(uint256)"
	sigPlayerTickets = "getPlayerTickets(address)"

	// SettledEventSig is emitted once a round reaches Claimable, with the
	// round id as its single indexed argument.
	SettledEventSig = "RoundClaimable(uint256)"
)

// Reader is the read-only port to the lottery contract: point-in-time
// eth_call reads plus settlement-event log queries. All blocking happens
// here and in the underlying client; decoding is pure.
type Reader struct {
	client      *rpc.Client
	contract    string
	settleTopic string
}

func NewReader(client *rpc.Client, contract string) (*Reader, error) {
	if err := rpc.ValidateAddress(contract); err != nil {
		return nil, fmt.Errorf("contract address: %w", err)
	}
	return &Reader{
		client:      client,
		contract:    contract,
		settleTopic: rpc.EventTopic(SettledEventSig),
	}, nil
}

func (r *Reader) call(ctx context.Context, calldata string) ([]*big.Int, error) {
	data, err := r.client.CallContract(ctx, r.contract, calldata)
	if err != nil {
		return nil, err
	}
	return rpc.SplitWords(data)
}

// TicketPrice reads the current ticket price in base units (wei).
func (r *Reader) TicketPrice(ctx context.Context) (*big.Int, error) {
	words, err := r.call(ctx, rpc.Calldata(sigTicketPrice))
	if err != nil {
		return nil, fmt.Errorf("ticketPrice: %w", err)
	}
	if len(words) != 1 {
		return nil, decodeErrorf("ticketPrice", "expected 1 word, got %d", len(words))
	}
	return words[0], nil
}

// Round reads and decodes the snapshot of a specific round.
func (r *Reader) Round(ctx context.Context, id uint64) (Round, error) {
	words, err := r.call(ctx, rpc.Calldata(sigRoundData, rpc.EncodeUint256(id)))
	if err != nil {
		return Round{}, fmt.Errorf("getRoundData(%d): %w", id, err)
	}
	return DecodeRound(words)
}

// CurrentRound reads and decodes the in-progress round.
func (r *Reader) CurrentRound(ctx context.Context) (Round, error) {
	words, err := r.call(ctx, rpc.Calldata(sigCurrentRound))
	if err != nil {
		return Round{}, fmt.Errorf("getRoundData: %w", err)
	}
	return DecodeRound(words)
}

// PlayerTickets reads a player's ticket ids and tickets for the current round.
func (r *Reader) PlayerTickets(ctx context.Context, player string) ([]uint64, []Ticket, error) {
	addr, err := rpc.EncodeAddress(player)
	if err != nil {
		return nil, nil, fmt.Errorf("player address: %w", err)
	}
	words, err := r.call(ctx, rpc.Calldata(sigPlayerTickets, addr))
	if err != nil {
		return nil, nil, fmt.Errorf("getPlayerTickets: %w", err)
	}
	return DecodeTickets(words)
}

// BlockNumber reports the chain head height.
func (r *Reader) BlockNumber(ctx context.Context) (uint64, error) {
	return r.client.BlockNumber(ctx)
}

// SettledRounds returns the ids of rounds whose settlement event landed in
// [from, to], in the order the node delivered them (block order).
func (r *Reader) SettledRounds(ctx context.Context, from, to uint64) ([]uint64, error) {
	logs, err := r.client.Logs(ctx, rpc.FilterQuery{
		Address:   r.contract,
		Topics:    []string{r.settleTopic},
		FromBlock: from,
		ToBlock:   to,
	})
	if err != nil {
		return nil, fmt.Errorf("settlement logs %d..%d: %w", from, to, err)
	}

	ids := make([]uint64, 0, len(logs))
	for _, l := range logs {
		if l.Removed {
			continue
		}
		if len(l.Topics) < 2 {
			return nil, decodeErrorf("settlement event", "missing indexed round id in %s", l.TxHash)
		}
		id, err := rpc.ParseHexUint64(l.Topics[1])
		if err != nil {
			return nil, decodeErrorf("settlement event", "round id: %v", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
