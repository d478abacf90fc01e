package lotto

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// WeiDecimals is the base-unit scaling of the chain's native currency.
const WeiDecimals = 18

// Word counts of the contract's static tuples.
const (
	roundWords  = 14 // id, 3 times, prize, 2 totals, 6 numbers, status
	ticketWords = 9  // 6 numbers, claimed, registered, player
)

// DecodeError reports a field of on-chain data outside its expected
// range or shape. Such data is rejected, never coerced.
type DecodeError struct {
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %s", e.Field, e.Reason)
}

func decodeErrorf(field, format string, args ...interface{}) *DecodeError {
	return &DecodeError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// WeiToDecimal converts a base-unit amount into whole currency units.
// decimal arithmetic keeps the full 18 digits of precision.
func WeiToDecimal(wei *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(wei, -WeiDecimals)
}

// DecimalToWei converts whole currency units back to base units. It is the
// inverse of WeiToDecimal for any amount that originated on-chain.
func DecimalToWei(d decimal.Decimal) *big.Int {
	return d.Shift(WeiDecimals).BigInt()
}

// SecondsToMillis converts a unix-seconds timestamp to milliseconds.
func SecondsToMillis(secs uint64) int64 {
	return int64(secs) * 1000
}

// DecodeStatus maps the contract's status byte to a Status. Values outside
// the known enumerators are a decode error.
func DecodeStatus(v uint64) (Status, error) {
	if v >= uint64(len(statusNames)) {
		return 0, decodeErrorf("status", "unknown enumerator %d", v)
	}
	return Status(v), nil
}

func decodeUint64(word *big.Int, field string) (uint64, error) {
	if !word.IsUint64() {
		return 0, decodeErrorf(field, "value %s overflows uint64", word)
	}
	return word.Uint64(), nil
}

func decodeNumbers(words []*big.Int, field string) (Numbers, error) {
	var nums Numbers
	if len(words) != NumbersPerTicket {
		return nums, decodeErrorf(field, "expected %d numbers, got %d", NumbersPerTicket, len(words))
	}
	for i, w := range words {
		n, err := decodeUint64(w, field)
		if err != nil {
			return nums, err
		}
		if n > MaxNumber {
			return nums, decodeErrorf(field, "number %d out of range 0..%d", n, MaxNumber)
		}
		nums[i] = uint8(n)
	}
	return nums, nil
}

func decodeBool(word *big.Int, field string) (bool, error) {
	if !word.IsUint64() || word.Uint64() > 1 {
		return false, decodeErrorf(field, "value %s is not a boolean", word)
	}
	return word.Uint64() == 1, nil
}

// DecodeRound converts the 14-word getRoundData return tuple into a Round.
func DecodeRound(words []*big.Int) (Round, error) {
	if len(words) != roundWords {
		return Round{}, decodeErrorf("round", "expected %d words, got %d", roundWords, len(words))
	}

	id, err := decodeUint64(words[0], "round.id")
	if err != nil {
		return Round{}, err
	}
	start, err := decodeUint64(words[1], "round.startTime")
	if err != nil {
		return Round{}, err
	}
	end, err := decodeUint64(words[2], "round.endTime")
	if err != nil {
		return Round{}, err
	}
	register, err := decodeUint64(words[3], "round.registerWinningTicketTime")
	if err != nil {
		return Round{}, err
	}
	totalTickets, err := decodeUint64(words[5], "round.totalTickets")
	if err != nil {
		return Round{}, err
	}
	totalWinning, err := decodeUint64(words[6], "round.totalWinningTickets")
	if err != nil {
		return Round{}, err
	}
	numbers, err := decodeNumbers(words[7:13], "round.winningNumbers")
	if err != nil {
		return Round{}, err
	}
	statusByte, err := decodeUint64(words[13], "round.status")
	if err != nil {
		return Round{}, err
	}
	status, err := DecodeStatus(statusByte)
	if err != nil {
		return Round{}, err
	}

	return Round{
		ID:                        id,
		StartTime:                 SecondsToMillis(start),
		EndTime:                   SecondsToMillis(end),
		RegisterWinningTicketTime: SecondsToMillis(register),
		Prize:                     WeiToDecimal(words[4]),
		TotalTickets:              totalTickets,
		TotalWinningTickets:       totalWinning,
		WinningNumbers:            numbers,
		Status:                    status,
	}, nil
}

// DecodeTickets converts the getPlayerTickets return data, two dynamic
// arrays (uint256[] ids, Ticket[] tickets), into typed values.
func DecodeTickets(words []*big.Int) ([]uint64, []Ticket, error) {
	if len(words) < 2 {
		return nil, nil, decodeErrorf("tickets", "expected 2 array offsets, got %d words", len(words))
	}

	idWords, err := dynamicArray(words, words[0], "tickets.ids")
	if err != nil {
		return nil, nil, err
	}
	ids := make([]uint64, len(idWords))
	for i, w := range idWords {
		if ids[i], err = decodeUint64(w, "tickets.ids"); err != nil {
			return nil, nil, err
		}
	}

	count, body, err := arrayHeader(words, words[1], "tickets.entries")
	if err != nil {
		return nil, nil, err
	}
	if uint64(len(body)) < count*ticketWords {
		return nil, nil, decodeErrorf("tickets.entries", "truncated: %d entries need %d words, have %d",
			count, count*ticketWords, len(body))
	}

	tickets := make([]Ticket, 0, count)
	for i := uint64(0); i < count; i++ {
		t := body[i*ticketWords : (i+1)*ticketWords]

		numbers, err := decodeNumbers(t[:NumbersPerTicket], "ticket.numbers")
		if err != nil {
			return nil, nil, err
		}
		claimed, err := decodeBool(t[6], "ticket.claimed")
		if err != nil {
			return nil, nil, err
		}
		registered, err := decodeBool(t[7], "ticket.registered")
		if err != nil {
			return nil, nil, err
		}

		tickets = append(tickets, Ticket{
			Numbers:    numbers,
			Claimed:    claimed,
			Registered: registered,
			Player:     wordToAddress(t[8]),
		})
	}

	if len(ids) != len(tickets) {
		return nil, nil, decodeErrorf("tickets", "id count %d does not match ticket count %d", len(ids), len(tickets))
	}

	return ids, tickets, nil
}

func wordToAddress(word *big.Int) string {
	b := make([]byte, 32)
	word.FillBytes(b)
	return "0x" + hex.EncodeToString(b[12:])
}

// arrayHeader resolves a dynamic array's byte offset into its length and
// the words following it.
func arrayHeader(words []*big.Int, offset *big.Int, field string) (uint64, []*big.Int, error) {
	off, err := decodeUint64(offset, field)
	if err != nil {
		return 0, nil, err
	}
	if off%32 != 0 {
		return 0, nil, decodeErrorf(field, "offset %d is not word-aligned", off)
	}
	idx := off / 32
	if idx >= uint64(len(words)) {
		return 0, nil, decodeErrorf(field, "offset %d past end of data", off)
	}
	count, err := decodeUint64(words[idx], field)
	if err != nil {
		return 0, nil, err
	}
	return count, words[idx+1:], nil
}

func dynamicArray(words []*big.Int, offset *big.Int, field string) ([]*big.Int, error) {
	count, body, err := arrayHeader(words, offset, field)
	if err != nil {
		return nil, err
	}
	if uint64(len(body)) < count {
		return nil, decodeErrorf(field, "truncated: %d elements, have %d words", count, len(body))
	}
	return body[:count], nil
}
