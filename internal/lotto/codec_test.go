package lotto

import (
	"encoding/json"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func words(vals ...uint64) []*big.Int {
	out := make([]*big.Int, len(vals))
	for i, v := range vals {
		out[i] = new(big.Int).SetUint64(v)
	}
	return out
}

// id, start, end, register, prize, totalTickets, totalWinning,
// six numbers, status.
func roundTuple() []uint64 {
	return []uint64{
		7, 1700000000, 1700600000, 1700610800, 2000000000000000, 120, 2,
		5, 3, 1, 9, 2, 8,
		3,
	}
}

func TestWeiToDecimal(t *testing.T) {
	tests := []struct {
		name string
		wei  string
		want string
	}{
		{"sub unit", "2000000000000000", "0.002"},
		{"one unit", "1000000000000000000", "1"},
		{"zero", "0", "0"},
		{"full precision", "1000000000000000001", "1.000000000000000001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wei, _ := new(big.Int).SetString(tt.wei, 10)
			got := WeiToDecimal(wei)
			if got.String() != tt.want {
				t.Errorf("WeiToDecimal(%s) = %s, want %s", tt.wei, got, tt.want)
			}
		})
	}
}

func TestCurrencyRoundTrip(t *testing.T) {
	wei := big.NewInt(2000000000000000)

	d := WeiToDecimal(wei)
	if d.String() != "0.002" {
		t.Fatalf("WeiToDecimal = %s, want 0.002", d)
	}

	back := DecimalToWei(d)
	if back.Cmp(wei) != 0 {
		t.Errorf("DecimalToWei(WeiToDecimal(%s)) = %s", wei, back)
	}
}

func TestSecondsToMillis(t *testing.T) {
	if got := SecondsToMillis(1700000000); got != 1700000000000 {
		t.Errorf("SecondsToMillis = %d, want 1700000000000", got)
	}
}

func TestDecodeStatus(t *testing.T) {
	tests := []struct {
		in      uint64
		want    Status
		wantErr bool
	}{
		{0, StatusActive, false},
		{1, StatusDrawing, false},
		{2, StatusRegisterWinningTickets, false},
		{3, StatusClaimable, false},
		{4, 0, true},
		{255, 0, true},
	}

	for _, tt := range tests {
		got, err := DecodeStatus(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("DecodeStatus(%d) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("DecodeStatus(%d) = %v, want %v", tt.in, got, tt.want)
		}
		if tt.wantErr {
			var decErr *DecodeError
			if !errors.As(err, &decErr) {
				t.Errorf("DecodeStatus(%d) error type = %T, want *DecodeError", tt.in, err)
			}
		}
	}
}

func TestDecodeRound(t *testing.T) {
	r, err := DecodeRound(words(roundTuple()...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.ID != 7 {
		t.Errorf("ID = %d, want 7", r.ID)
	}
	if r.StartTime != 1700000000000 || r.EndTime != 1700600000000 {
		t.Errorf("times not converted to millis: start=%d end=%d", r.StartTime, r.EndTime)
	}
	if !r.Prize.Equal(decimal.RequireFromString("0.002")) {
		t.Errorf("Prize = %s, want 0.002", r.Prize)
	}
	if r.TotalTickets != 120 || r.TotalWinningTickets != 2 {
		t.Errorf("totals = %d/%d, want 120/2", r.TotalTickets, r.TotalWinningTickets)
	}
	if r.WinningNumbers != (Numbers{5, 3, 1, 9, 2, 8}) {
		t.Errorf("WinningNumbers = %v", r.WinningNumbers)
	}
	if r.Status != StatusClaimable {
		t.Errorf("Status = %v, want Claimable", r.Status)
	}
}

func TestDecodeRoundRejectsMalformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(vals []uint64) []uint64
	}{
		{"too few words", func(v []uint64) []uint64 { return v[:13] }},
		{"too many words", func(v []uint64) []uint64 { return append(v, 0) }},
		{"unknown status", func(v []uint64) []uint64 { v[13] = 9; return v }},
		{"number out of range", func(v []uint64) []uint64 { v[8] = 60; return v }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRound(words(tt.mutate(roundTuple())...))
			var decErr *DecodeError
			if !errors.As(err, &decErr) {
				t.Errorf("error = %v, want *DecodeError", err)
			}
		})
	}
}

func TestDecodeRoundUndrawnNumbers(t *testing.T) {
	vals := roundTuple()
	for i := 7; i < 13; i++ {
		vals[i] = 0
	}
	vals[13] = 0 // Active

	r, err := DecodeRound(words(vals...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.HasNumbers() {
		t.Error("HasNumbers() = true for an undrawn round")
	}
}

func TestDecodeTickets(t *testing.T) {
	// getPlayerTickets(address) -> (uint256[] ids, Ticket[] tickets)
	// head: two offsets; ids array of 2; two 9-word tickets.
	player := uint64(0xabc123)
	data := words(
		0x40, 0xa0, // offsets in bytes
		2, 11, 12, // ids
		2, // ticket count
		5, 3, 1, 9, 2, 8, 0, 1, player,
		10, 20, 30, 40, 50, 59, 1, 1, player,
	)

	ids, tickets, err := DecodeTickets(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ids) != 2 || ids[0] != 11 || ids[1] != 12 {
		t.Errorf("ids = %v, want [11 12]", ids)
	}
	if len(tickets) != 2 {
		t.Fatalf("got %d tickets, want 2", len(tickets))
	}
	if tickets[0].Numbers != (Numbers{5, 3, 1, 9, 2, 8}) {
		t.Errorf("ticket 0 numbers = %v", tickets[0].Numbers)
	}
	if tickets[0].Claimed || !tickets[0].Registered {
		t.Errorf("ticket 0 flags = claimed %v registered %v", tickets[0].Claimed, tickets[0].Registered)
	}
	if !tickets[1].Claimed || !tickets[1].Registered {
		t.Errorf("ticket 1 flags = claimed %v registered %v", tickets[1].Claimed, tickets[1].Registered)
	}
	if tickets[0].Player != "0x0000000000000000000000000000000000abc123" {
		t.Errorf("player = %s", tickets[0].Player)
	}
}

func TestDecodeTicketsRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data []*big.Int
	}{
		{"empty", nil},
		{"truncated ids", words(0x40, 0x60, 5, 1)},
		{"truncated tickets", words(0x40, 0x80, 1, 11, 2, 1, 2, 3)},
		{"non boolean flag", words(0x40, 0x80, 1, 11, 1, 5, 3, 1, 9, 2, 8, 7, 0, 0)},
		{"misaligned offset", words(0x41, 0x80, 1, 11, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeTickets(tt.data)
			var decErr *DecodeError
			if !errors.As(err, &decErr) {
				t.Errorf("error = %v, want *DecodeError", err)
			}
		})
	}
}

func TestRoundJSONRoundTrip(t *testing.T) {
	r, err := DecodeRound(words(roundTuple()...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back Round
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if back.ID != r.ID || back.Status != r.Status || !back.Prize.Equal(r.Prize) {
		t.Errorf("round trip changed round: %+v vs %+v", back, r)
	}
	if !strings.Contains(string(b), `"status":"Claimable"`) {
		t.Errorf("status not serialized by name: %s", b)
	}
	if !strings.Contains(string(b), `"prize":0.002`) {
		t.Errorf("prize not serialized as a number: %s", b)
	}
}
