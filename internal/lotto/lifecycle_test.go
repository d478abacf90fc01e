package lotto

import (
	"testing"
	"time"
)

func TestTicketMatchesRound(t *testing.T) {
	tests := []struct {
		name    string
		ticket  Numbers
		winning Numbers
		want    bool
		wantErr bool
	}{
		{"same order", Numbers{1, 2, 3, 5, 8, 9}, Numbers{1, 2, 3, 5, 8, 9}, true, false},
		{"different order", Numbers{5, 3, 1, 9, 2, 8}, Numbers{8, 9, 1, 2, 3, 5}, true, false},
		{"one mismatch", Numbers{5, 3, 1, 9, 2, 7}, Numbers{8, 9, 1, 2, 3, 5}, false, false},
		{"all mismatch", Numbers{10, 20, 30, 40, 50, 59}, Numbers{1, 2, 3, 4, 5, 6}, false, false},
		{"duplicate in ticket", Numbers{5, 5, 1, 9, 2, 8}, Numbers{8, 9, 1, 2, 3, 5}, false, true},
		{"duplicate in winning", Numbers{5, 3, 1, 9, 2, 8}, Numbers{8, 8, 1, 2, 3, 5}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TicketMatchesRound(tt.ticket, tt.winning)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("TicketMatchesRound() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTicketMatchesRoundDoesNotMutateInputs(t *testing.T) {
	ticket := Numbers{5, 3, 1, 9, 2, 8}
	winning := Numbers{8, 9, 1, 2, 3, 5}

	if _, err := TicketMatchesRound(ticket, winning); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticket != (Numbers{5, 3, 1, 9, 2, 8}) || winning != (Numbers{8, 9, 1, 2, 3, 5}) {
		t.Errorf("inputs mutated: %v %v", ticket, winning)
	}
}

func TestStatusAt(t *testing.T) {
	end := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	register := end.Add(RegistrationWindow)

	drawn := Round{
		EndTime:                   end.UnixMilli(),
		RegisterWinningTicketTime: register.UnixMilli(),
		WinningNumbers:            Numbers{5, 3, 1, 9, 2, 8},
	}
	undrawn := drawn
	undrawn.WinningNumbers = Numbers{}

	tests := []struct {
		name  string
		round Round
		now   time.Time
		want  Status
	}{
		{"before end", drawn, end.Add(-time.Hour), StatusActive},
		{"after end, undrawn", undrawn, end.Add(time.Minute), StatusDrawing},
		{"after end, drawn", drawn, end.Add(time.Minute), StatusRegisterWinningTickets},
		{"window edge", drawn, register, StatusClaimable},
		{"after window", drawn, register.Add(time.Hour), StatusClaimable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusAt(tt.round, tt.now); got != tt.want {
				t.Errorf("StatusAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Status must never regress as wall-clock time advances over a fixed round.
func TestStatusAtMonotonic(t *testing.T) {
	end := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	r := Round{
		EndTime:                   end.UnixMilli(),
		RegisterWinningTicketTime: end.Add(RegistrationWindow).UnixMilli(),
		WinningNumbers:            Numbers{5, 3, 1, 9, 2, 8},
	}

	prev := StatusAt(r, end.Add(-24*time.Hour))
	for offset := -24 * time.Hour; offset <= 24*time.Hour; offset += 10 * time.Minute {
		cur := StatusAt(r, end.Add(offset))
		if cur < prev {
			t.Fatalf("status regressed from %v to %v at offset %v", prev, cur, offset)
		}
		prev = cur
	}
}
