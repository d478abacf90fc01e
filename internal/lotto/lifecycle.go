package lotto

import (
	"fmt"
	"sort"
	"time"
)

// RegistrationWindow is how long winners have to self-register after the
// drawing, under the current contract rules.
const RegistrationWindow = 3 * time.Hour

// StatusAt derives a round's lifecycle state from elapsed wall-clock time
// and the drawing outcome. The contract remains authoritative; this is the
// presentation-side view between contract reads. The result is monotonic
// in now for a fixed round.
func StatusAt(r Round, now time.Time) Status {
	nowMs := now.UnixMilli()

	if nowMs < r.EndTime {
		return StatusActive
	}
	if !r.HasNumbers() {
		return StatusDrawing
	}
	if nowMs < r.RegisterWinningTicketTime {
		return StatusRegisterWinningTickets
	}
	return StatusClaimable
}

// TicketMatchesRound reports whether a ticket's numbers equal the round's
// drawn numbers as sets. Order is not significant; a duplicate in either
// input is a validation error, never a silent pass.
func TicketMatchesRound(ticket, winning Numbers) (bool, error) {
	if err := checkDistinct(ticket); err != nil {
		return false, fmt.Errorf("ticket numbers: %w", err)
	}
	if err := checkDistinct(winning); err != nil {
		return false, fmt.Errorf("winning numbers: %w", err)
	}

	a := sorted(ticket)
	b := sorted(winning)
	return a == b, nil
}

func checkDistinct(nums Numbers) error {
	var seen [256]bool
	for _, n := range nums {
		if seen[n] {
			return fmt.Errorf("duplicate number %d", n)
		}
		seen[n] = true
	}
	return nil
}

func sorted(nums Numbers) Numbers {
	s := nums[:]
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
	return nums
}
