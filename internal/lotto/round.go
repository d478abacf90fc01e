// Package lotto holds the lottery domain model and the pure conversion
// logic between the contract's on-chain encoding and application values.
package lotto

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// Prize and price amounts serialize as JSON numbers, matching the
	// HTTP contract ({"price": 0.002}, not {"price": "0.002"}).
	decimal.MarshalJSONWithoutQuotes = true
}

// NumbersPerTicket is the count of numbers on a ticket and in a drawing.
const NumbersPerTicket = 6

// MaxNumber is the highest drawable number under the current rules.
const MaxNumber = 59

// Status is a round's lifecycle state. The values form a total order
// reflecting progress and match the contract's status enumerator.
type Status uint8

const (
	// StatusActive means ticket sales are open.
	StatusActive Status = iota
	// StatusDrawing means sales are closed and randomness is pending.
	StatusDrawing
	// StatusRegisterWinningTickets means numbers are drawn and winners
	// must self-register within the registration window.
	StatusRegisterWinningTickets
	// StatusClaimable means the window closed and registered winners may
	// withdraw; unregistered wins forfeit to rollover.
	StatusClaimable
)

var statusNames = [...]string{
	StatusActive:                 "Active",
	StatusDrawing:                "Drawing",
	StatusRegisterWinningTickets: "RegisterWinningTickets",
	StatusClaimable:              "Claimable",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// MarshalJSON renders the status by name, the form served to clients and
// stored in the cache.
func (s Status) MarshalJSON() ([]byte, error) {
	if int(s) >= len(statusNames) {
		return nil, fmt.Errorf("unknown round status %d", uint8(s))
	}
	return json.Marshal(statusNames[s])
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	for i, n := range statusNames {
		if n == name {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown round status %q", name)
}

// Numbers is a drawing or ticket number set. All six entries are zero
// until the round's drawing completes.
type Numbers [NumbersPerTicket]uint8

// Round is one settled or in-progress lottery period. Times are unix
// milliseconds; Prize is in whole currency units.
type Round struct {
	ID                        uint64          `json:"id"`
	StartTime                 int64           `json:"startTime"`
	EndTime                   int64           `json:"endTime"`
	RegisterWinningTicketTime int64           `json:"registerWinningTicketTime"`
	Prize                     decimal.Decimal `json:"prize"`
	TotalTickets              uint64          `json:"totalTickets"`
	TotalWinningTickets       uint64          `json:"totalWinningTickets"`
	WinningNumbers            Numbers         `json:"winningNumbers"`
	Status                    Status          `json:"status"`
}

// HasNumbers reports whether the round's drawing has produced numbers.
func (r Round) HasNumbers() bool {
	for _, n := range r.WinningNumbers {
		if n != 0 {
			return true
		}
	}
	return false
}

// Ticket is a player's wager for one round. Claimed and Registered only
// ever go false -> true, and only on-chain; this service observes them.
type Ticket struct {
	Numbers    Numbers `json:"numbers"`
	Claimed    bool    `json:"claimed"`
	Registered bool    `json:"registered"`
	Player     string  `json:"player"`
}
