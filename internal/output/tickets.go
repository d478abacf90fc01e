package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rodaine/table"

	"github.com/dmagro/lotteryd/internal/lotto"
)

// RenderTicketsTerminal outputs a player's tickets grouped with the round
// each one was bought in.
func RenderTicketsTerminal(player string, roundIDs []uint64, tickets []lotto.Ticket) {
	fmt.Println()
	fmt.Printf("%s %s\n", bold("Tickets for"), cyan(player))

	if len(tickets) == 0 {
		fmt.Println("  No tickets found for this player.")
		fmt.Println()
		return
	}

	headerFmt := color.New(color.FgCyan, color.Underline).SprintfFunc()
	tbl := table.New("Round", "Numbers", "Registered", "Claimed")
	tbl.WithHeaderFormatter(headerFmt)

	for i, t := range tickets {
		tbl.AddRow(
			roundIDs[i],
			formatNumbers(t.Numbers),
			formatFlag(t.Registered),
			formatFlag(t.Claimed),
		)
	}

	tbl.Print()
	fmt.Println()
}

// RenderTicketsJSON outputs a player's tickets as structured JSON.
func RenderTicketsJSON(player string, roundIDs []uint64, tickets []lotto.Ticket) error {
	entries := make([]map[string]interface{}, 0, len(tickets))
	for i, t := range tickets {
		entries = append(entries, map[string]interface{}{
			"round":      roundIDs[i],
			"numbers":    t.Numbers,
			"registered": t.Registered,
			"claimed":    t.Claimed,
		})
	}

	output := map[string]interface{}{
		"player":  player,
		"count":   len(tickets),
		"tickets": entries,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func formatFlag(set bool) string {
	if set {
		return green("✓")
	}
	return "—"
}
