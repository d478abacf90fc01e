// Package output renders lottery data for the terminal and as JSON.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rodaine/table"

	"github.com/dmagro/lotteryd/internal/lotto"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

// RenderRoundsTerminal outputs the settled round history as a table,
// newest round first.
func RenderRoundsTerminal(rounds []lotto.Round) {
	fmt.Println()
	fmt.Printf("%s\n", bold(fmt.Sprintf("Settled Rounds (%d)", len(rounds))))

	if len(rounds) == 0 {
		fmt.Println("  No settled rounds in cache yet.")
		fmt.Println()
		return
	}

	headerFmt := color.New(color.FgCyan, color.Underline).SprintfFunc()
	tbl := table.New("Round", "Ended", "Winning Numbers", "Prize (ETH)", "Tickets", "Winners")
	tbl.WithHeaderFormatter(headerFmt)

	for _, r := range rounds {
		tbl.AddRow(
			r.ID,
			formatRoundTime(r.EndTime),
			formatNumbers(r.WinningNumbers),
			r.Prize.String(),
			r.TotalTickets,
			formatWinnerCount(r.TotalWinningTickets),
		)
	}

	tbl.Print()
	fmt.Println()
}

// RenderRoundsJSON outputs the settled round history as structured JSON.
func RenderRoundsJSON(rounds []lotto.Round) error {
	output := map[string]interface{}{
		"count":  len(rounds),
		"rounds": rounds,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// RenderCurrentRoundTerminal outputs the in-progress round with its
// time-derived lifecycle status.
func RenderCurrentRoundTerminal(r lotto.Round, status lotto.Status) {
	fmt.Println()
	fmt.Printf("%s\n", bold(fmt.Sprintf("Round #%d", r.ID)))
	fmt.Printf("  %s   %s\n", cyan("Status:"), status)
	fmt.Printf("  %s   %s\n", cyan("Starts:"), formatRoundTime(r.StartTime))
	fmt.Printf("  %s     %s\n", cyan("Ends:"), formatRoundTime(r.EndTime))
	fmt.Printf("  %s    %s ETH\n", cyan("Prize:"), r.Prize.String())
	fmt.Printf("  %s  %d\n", cyan("Tickets:"), r.TotalTickets)
	if r.HasNumbers() {
		fmt.Printf("  %s  %s\n", cyan("Numbers:"), formatNumbers(r.WinningNumbers))
	}
	fmt.Println()
}

// RenderCurrentRoundJSON outputs the in-progress round as structured JSON.
func RenderCurrentRoundJSON(r lotto.Round, status lotto.Status) error {
	output := map[string]interface{}{
		"round":  r,
		"status": status,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func formatRoundTime(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04 UTC")
}

func formatNumbers(nums lotto.Numbers) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprintf("%02d", n)
	}
	return cyan(strings.Join(parts, " "))
}

func formatWinnerCount(n uint64) string {
	if n == 0 {
		return "—"
	}
	return green(fmt.Sprintf("%d", n))
}

// DisableColors turns off color output (for non-TTY or JSON mode)
func DisableColors() {
	color.NoColor = true
}

// IsTerminal returns true if stdout is a terminal
func IsTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
