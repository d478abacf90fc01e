package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// RenderPriceTerminal outputs the current ticket price.
func RenderPriceTerminal(price decimal.Decimal, cached bool) {
	source := "chain"
	if cached {
		source = "cache"
	}

	fmt.Println()
	fmt.Printf("%s %s ETH %s\n", bold("Ticket Price:"), green(price.String()), cyan(fmt.Sprintf("(via %s)", source)))
	fmt.Println()
}

// RenderPriceJSON outputs the ticket price as structured JSON.
func RenderPriceJSON(price decimal.Decimal, cached bool) error {
	output := map[string]interface{}{
		"price":  price,
		"cached": cached,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
