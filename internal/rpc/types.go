package rpc

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// Request represents a JSON-RPC 2.0 request sent to an Ethereum node.
type Request struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int           `json:"id"`
}

// Response represents a JSON-RPC 2.0 response from an Ethereum node.
// Result is kept raw so each method can decode its own shape.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError is an error returned by the node. For reverted eth_call
// executions, Data carries the ABI-encoded revert payload.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// Log is an Ethereum event log entry as returned by eth_getLogs.
// Numeric fields arrive as hex strings per the JSON-RPC wire format.
type Log struct {
	Address     string   `json:"address"`
	Topics      []string `json:"topics"`
	Data        string   `json:"data"`
	BlockNumber string   `json:"blockNumber"`
	TxHash      string   `json:"transactionHash"`
	Removed     bool     `json:"removed"`
}

// FilterQuery selects logs by contract address and topic over a block range.
type FilterQuery struct {
	Address   string
	Topics    []string
	FromBlock uint64
	ToBlock   uint64
}

// ParseHexUint64 converts a hex string (with or without 0x prefix) to uint64.
func ParseHexUint64(hex string) (uint64, error) {
	hex = strings.TrimPrefix(hex, "0x")
	if hex == "" {
		return 0, nil
	}

	val := new(big.Int)
	_, ok := val.SetString(hex, 16)
	if !ok {
		return 0, fmt.Errorf("invalid hex string: %s", hex)
	}

	if !val.IsUint64() {
		return 0, fmt.Errorf("value overflows uint64: %s", hex)
	}

	return val.Uint64(), nil
}

// Uint64ToHex converts a uint64 to a 0x-prefixed hex string for RPC calls.
func Uint64ToHex(n uint64) string {
	return fmt.Sprintf("0x%x", n)
}
