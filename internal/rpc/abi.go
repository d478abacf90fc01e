package rpc

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/sha3"
)

// FunctionSelector computes the 4-byte function selector from a signature
// e.g., "ticketPrice()" -> 0xb65d06f5
func FunctionSelector(signature string) []byte {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write([]byte(signature))
	return hasher.Sum(nil)[:4]
}

// EventTopic computes the 32-byte topic hash for an event signature,
// e.g., "RoundClaimable(uint256)". This is the topic0 used in log filters.
func EventTopic(signature string) string {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write([]byte(signature))
	return "0x" + hex.EncodeToString(hasher.Sum(nil))
}

// EncodeAddress pads an Ethereum address to 32 bytes (left-padded with zeros)
func EncodeAddress(addr string) ([]byte, error) {
	addr = strings.TrimPrefix(strings.ToLower(addr), "0x")
	if len(addr) != 40 {
		return nil, fmt.Errorf("invalid address length: expected 40 hex chars, got %d", len(addr))
	}

	addrBytes, err := hex.DecodeString(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid address hex: %w", err)
	}

	// Left-pad to 32 bytes (address is 20 bytes, goes in last 20 bytes)
	padded := make([]byte, 32)
	copy(padded[12:], addrBytes)
	return padded, nil
}

// EncodeUint256 encodes an unsigned integer as a 32-byte big-endian word.
func EncodeUint256(n uint64) []byte {
	padded := make([]byte, 32)
	new(big.Int).SetUint64(n).FillBytes(padded)
	return padded
}

// Calldata assembles selector + arguments into a 0x-prefixed hex string.
func Calldata(signature string, args ...[]byte) string {
	data := FunctionSelector(signature)
	for _, arg := range args {
		data = append(data, arg...)
	}
	return "0x" + hex.EncodeToString(data)
}

// SplitWords decodes hex-encoded eth_call return data into 32-byte words,
// each as a big.Int. Return data whose length is not a multiple of 32 bytes
// is malformed.
func SplitWords(hexData string) ([]*big.Int, error) {
	hexData = strings.TrimPrefix(hexData, "0x")
	if hexData == "" {
		return nil, nil
	}

	raw, err := hex.DecodeString(hexData)
	if err != nil {
		return nil, fmt.Errorf("invalid return data hex: %w", err)
	}
	if len(raw)%32 != 0 {
		return nil, fmt.Errorf("return data length %d is not word-aligned", len(raw))
	}

	words := make([]*big.Int, 0, len(raw)/32)
	for i := 0; i < len(raw); i += 32 {
		words = append(words, new(big.Int).SetBytes(raw[i:i+32]))
	}
	return words, nil
}

// WordToAddress formats the low 20 bytes of a word as a 0x-prefixed address.
func WordToAddress(word *big.Int) string {
	b := make([]byte, 32)
	word.FillBytes(b)
	return "0x" + hex.EncodeToString(b[12:])
}

// ValidateAddress checks if a string is a valid Ethereum address
func ValidateAddress(addr string) error {
	addr = strings.TrimPrefix(addr, "0x")
	if len(addr) != 40 {
		return fmt.Errorf("invalid address length: expected 40 hex chars (with or without 0x prefix)")
	}
	_, err := hex.DecodeString(addr)
	if err != nil {
		return fmt.Errorf("invalid address: contains non-hex characters")
	}
	return nil
}
