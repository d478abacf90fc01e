package lotto

import (
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/dmagro/lotteryd/internal/rpc"
)

// GenericRevertMessage is returned when a revert payload carries no known
// contract error, or no payload at all.
const GenericRevertMessage = "An unknown contract error occurred. Try again later!"

// User-facing messages for the contract's named errors. Write transactions
// happen outside this service, but the name -> message contract is kept
// here so every consumer reports reverts the same way.
var revertMessages = map[string]string{
	"Lottery__IncorrectRoundStatus()":                "Round is not in the required status",
	"Lottery__TicketHasBeenRegistered()":             "This ticket has been registered",
	"Lottery__TicketHasBeenClaimed()":                "Ticket has been claimed",
	"Lottery__TicketNotOwner()":                      "Ticket does not belong to this player",
	"Lottery__TicketNotRegistered()":                 "Ticket is not registered",
	"Lottery__TicketNumberNotTheSameAsRoundNumber()": "Ticket numbers do not match the round numbers",
	"Lottery__FundTransferFailed()":                  "Prize transfer failed",
}

// revertBySelector indexes the messages by the 4-byte error selector that
// appears at the start of an ABI-encoded revert payload.
var revertBySelector = func() map[string]string {
	m := make(map[string]string, len(revertMessages))
	for sig, msg := range revertMessages {
		hasher := sha3.NewLegacyKeccak256()
		hasher.Write([]byte(sig))
		m[hex.EncodeToString(hasher.Sum(nil)[:4])] = msg
	}
	return m
}()

// RevertMessage maps a revert payload (the RPC error's data field) to a
// user-facing message, falling back to a generic one for unknown errors.
func RevertMessage(data string) string {
	data = strings.ToLower(strings.TrimPrefix(data, "0x"))
	if len(data) < 8 {
		return GenericRevertMessage
	}
	if msg, ok := revertBySelector[data[:8]]; ok {
		return msg
	}
	return GenericRevertMessage
}

// ClassifyError rewrites a reverted contract call into its user-facing
// message. Errors that are not contract reverts pass through unchanged.
func ClassifyError(err error) error {
	var rpcErr *rpc.RPCError
	if errors.As(err, &rpcErr) && rpcErr.Data != "" {
		return errors.New(RevertMessage(rpcErr.Data))
	}
	return err
}
