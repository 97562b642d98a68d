package xrpl

import (
	"errors"
	"fmt"
)

var (
	// ErrQuery wraps failures while talking to the ledger node.
	ErrQuery = errors.New("ledger query failed")
	// ErrTxNotFound marks a transaction the ledger does not know (yet).
	ErrTxNotFound = errors.New("transaction not found")
)

// Error is a failure reported by the ledger node itself, as opposed to a
// transport failure reaching it.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", ErrQuery.Error(), e.Message)
}

func (e *Error) Unwrap() error { return ErrQuery }

// TxNotFoundError is returned when the ledger answers txnNotFound for a
// transaction hash. It matches ErrTxNotFound with errors.Is.
type TxNotFoundError struct {
	Hash string
}

func (e *TxNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrTxNotFound.Error(), e.Hash)
}

func (e *TxNotFoundError) Unwrap() error { return ErrTxNotFound }
