// Package xrpl provides a small query facade over the XRP Ledger's public
// WebSocket API together with validation and formatting helpers for ledger
// value types: account addresses, transaction hashes, currency codes and
// XRP/drops amounts.
//
// The Client deliberately avoids long-lived connections: each command dials
// the node, exchanges a single request/response pair and disconnects. For
// the low query volumes of a payment flow this keeps the client free of
// reconnect and keepalive machinery.
package xrpl
