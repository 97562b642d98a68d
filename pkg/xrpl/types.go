package xrpl

import "encoding/json"

// TransactionResult is the result object of a tx command.
type TransactionResult struct {
	Validated bool             `json:"validated"`
	Status    string           `json:"status"`
	Meta      *TransactionMeta `json:"meta,omitempty"`
	Tx        map[string]any   `json:"tx,omitempty"`

	// Raw is the complete node response the result was decoded from.
	Raw json.RawMessage `json:"-"`
}

// TransactionMeta carries the metadata of an executed transaction.
// DeliveredAmount is left raw since it is either a drops string or an
// IOU object; use ParseDeliveredAmount to interpret it.
type TransactionMeta struct {
	TransactionResult string          `json:"TransactionResult"`
	DeliveredAmount   json.RawMessage `json:"delivered_amount,omitempty"`
	AffectedNodes     json.RawMessage `json:"AffectedNodes,omitempty"`
}

// AccountResult is the result object of an account_info command.
type AccountResult struct {
	AccountData AccountData `json:"account_data"`
	Validated   bool        `json:"validated"`
}

// AccountData is the ledger's account root entry. Balance is in drops.
type AccountData struct {
	Account    string `json:"Account"`
	Balance    string `json:"Balance"`
	OwnerCount uint32 `json:"OwnerCount"`
	Sequence   uint32 `json:"Sequence"`
}
