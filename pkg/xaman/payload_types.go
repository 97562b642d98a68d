package xaman

import (
	"encoding/json"
	"time"
)

// PayloadBase carries the fields shared by both create-payload shapes.
type PayloadBase struct {
	// UserToken is a user push token from an earlier sign-in, used to
	// deliver the request straight to the user's device.
	UserToken  string          `json:"user_token,omitempty"`
	Options    *PayloadOptions `json:"options,omitempty"`
	CustomMeta *CustomMeta     `json:"custom_meta,omitempty"`
}

// JSONPayload is a sign request with the transaction as a JSON template.
type JSONPayload struct {
	PayloadBase
	TxJSON Transaction `json:"txjson"`
}

// BlobPayload is a sign request with the transaction as a hex blob.
type BlobPayload struct {
	PayloadBase
	TxBlob string `json:"txblob"`
}

// Transaction is a free-form XRPL transaction template.
type Transaction map[string]any

// NewTransaction returns a template seeded with the transaction type.
func NewTransaction(transactionType string) Transaction {
	return Transaction{"TransactionType": transactionType}
}

// PayloadOptions steer how the Xaman app treats a sign request.
type PayloadOptions struct {
	// Submit asks the app to submit to the XRPL after signing.
	Submit              *bool `json:"submit,omitempty"`
	Pathfinding         *bool `json:"pathfinding,omitempty"`
	PathfindingFallback *bool `json:"pathfinding_fallback,omitempty"`
	MultiSign           *bool `json:"multisign,omitempty"`
	// Expire is the payload lifetime in minutes.
	Expire       *int       `json:"expire,omitempty"`
	Signers      []string   `json:"signers,omitempty"`
	ForceNetwork string     `json:"force_network,omitempty"`
	ReturnURL    *ReturnURL `json:"return_url,omitempty"`
}

// ReturnURL is where the user lands after resolving the payload.
type ReturnURL struct {
	App string `json:"app,omitempty"`
	Web string `json:"web,omitempty"`
}

// CustomMeta attaches caller-owned data to a payload.
type CustomMeta struct {
	// Identifier is the caller's unique id for this payload; the platform
	// enforces uniqueness.
	Identifier  string          `json:"identifier,omitempty"`
	Blob        json.RawMessage `json:"blob,omitempty"`
	Instruction string          `json:"instruction,omitempty"`
}

// CreatedPayload is the handle returned for a freshly created sign
// request.
type CreatedPayload struct {
	UUID   string      `json:"uuid"`
	Next   PayloadNext `json:"next"`
	Refs   PayloadRefs `json:"refs"`
	Pushed bool        `json:"pushed"`
}

// PayloadNext holds the URLs to hand to the user.
type PayloadNext struct {
	Always            string `json:"always"`
	NoPushMsgReceived string `json:"no_push_msg_received,omitempty"`
}

// PayloadRefs holds the payload resources (QR code, status stream).
type PayloadRefs struct {
	QrPNG            string   `json:"qr_png"`
	QrMatrix         string   `json:"qr_matrix"`
	QrURIQualityOpts []string `json:"qr_uri_quality_opts"`
	WebsocketStatus  string   `json:"websocket_status"`
}

// PayloadDetails is the full current state of a sign request. Each fetch
// returns a fresh snapshot.
type PayloadDetails struct {
	Meta        PayloadMeta      `json:"meta"`
	Application Application      `json:"application"`
	Payload     PayloadRequest   `json:"payload"`
	Response    *PayloadResponse `json:"response,omitempty"`
	CustomMeta  *CustomMeta      `json:"custom_meta,omitempty"`
}

// PayloadMeta is the flag set describing where a payload is in its
// lifecycle. At most one of Signed/Cancelled/Expired becomes true.
type PayloadMeta struct {
	Exists              bool     `json:"exists"`
	UUID                string   `json:"uuid"`
	Multisign           bool     `json:"multisign"`
	Submit              bool     `json:"submit"`
	Pathfinding         bool     `json:"pathfinding"`
	PathfindingFallback bool     `json:"pathfinding_fallback"`
	ForceNetwork        string   `json:"force_network,omitempty"`
	Destination         string   `json:"destination"`
	ResolvedDestination string   `json:"resolved_destination"`
	Resolved            bool     `json:"resolved"`
	Signed              bool     `json:"signed"`
	Cancelled           bool     `json:"cancelled"`
	Expired             bool     `json:"expired"`
	Pushed              bool     `json:"pushed"`
	AppOpened           bool     `json:"app_opened"`
	OpenedByDeeplink    *bool    `json:"opened_by_deeplink,omitempty"`
	Immutable           *bool    `json:"immutable,omitempty"`
	ReturnURLApp        string   `json:"return_url_app,omitempty"`
	ReturnURLWeb        string   `json:"return_url_web,omitempty"`
	IsXapp              bool     `json:"is_xapp"`
	Signers             []string `json:"signers,omitempty"`
}

// PayloadRequest echoes the sign request as the platform stored it.
type PayloadRequest struct {
	TxType           string          `json:"tx_type"`
	TxDestination    string          `json:"tx_destination"`
	TxDestinationTag *uint32         `json:"tx_destination_tag,omitempty"`
	RequestJSON      json.RawMessage `json:"request_json"`
	OriginType       string          `json:"origintype,omitempty"`
	SignMethod       string          `json:"signmethod,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	ExpiresAt        time.Time       `json:"expires_at"`
	ExpiresInSeconds int             `json:"expires_in_seconds"`
}

// PayloadResponse is the signer's answer, present once the payload is
// resolved.
type PayloadResponse struct {
	Hex                string `json:"hex,omitempty"`
	TxID               string `json:"txid,omitempty"`
	ResolvedAt         string `json:"resolved_at,omitempty"`
	DispatchedTo       string `json:"dispatched_to,omitempty"`
	DispatchedNodetype string `json:"dispatched_nodetype,omitempty"`
	DispatchedResult   string `json:"dispatched_result,omitempty"`
	MultisignAccount   string `json:"multisign_account,omitempty"`
	Account            string `json:"account,omitempty"`
}

// DeletedPayload is the answer to a cancel request.
type DeletedPayload struct {
	Result     DeletedPayloadResult `json:"result"`
	Meta       PayloadMeta          `json:"meta"`
	CustomMeta *CustomMeta          `json:"custom_meta,omitempty"`
}

type DeletedPayloadResult struct {
	Cancelled bool   `json:"cancelled"`
	Reason    string `json:"reason"`
}

// PayloadEvent is one message delivered to a subscription handler during
// the live window of a payload.
type PayloadEvent struct {
	// UUID identifies the payload the event belongs to.
	UUID string
	// Data is the decoded JSON body of the frame.
	Data json.RawMessage
	// Details is the snapshot taken at subscribe time, not refreshed per
	// event.
	Details *PayloadDetails
	// Close ends the subscription. Safe to call from inside the handler
	// and more than once.
	Close func()
}
