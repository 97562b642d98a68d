package xaman

import (
	"encoding/json"
	"time"
)

// KycStatus is the KYC state of a Xaman user.
type KycStatus string

const (
	KycStatusNone       KycStatus = "NONE"
	KycStatusInProgress KycStatus = "IN_PROGRESS"
	KycStatusRejected   KycStatus = "REJECTED"
	KycStatusSuccessful KycStatus = "SUCCESSFUL"
)

// PingResponse answers platform/ping with the application the credentials
// belong to.
type PingResponse struct {
	Pong bool `json:"pong"`
	Auth Auth `json:"auth"`
}

type Auth struct {
	Application Application    `json:"application"`
	Call        Call           `json:"call"`
	Quota       map[string]any `json:"quota,omitempty"`
}

// Application describes the API application tied to the credentials.
type Application struct {
	UUIDv4          string   `json:"uuidv4"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	WebhookURL      string   `json:"webhookurl,omitempty"`
	RedirectURIs    []string `json:"redirecturis,omitempty"`
	Disabled        int      `json:"disabled"`
	IconURL         string   `json:"icon_url,omitempty"`
	IssuedUserToken string   `json:"issued_user_token,omitempty"`
}

type Call struct {
	UUIDv4 string `json:"uuidv4"`
}

// CuratedAssets lists the issuers and currencies Xaman curates.
type CuratedAssets struct {
	Issuers    []string                       `json:"issuers"`
	Currencies []string                       `json:"currencies"`
	Details    map[string]CuratedAssetsIssuer `json:"details"`
}

type CuratedAssetsIssuer struct {
	ID         int                              `json:"id"`
	Name       string                           `json:"name"`
	Domain     string                           `json:"domain,omitempty"`
	Avatar     string                           `json:"avatar,omitempty"`
	Shortlist  int                              `json:"shortlist"`
	Currencies map[string]CuratedAssetsCurrency `json:"currencies"`
}

type CuratedAssetsCurrency struct {
	ID        int    `json:"id"`
	IssuerID  int    `json:"issuer_id"`
	Issuer    string `json:"issuer"`
	Currency  string `json:"currency"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar,omitempty"`
	Shortlist int    `json:"shortlist"`
}

// HookInfo describes a published XRPL hook.
type HookInfo struct {
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	Creator          *HookInfoCreator `json:"creator,omitempty"`
	Xapp             string           `json:"xapp,omitempty"`
	AppUUID          string           `json:"appuuid,omitempty"`
	Icon             string           `json:"icon,omitempty"`
	VerifiedAccounts []string         `json:"verifiedAccounts,omitempty"`
	Audits           []string         `json:"audits,omitempty"`
}

type HookInfoCreator struct {
	Name string `json:"name,omitempty"`
	Mail string `json:"mail,omitempty"`
	Site string `json:"site,omitempty"`
}

// HookInfoEntry pairs a hook hash with its info, for list results.
type HookInfoEntry struct {
	HookHash string
	HookInfo HookInfo
}

// RailsNetwork describes one network from platform/rails.
type RailsNetwork struct {
	ChainID     int                    `json:"chain_id"`
	Color       string                 `json:"color"`
	Name        string                 `json:"name"`
	IsLivenet   bool                   `json:"is_livenet"`
	NativeAsset string                 `json:"native_asset"`
	Endpoints   []RailsNetworkEndpoint `json:"endpoints"`
	Explorers   []RailsNetworkExplorer `json:"explorers"`
	RPC         string                 `json:"rpc,omitempty"`
	Definitions string                 `json:"definitions,omitempty"`
	Icons       RailsNetworkIcons      `json:"icons"`
}

type RailsNetworkEndpoint struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type RailsNetworkExplorer struct {
	Name       string `json:"name"`
	URLTx      string `json:"url_tx"`
	URLAccount string `json:"url_account,omitempty"`
	URLCtid    string `json:"url_ctid,omitempty"`
}

type RailsNetworkIcons struct {
	IconSquare string `json:"icon_square"`
	IconAsset  string `json:"icon_asset"`
}

// RailsEntry pairs a network key with its rails description.
type RailsEntry struct {
	NetworkKey string
	Network    RailsNetwork
}

// PlatformTransaction is the platform's view of an XRPL transaction from
// platform/xrpl-tx, with pre-computed balance changes.
type PlatformTransaction struct {
	TxID           string                                `json:"txid"`
	BalanceChanges map[string][]TransactionBalanceChange `json:"balanceChanges"`
	Node           string                                `json:"node"`
	Transaction    json.RawMessage                       `json:"transaction,omitempty"`
}

type TransactionBalanceChange struct {
	CounterParty string                 `json:"counterparty"`
	Currency     string                 `json:"currency"`
	Value        string                 `json:"value"`
	Formatted    BalanceChangeFormatted `json:"formatted"`
}

type BalanceChangeFormatted struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// RatesResponse carries the exchange rate of one currency against USD and
// XRP.
type RatesResponse struct {
	USD  float64   `json:"USD"`
	XRP  float64   `json:"XRP"`
	Meta RatesMeta `json:"__meta"`
}

type RatesMeta struct {
	Currency RatesCurrency `json:"currency"`
}

type RatesCurrency struct {
	En          string `json:"en"`
	Code        string `json:"code"`
	Symbol      string `json:"symbol,omitempty"`
	IsoDecimals int    `json:"isoDecimals"`
}

// UserTokens is the validity report for one or more user push tokens.
type UserTokens struct {
	Tokens []UserTokenValidity `json:"tokens"`
}

type UserTokenValidity struct {
	UserToken string `json:"user_token"`
	Active    bool   `json:"active"`
	Issued    int64  `json:"issued,omitempty"`
	Expires   int64  `json:"expires,omitempty"`
}

// AccountMeta aggregates what the platform knows about an account.
type AccountMeta struct {
	Account            string              `json:"account"`
	KycApproved        bool                `json:"kycApproved"`
	XummPro            bool                `json:"xummPro"`
	Avatar             string              `json:"avatar"`
	XummProfile        Profile             `json:"xummProfile"`
	ThirdPartyProfiles []ThirdPartyProfile `json:"thirdPartyProfiles,omitempty"`
	GlobaliD           GlobaliD            `json:"globalid"`
}

type Profile struct {
	AccountAlias string `json:"accountAlias,omitempty"`
	OwnerAlias   string `json:"ownerAlias,omitempty"`
}

type ThirdPartyProfile struct {
	AccountAlias string `json:"accountAlias"`
	Source       string `json:"source"`
}

type GlobaliD struct {
	Linked     *time.Time `json:"linked,omitempty"`
	ProfileURL string     `json:"profileUrl,omitempty"`
}
