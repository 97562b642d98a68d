package xaman

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/xrpl-community/xaman-go/pkg/log"
	"github.com/xrpl-community/xaman-go/pkg/xrpl"
)

// minAvatarDimensions is the smallest square avatar size the platform
// serves.
const minAvatarDimensions = 200

// MiscClient covers the flat platform endpoints: ping, curated assets,
// rates, KYC, hooks, rails, user tokens and account metadata.
type MiscClient struct {
	http *httpClient
	lg   log.Logger
}

func newMiscClient(http *httpClient, lg log.Logger) *MiscClient {
	return &MiscClient{
		http: http,
		lg:   lg.WithName("misc"),
	}
}

// Ping verifies the credentials and returns the application they belong
// to.
func (c *MiscClient) Ping(ctx context.Context) (*PingResponse, error) {
	var out PingResponse
	if err := c.http.do(ctx, http.MethodGet, "platform/ping", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCuratedAssets lists the assets curated by Xaman.
func (c *MiscClient) GetCuratedAssets(ctx context.Context) (*CuratedAssets, error) {
	var out CuratedAssets
	if err := c.http.do(ctx, http.MethodGet, "platform/curated-assets", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetHookInfo fetches the metadata of one published hook by its hash.
func (c *MiscClient) GetHookInfo(ctx context.Context, hookHash string) (*HookInfoEntry, error) {
	if !xrpl.IsSHA512Half(hookHash) {
		return nil, &ValidationError{Message: "invalid hook hash (expecting SHA-512Half)"}
	}

	var info HookInfo
	if err := c.http.do(ctx, http.MethodGet, "platform/hookhash/"+hookHash, nil, &info); err != nil {
		return nil, err
	}
	return &HookInfoEntry{HookHash: hookHash, HookInfo: info}, nil
}

// GetAllHookInfos fetches the metadata of every published hook, sorted by
// hash.
func (c *MiscClient) GetAllHookInfos(ctx context.Context) ([]HookInfoEntry, error) {
	var out map[string]HookInfo
	if err := c.http.do(ctx, http.MethodGet, "platform/hookhash", nil, &out); err != nil {
		return nil, err
	}

	entries := make([]HookInfoEntry, 0, len(out))
	for hash, info := range out {
		entries = append(entries, HookInfoEntry{HookHash: hash, HookInfo: info})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].HookHash < entries[j].HookHash })
	return entries, nil
}

// GetRails lists the networks the Xaman app can operate on, sorted by
// network key.
func (c *MiscClient) GetRails(ctx context.Context) ([]RailsEntry, error) {
	var out map[string]RailsNetwork
	if err := c.http.do(ctx, http.MethodGet, "platform/rails", nil, &out); err != nil {
		return nil, err
	}

	entries := make([]RailsEntry, 0, len(out))
	for key, network := range out {
		entries = append(entries, RailsEntry{NetworkKey: key, Network: network})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].NetworkKey < entries[j].NetworkKey })
	return entries, nil
}

// GetTransaction fetches the platform's view of a ledger transaction,
// including pre-computed balance changes.
func (c *MiscClient) GetTransaction(ctx context.Context, txHash string) (*PlatformTransaction, error) {
	if !xrpl.IsSHA512Half(txHash) {
		return nil, &ValidationError{Message: "invalid transaction hash (expecting SHA-512Half)"}
	}

	var out PlatformTransaction
	if err := c.http.do(ctx, http.MethodGet, "platform/xrpl-tx/"+txHash, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetKycStatus reports the KYC state for an account address (public
// lookup) or a user push token (credentialed POST).
func (c *MiscClient) GetKycStatus(ctx context.Context, userTokenOrAccount string) (KycStatus, error) {
	if strings.TrimSpace(userTokenOrAccount) == "" {
		return "", &ValidationError{Message: "user token or account cannot be empty"}
	}

	if xrpl.IsAccountAddress(userTokenOrAccount) {
		var info struct {
			Account     string `json:"account"`
			KycApproved bool   `json:"kycApproved"`
		}
		err := c.http.do(ctx, http.MethodGet, "platform/kyc-status/"+userTokenOrAccount, nil, &info, withoutCredentials())
		if err != nil {
			return "", err
		}
		if info.KycApproved {
			return KycStatusSuccessful, nil
		}
		return KycStatusNone, nil
	}

	if xrpl.IsValidUUID(userTokenOrAccount) {
		request := map[string]string{"user_token": userTokenOrAccount}
		var info struct {
			KycStatus string `json:"kycStatus"`
		}
		if err := c.http.do(ctx, http.MethodPost, "platform/kyc-status", request, &info); err != nil {
			return "", err
		}
		return kycStatusFromString(info.KycStatus), nil
	}

	return "", &ValidationError{Message: "invalid user token or account provided"}
}

// GetRates fetches the exchange rate of a currency code against USD and
// XRP.
func (c *MiscClient) GetRates(ctx context.Context, currencyCode string) (*RatesResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	if code == "" {
		return nil, &ValidationError{Message: "currency code cannot be empty"}
	}

	var out RatesResponse
	if err := c.http.do(ctx, http.MethodGet, "platform/rates/"+code, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyUserToken checks whether one user push token is still active.
func (c *MiscClient) VerifyUserToken(ctx context.Context, userToken string) (*UserTokens, error) {
	if strings.TrimSpace(userToken) == "" {
		return nil, &ValidationError{Message: "user token cannot be empty"}
	}

	var out UserTokens
	if err := c.http.do(ctx, http.MethodGet, "platform/user-token/"+userToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyUserTokens checks a batch of user push tokens.
func (c *MiscClient) VerifyUserTokens(ctx context.Context, userTokens []string) (*UserTokens, error) {
	if len(userTokens) == 0 {
		return nil, &ValidationError{Message: "user tokens cannot be empty"}
	}

	request := map[string][]string{"tokens": userTokens}
	var out UserTokens
	if err := c.http.do(ctx, http.MethodPost, "platform/user-tokens", request, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAccountMeta fetches what the platform knows about an account.
func (c *MiscClient) GetAccountMeta(ctx context.Context, account string) (*AccountMeta, error) {
	if !xrpl.IsAccountAddress(account) {
		return nil, &ValidationError{Message: "value should be a valid account address"}
	}

	var out AccountMeta
	if err := c.http.do(ctx, http.MethodGet, "platform/account-meta/"+account, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AvatarURL builds the URL of an account's square avatar. Dimensions are
// in pixels, at least 200; padding must not be negative.
func (c *MiscClient) AvatarURL(account string, dimensions, padding int) (string, error) {
	if strings.TrimSpace(account) == "" {
		return "", &ValidationError{Message: "account cannot be empty"}
	}
	if dimensions < minAvatarDimensions {
		return "", &ValidationError{Message: fmt.Sprintf("the minimum (square) dimensions are %d", minAvatarDimensions)}
	}
	if padding < 0 {
		return "", &ValidationError{Message: "the padding should be equal or greater than zero"}
	}

	return fmt.Sprintf("https://xaman.app/avatar/%s_%d_%d.png", account, dimensions, padding), nil
}

func kycStatusFromString(s string) KycStatus {
	switch KycStatus(strings.ToUpper(s)) {
	case KycStatusInProgress:
		return KycStatusInProgress
	case KycStatusRejected:
		return KycStatusRejected
	case KycStatusSuccessful:
		return KycStatusSuccessful
	default:
		return KycStatusNone
	}
}
