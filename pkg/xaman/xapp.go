package xaman

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/xrpl-community/xaman-go/pkg/log"
)

// OTTData is the one-time token payload handed to an xApp on launch.
type OTTData struct {
	Locale        string         `json:"locale,omitempty"`
	Version       string         `json:"version,omitempty"`
	Account       string         `json:"account,omitempty"`
	AccountAccess string         `json:"accountaccess,omitempty"`
	AccountType   string         `json:"accounttype,omitempty"`
	Style         string         `json:"style,omitempty"`
	Origin        *OTTOrigin     `json:"origin,omitempty"`
	User          string         `json:"user"`
	UserDevice    *OTTUserDevice `json:"user_device,omitempty"`
	AccountInfo   OTTAccountInfo `json:"account_info"`
	NodeType      string         `json:"nodetype,omitempty"`
	NodeWSS       string         `json:"nodewss,omitempty"`
	NetworkID     *uint32        `json:"networkid,omitempty"`
	Currency      string         `json:"currency,omitempty"`
	Subscriptions []string       `json:"subscriptions,omitempty"`
}

type OTTOrigin struct {
	Type string         `json:"type,omitempty"`
	Data *OTTOriginData `json:"data,omitempty"`
}

type OTTOriginData struct {
	Payload string `json:"payload,omitempty"`
}

type OTTUserDevice struct {
	Currency string `json:"currency,omitempty"`
}

type OTTAccountInfo struct {
	Account         string `json:"account"`
	Name            string `json:"name,omitempty"`
	Domain          string `json:"domain,omitempty"`
	Blocked         bool   `json:"blocked"`
	Source          string `json:"source"`
	KycApproved     bool   `json:"kycApproved"`
	ProSubscription bool   `json:"proSubscription"`
}

// PushRequest delivers a push notification to a user the application
// holds a push token for.
type PushRequest struct {
	UserToken string          `json:"user_token"`
	Subtitle  string          `json:"subtitle,omitempty"`
	Body      string          `json:"body"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// EventRequest is a push that also lands in the user's xApp event list.
type EventRequest struct {
	PushRequest
	Silent bool `json:"silent,omitempty"`
}

type EventResponse struct {
	Pushed bool   `json:"pushed"`
	UUID   string `json:"uuid,omitempty"`
}

type PushResponse struct {
	Pushed bool `json:"pushed"`
}

// XAppClient covers the xApp endpoints of the platform API.
type XAppClient struct {
	http      *httpClient
	apiSecret string
	lg        log.Logger
}

func newXAppClient(http *httpClient, opts Options, lg log.Logger) *XAppClient {
	return &XAppClient{
		http:      http,
		apiSecret: opts.APISecret,
		lg:        lg.WithName("xapp"),
	}
}

// GetOneTimeTokenData redeems an xApp one-time token. Tokens are single
// use; a second fetch needs ReFetchOneTimeTokenData.
func (c *XAppClient) GetOneTimeTokenData(ctx context.Context, oneTimeToken string) (*OTTData, error) {
	if strings.TrimSpace(oneTimeToken) == "" {
		return nil, &ValidationError{Message: "one-time token cannot be empty"}
	}

	var out OTTData
	if err := c.http.do(ctx, http.MethodGet, "platform/xapp/ott/"+oneTimeToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReFetchOneTimeTokenData fetches an already redeemed one-time token
// again, authenticated with an access hash derived from the token, the
// API secret and the device id.
func (c *XAppClient) ReFetchOneTimeTokenData(ctx context.Context, oneTimeToken, deviceID string) (*OTTData, error) {
	if strings.TrimSpace(oneTimeToken) == "" {
		return nil, &ValidationError{Message: "one-time token cannot be empty"}
	}
	if strings.TrimSpace(deviceID) == "" {
		return nil, &ValidationError{Message: "device id cannot be empty"}
	}

	hash := accessHash(oneTimeToken, c.apiSecret, deviceID)

	var out OTTData
	if err := c.http.do(ctx, http.MethodGet, "platform/xapp/ott/"+oneTimeToken+"/"+hash, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Event sends an xApp event notification to a user.
func (c *XAppClient) Event(ctx context.Context, request EventRequest) (*EventResponse, error) {
	if err := validatePush(request.PushRequest); err != nil {
		return nil, err
	}

	var out EventResponse
	if err := c.http.do(ctx, http.MethodPost, "platform/xapp/event", request, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Push sends a plain push notification to a user.
func (c *XAppClient) Push(ctx context.Context, request PushRequest) (*PushResponse, error) {
	if err := validatePush(request); err != nil {
		return nil, err
	}

	var out PushResponse
	if err := c.http.do(ctx, http.MethodPost, "platform/xapp/push", request, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func validatePush(request PushRequest) error {
	if strings.TrimSpace(request.UserToken) == "" {
		return &ValidationError{Message: "user token cannot be empty"}
	}
	if strings.TrimSpace(request.Body) == "" {
		return &ValidationError{Message: "body cannot be empty"}
	}
	return nil
}

// accessHash is sha1("<ott>.<secret>.<deviceid>" uppercased), rendered as
// lowercase hex.
func accessHash(oneTimeToken, apiSecret, deviceID string) string {
	input := strings.ToUpper(oneTimeToken + "." + apiSecret + "." + deviceID)
	sum := sha1.Sum([]byte(input))
	return hex.EncodeToString(sum[:])
}
