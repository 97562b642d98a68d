package xaman

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/xrpl-community/xaman-go/pkg/log"
)

// JWTAuthorization is the answer to an xApp JWT authorize call. ExpiresAt
// is decoded from the token's expiry claim; zero when the token carries
// none.
type JWTAuthorization struct {
	OTT OTTData `json:"ott"`
	App JWTApp  `json:"app"`
	JWT string  `json:"jwt"`

	ExpiresAt time.Time `json:"-"`
}

type JWTApp struct {
	Name string `json:"name"`
}

// JWTUserData is the stored user data under one or more keys.
type JWTUserData struct {
	Operation string                     `json:"operation"`
	Data      map[string]json.RawMessage `json:"data"`
	Keys      []string                   `json:"keys"`
	Count     int                        `json:"count"`
}

// JWTUserDataUpdate is the answer to a user data write or delete.
type JWTUserDataUpdate struct {
	Operation string `json:"operation"`
	Persisted bool   `json:"persisted"`
}

// NFTokenDetail describes one NFToken as the platform resolves it.
type NFTokenDetail struct {
	Issuer string `json:"issuer,omitempty"`
	Token  string `json:"token,omitempty"`
	Owner  string `json:"owner,omitempty"`
	Name   string `json:"name,omitempty"`
	Image  string `json:"image,omitempty"`
}

// XAppJWTClient covers the JWT-authenticated xApp endpoints. Authorize
// trades a one-time token for a JWT; the other operations present that
// JWT as a bearer token instead of the API credentials.
type XAppJWTClient struct {
	http *httpClient
	lg   log.Logger
}

func newXAppJWTClient(http *httpClient, lg log.Logger) *XAppJWTClient {
	return &XAppJWTClient{
		http: http,
		lg:   lg.WithName("xapp-jwt"),
	}
}

// Authorize trades an xApp one-time token for a JWT.
func (c *XAppJWTClient) Authorize(ctx context.Context, oneTimeToken string) (*JWTAuthorization, error) {
	if strings.TrimSpace(oneTimeToken) == "" {
		return nil, &ValidationError{Message: "one-time token cannot be empty"}
	}

	var out JWTAuthorization
	err := c.http.do(ctx, http.MethodGet, "xapp-jwt/authorize", nil, &out,
		withHeader("X-API-OTT", oneTimeToken))
	if err != nil {
		return nil, err
	}
	out.ExpiresAt = jwtExpiry(out.JWT)

	return &out, nil
}

// GetUserData fetches the user data stored under key.
func (c *XAppJWTClient) GetUserData(ctx context.Context, userJWT, key string) (*JWTUserData, error) {
	if err := validateJWTKey(userJWT, key); err != nil {
		return nil, err
	}

	var out JWTUserData
	err := c.http.do(ctx, http.MethodGet, "xapp-jwt/userdata/"+key, nil, &out,
		withoutCredentials(), withHeader("Authorization", "Bearer "+userJWT))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SetUserData stores a JSON document under key.
func (c *XAppJWTClient) SetUserData(ctx context.Context, userJWT, key string, data json.RawMessage) (*JWTUserDataUpdate, error) {
	if err := validateJWTKey(userJWT, key); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, &ValidationError{Message: "data cannot be empty"}
	}

	var out JWTUserDataUpdate
	err := c.http.do(ctx, http.MethodPost, "xapp-jwt/userdata/"+key, data, &out,
		withoutCredentials(), withHeader("Authorization", "Bearer "+userJWT))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUserData removes the data stored under key.
func (c *XAppJWTClient) DeleteUserData(ctx context.Context, userJWT, key string) (*JWTUserDataUpdate, error) {
	if err := validateJWTKey(userJWT, key); err != nil {
		return nil, err
	}

	var out JWTUserDataUpdate
	err := c.http.do(ctx, http.MethodDelete, "xapp-jwt/userdata/"+key, nil, &out,
		withoutCredentials(), withHeader("Authorization", "Bearer "+userJWT))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetNFTokenDetail resolves one NFToken by its token id.
func (c *XAppJWTClient) GetNFTokenDetail(ctx context.Context, userJWT, tokenID string) (*NFTokenDetail, error) {
	if strings.TrimSpace(userJWT) == "" {
		return nil, &ValidationError{Message: "jwt cannot be empty"}
	}
	if strings.TrimSpace(tokenID) == "" {
		return nil, &ValidationError{Message: "token id cannot be empty"}
	}

	var out NFTokenDetail
	err := c.http.do(ctx, http.MethodGet, "xapp-jwt/nftoken-detail/"+tokenID, nil, &out,
		withoutCredentials(), withHeader("Authorization", "Bearer "+userJWT))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func validateJWTKey(userJWT, key string) error {
	if strings.TrimSpace(userJWT) == "" {
		return &ValidationError{Message: "jwt cannot be empty"}
	}
	if strings.TrimSpace(key) == "" {
		return &ValidationError{Message: "key cannot be empty"}
	}
	return nil
}

// jwtExpiry decodes the exp claim without verifying the signature; the
// platform signed the token, the SDK only surfaces its lifetime.
func jwtExpiry(token string) time.Time {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
