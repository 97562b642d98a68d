package xrpl

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	rgxAccount     = regexp.MustCompile(`^r[1-9A-HJ-NP-Za-km-z]{25,33}$`)
	rgxSHA512Half  = regexp.MustCompile(`^[A-Fa-f0-9]{64}$`)
	rgxUUID        = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`)
	rgxCurrencyHex = regexp.MustCompile(`^[a-fA-F0-9]{40}$`)
	rgxDecodedHex  = regexp.MustCompile(`[a-zA-Z0-9]{3,}`)
	rgxHexPadding  = regexp.MustCompile(`(00)+$`)
)

const (
	dropsPerXRP     = 1_000_000
	currencyMaxLen  = 12
	unknownCurrency = "Unknown"
)

// MaxXRPValue is the largest XRP amount accepted by XrpToDropsString,
// the total supply of the ledger.
var MaxXRPValue = decimal.NewFromInt(100_000_000_000)

// IsAccountAddress reports whether s looks like an XRPL account address
// (base58 with the r prefix, no checksum verification).
func IsAccountAddress(s string) bool {
	return rgxAccount.MatchString(s)
}

// IsSHA512Half reports whether s is a 64-char hex string, the format of
// transaction hashes and other ledger object ids.
func IsSHA512Half(s string) bool {
	return rgxSHA512Half.MatchString(s)
}

// IsValidUUID reports whether s is a lowercase hyphenated UUID, the format
// of payload identifiers and API credentials.
func IsValidUUID(s string) bool {
	return rgxUUID.MatchString(s)
}

// ToFormattedCurrency renders an XRPL currency code for display. Plain
// three-letter codes other than XRP pass through. 40-char hex codes are
// decoded: trailing 00 padding is stripped, and for codes with the 02
// prefix the 8-byte header is skipped first. The decoded text is capped at
// twelve characters. Codes that do not decode to at least three
// alphanumeric characters come back as "???".
func ToFormattedCurrency(currency string) string {
	currency = strings.TrimSpace(currency)
	if len(currency) == 3 && !strings.EqualFold(currency, "XRP") {
		return currency
	}

	if rgxCurrencyHex.MatchString(currency) {
		trimmed := rgxHexPadding.ReplaceAllString(currency, "")
		raw, err := hex.DecodeString(trimmed)
		if err == nil {
			if strings.HasPrefix(trimmed, "02") && len(raw) > 8 {
				raw = raw[8:]
			}
			decoded := string(raw)
			if len(decoded) > currencyMaxLen {
				decoded = decoded[:currencyMaxLen]
			}
			if rgxDecodedHex.MatchString(decoded) && !strings.EqualFold(currency, "XRP") {
				return decoded
			}
		}
	}

	return "???"
}

// XrpToDropsString converts an XRP amount to a whole drops string,
// truncating any fraction below one drop. Amounts above MaxXRPValue are
// rejected.
func XrpToDropsString(value decimal.Decimal) (string, error) {
	if value.GreaterThan(MaxXRPValue) {
		return "", fmt.Errorf("xrp amount %s exceeds the maximum of %s", value, MaxXRPValue)
	}
	return value.Mul(decimal.NewFromInt(dropsPerXRP)).Truncate(0).String(), nil
}

// XrpDropsToDecimal converts a drops string to an XRP amount.
func XrpDropsToDecimal(value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unable to parse drops value %q: %w", value, err)
	}
	return d.Div(decimal.NewFromInt(dropsPerXRP)), nil
}

// ParseDeliveredAmount interprets the delivered_amount field of transaction
// metadata. A JSON string is XRP in drops, an object is an IOU amount with
// its own currency. Anything else yields (0, "Unknown").
func ParseDeliveredAmount(raw json.RawMessage) (decimal.Decimal, string) {
	if len(raw) == 0 {
		return decimal.Zero, unknownCurrency
	}

	var drops string
	if err := json.Unmarshal(raw, &drops); err == nil {
		if amount, err := XrpDropsToDecimal(drops); err == nil {
			return amount, "XRP"
		}
		return decimal.Zero, unknownCurrency
	}

	var iou struct {
		Value    string `json:"value"`
		Currency string `json:"currency"`
	}
	if err := json.Unmarshal(raw, &iou); err == nil && iou.Value != "" && iou.Currency != "" {
		if amount, err := decimal.NewFromString(iou.Value); err == nil {
			return amount, iou.Currency
		}
	}

	return decimal.Zero, unknownCurrency
}
