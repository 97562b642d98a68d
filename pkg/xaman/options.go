package xaman

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Options configures the SDK: platform credentials, endpoints and the
// retry policy of the HTTP sender.
type Options struct {
	// APIKey and APISecret are the application credentials from the Xaman
	// developer console. Both are UUIDs.
	APIKey    string `env:"XAMAN_API_KEY" validate:"required,uuid"`
	APISecret string `env:"XAMAN_API_SECRET" validate:"required,uuid"`

	// BaseURL is the REST endpoint of the platform API.
	BaseURL string `env:"XAMAN_BASE_URL" env-default:"https://xaman.app/api/v1" validate:"required,url"`

	// PayloadWSBaseURL is the base endpoint for payload status streams.
	// The payload UUID is appended per subscription.
	PayloadWSBaseURL string `env:"XAMAN_PAYLOAD_WS_URL" env-default:"wss://xaman.app/sign" validate:"required,url"`

	// HTTPTimeout bounds every single request attempt.
	HTTPTimeout time.Duration `env:"XAMAN_HTTP_TIMEOUT" env-default:"30s"`

	// MaxRetries is the number of extra attempts after a 5xx or transport
	// failure. RetryDelay scales linearly with the attempt number.
	MaxRetries int           `env:"XAMAN_MAX_RETRIES" env-default:"3" validate:"min=0"`
	RetryDelay time.Duration `env:"XAMAN_RETRY_DELAY" env-default:"1s"`
}

// XRPLOptions configures the ledger query facade.
type XRPLOptions struct {
	// NodeURL is the WebSocket endpoint of the XRPL node to query.
	NodeURL string `env:"XRPL_NODE_URL" env-default:"wss://testnet.xrpl-labs.com/" validate:"required,url"`

	// MaxAttempts and RetryInterval drive PollForTransaction.
	MaxAttempts   int           `env:"XRPL_MAX_ATTEMPTS" env-default:"5" validate:"min=1"`
	RetryInterval time.Duration `env:"XRPL_RETRY_INTERVAL" env-default:"3s"`
}

var validate = validator.New()

// Validate checks the options eagerly so credential mistakes fail at
// construction instead of on the first request.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

func (o XRPLOptions) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid xrpl options: %w", err)
	}
	return nil
}

// OptionsFromEnv reads Options from the environment, loading a .env file
// first when one is present in the working directory.
func OptionsFromEnv() (Options, error) {
	_ = godotenv.Load()

	var opts Options
	if err := cleanenv.ReadEnv(&opts); err != nil {
		return Options{}, fmt.Errorf("reading options from env: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// XRPLOptionsFromEnv reads XRPLOptions from the environment the same way.
func XRPLOptionsFromEnv() (XRPLOptions, error) {
	_ = godotenv.Load()

	var opts XRPLOptions
	if err := cleanenv.ReadEnv(&opts); err != nil {
		return XRPLOptions{}, fmt.Errorf("reading xrpl options from env: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return XRPLOptions{}, err
	}
	return opts, nil
}
