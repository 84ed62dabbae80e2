package types

import "github.com/m-mizutani/goerr/v2"

// Provider is an external notification provider
type Provider string

const (
	ProviderEmail Provider = "email"
	ProviderSlack Provider = "slack"
)

// ErrInvalidProvider is returned for providers outside the known set
var ErrInvalidProvider = goerr.New("invalid provider")

func (x Provider) Validate() error {
	switch x {
	case ProviderEmail, ProviderSlack:
		return nil
	default:
		return goerr.Wrap(ErrInvalidProvider, "unknown provider", goerr.V("provider", x))
	}
}

func (x Provider) String() string {
	return string(x)
}
