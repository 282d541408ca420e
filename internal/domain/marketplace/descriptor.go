package marketplace

import (
	"github.com/orderhub/backend/internal/domain/order"
)

// AuthType identifies how a marketplace API expects credentials
type AuthType string

const (
	AuthTypeBearer AuthType = "bearer"
	AuthTypeAPIKey AuthType = "apikey"
	AuthTypeBasic  AuthType = "basic"
)

// Credentials holds the configured credential material for a
// marketplace API. Only presence is ever checked by the core.
type Credentials struct {
	Token    string
	APIKey   string
	Username string
	Password string
}

// Descriptor is the static configuration entity for one marketplace.
// Loaded once at process start, immutable thereafter, read-only to the
// core; safe for concurrent reads without locking.
type Descriptor struct {
	Slug    string
	Name    string
	Icon    string
	Color   string
	Enabled bool

	MockEnabled  bool
	MockDataFile string

	APIBaseURL   string
	OrdersPath   string
	AuthType     AuthType
	RequiresAuth bool
	Credentials  Credentials
}

// APIConfigured reports whether a remote API base URL is present
func (d *Descriptor) APIConfigured() bool {
	return d.APIBaseURL != ""
}

// Info returns the denormalized display metadata attached to orders in
// unified result sets
func (d *Descriptor) Info() order.MarketplaceInfo {
	return order.MarketplaceInfo{Name: d.Name, Icon: d.Icon, Color: d.Color}
}

// CredentialCheck is the outcome of a presence-only credential
// validation. It never blocks read paths.
type CredentialCheck struct {
	Valid bool
	Error string
}

// ValidateCredentials checks that the credential fields required by the
// configured auth type are present. It does not verify correctness.
func (d *Descriptor) ValidateCredentials() CredentialCheck {
	if !d.RequiresAuth {
		return CredentialCheck{Valid: true}
	}

	switch d.AuthType {
	case AuthTypeBearer:
		if d.Credentials.Token == "" {
			return CredentialCheck{Error: "access token not configured"}
		}
	case AuthTypeAPIKey:
		if d.Credentials.APIKey == "" {
			return CredentialCheck{Error: "API key not configured"}
		}
	case AuthTypeBasic:
		if d.Credentials.Username == "" || d.Credentials.Password == "" {
			return CredentialCheck{Error: "basic auth credentials not configured"}
		}
	default:
		return CredentialCheck{Error: "unsupported auth type"}
	}

	return CredentialCheck{Valid: true}
}
