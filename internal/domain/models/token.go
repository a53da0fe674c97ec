package models

import "time"

// ProviderGitHub is the only VCS provider the token store currently tracks.
const ProviderGitHub = "github"

type (
	// AccessToken is the persisted credential for one (user, provider) pair.
	// The store enforces a single live row per pair via upsert semantics.
	AccessToken struct {
		UserID    string
		Provider  string
		Token     string
		UpdatedAt time.Time
	}

	// Principal is the identity resolved from the active session. ProviderToken
	// carries a provider-issued token when the session still holds one; Linked
	// reports whether the user has ever connected the provider, which lets the
	// token cache distinguish "never connected" from "token gone".
	Principal struct {
		UserID        string
		Login         string
		ProviderToken string
		Linked        bool
	}
)
