package shared

import (
	"crypto/rand"
	"encoding/hex"
)

func NewID(prefix string) string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return prefix + hex.EncodeToString(b)
}

// NewToken returns a random hex token for email verification links.
func NewToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return hex.EncodeToString(b)
}

type Provider string

const (
	ProviderCredentials Provider = "credentials"
	ProviderGitHub      Provider = "github"
)

func (p Provider) String() string {
	return string(p)
}

func (p Provider) Valid() bool {
	return p == ProviderCredentials || p == ProviderGitHub
}
