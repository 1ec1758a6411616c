package models

import (
	"crypto/sha256"
	"encoding/hex"
)

// ResourceIdentity identifies what is being watched: a URL plus the CSS
// selector applied to it. It is immutable for the lifetime of a monitor
// instance; two monitors with distinct identities never share state.
type ResourceIdentity struct {
	URL      string `json:"url"`
	Selector string `json:"selector"`
}

// Key derives the stable storage key for this identity. The full hex
// SHA-256 digest is used so distinct targets can never collide on a
// truncated prefix.
func (ri ResourceIdentity) Key() string {
	hasher := sha256.New()
	hasher.Write([]byte(ri.URL))
	hasher.Write([]byte{'\n'})
	hasher.Write([]byte(ri.Selector))
	return hex.EncodeToString(hasher.Sum(nil))
}

// String returns a compact human-readable form for log fields.
func (ri ResourceIdentity) String() string {
	if ri.Selector == "" {
		return ri.URL
	}
	return ri.URL + " [" + ri.Selector + "]"
}
