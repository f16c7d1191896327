package cache

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rohmanhakim/html2md/pkg/hashutil"
)

// Key is an opaque fixed-length fingerprint over a request's semantically
// relevant parameters. Two requests with identical semantic parameters map to
// the same Key regardless of caller-side representation order.
type Key string

// KeySpec is the closed set of conversion-affecting fields a Key is derived
// from. Every field is a mandatory input: callers must resolve unset options
// to their defaults before derivation, so an explicit default and an implicit
// default can never produce different keys.
type KeySpec struct {
	URL            string
	IncludeImages  bool
	IncludeTables  bool
	IncludeLinks   bool
	FetchMethod    string
	BrowserType    string
	WaitFor        string
	UseUserProfile bool
}

// DeriveKey computes the fingerprint for a fully resolved request.
//
// Field order is canonicalized by sorting the field=value pairs by field name
// before hashing, so insertion order on the caller side never affects the
// result. The digest is BLAKE3-256 rendered as 64 hex characters; collision
// probability across distinct inputs is cryptographically negligible.
//
// Pure function: no side effects, no clock, no state.
func DeriveKey(spec KeySpec) (Key, error) {
	if spec.URL == "" {
		return "", ErrEmptyResource
	}

	pairs := []string{
		"browser_type=" + spec.BrowserType,
		"fetch_method=" + spec.FetchMethod,
		"include_images=" + strconv.FormatBool(spec.IncludeImages),
		"include_links=" + strconv.FormatBool(spec.IncludeLinks),
		"include_tables=" + strconv.FormatBool(spec.IncludeTables),
		"url=" + spec.URL,
		"use_user_profile=" + strconv.FormatBool(spec.UseUserProfile),
		"wait_for=" + spec.WaitFor,
	}
	sort.Strings(pairs)

	digest, err := hashutil.HashString(strings.Join(pairs, "|"), hashutil.HashAlgoBLAKE3)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}

	return Key(digest), nil
}
