// Package dnsname canonicalizes fully qualified domain names before lookups
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFC normalization
// 3 Trim surrounding whitespace and a single trailing dot
// 4 IDNA lookup profile mapping (lowercases and punycodes unicode labels)
package dnsname

import (
	"strings"

	perr "lockbox/internal/platform/errors"

	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

// lookup is the IDNA profile used for registry lookups
// strict bidi/validation rules so garbage never reaches the database
var lookup = idna.New(
	idna.MapForLookup(),
	idna.BidiRule(),
	idna.StrictDomainName(true),
)

// Canonical returns the ASCII (punycode) canonical form of a domain name
func Canonical(name string) (string, error) {
	s := strings.TrimSpace(strings.ToValidUTF8(name, ""))
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return "", perr.InvalidArgf("empty domain name")
	}
	s = norm.NFC.String(s)
	ascii, err := lookup.ToASCII(s)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "invalid domain name %q", name)
	}
	if !strings.Contains(ascii, ".") {
		return "", perr.InvalidArgf("domain name %q has no TLD", name)
	}
	return ascii, nil
}

// TLD returns the last label of an already canonical name
func TLD(canonical string) string {
	idx := strings.LastIndexByte(canonical, '.')
	if idx < 0 {
		return ""
	}
	return canonical[idx+1:]
}
