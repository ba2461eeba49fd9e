package provider

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"strconv"
	"strings"
)

// Signature is the MD5 digest of parts joined with ":" in upper-case hex.
// Robokassa and Pally sign callbacks this way; it is kept for wire
// compatibility with them only.
func Signature(parts ...string) string {
	sum := md5.Sum([]byte(strings.Join(parts, ":")))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// SignatureMatches compares two hex digests case-insensitively in constant time.
func SignatureMatches(expected, got string) bool {
	e := []byte(strings.ToUpper(strings.TrimSpace(expected)))
	g := []byte(strings.ToUpper(strings.TrimSpace(got)))
	return subtle.ConstantTimeCompare(e, g) == 1
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

func firstOf(values map[string][]string, keys ...string) string {
	for _, k := range keys {
		if v, ok := values[k]; ok && len(v) > 0 && v[0] != "" {
			return strings.TrimSpace(v[0])
		}
	}
	return ""
}
