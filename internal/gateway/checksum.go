package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Canonicalize serializes a field map deterministically: keys sorted
// lexicographically, empty values skipped, fields joined as "key=value&"
// with the trailing separator removed. Both the outbound form and inbound
// verification must go through this exact serialization, otherwise the
// checksums diverge.
func Canonicalize(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		if params[k] == "" {
			continue
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
		b.WriteByte('&')
	}
	return strings.TrimSuffix(b.String(), "&")
}

// Checksum computes the HMAC-SHA256 of the canonicalized params under the
// merchant key, hex encoded.
func Checksum(params map[string]string, merchantKey string) string {
	mac := hmac.New(sha256.New, []byte(merchantKey))
	mac.Write([]byte(Canonicalize(params)))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyChecksum recomputes the checksum over params and compares it with
// the received value in constant time.
func VerifyChecksum(params map[string]string, merchantKey, received string) bool {
	expected := Checksum(params, merchantKey)
	return hmac.Equal([]byte(expected), []byte(received))
}
