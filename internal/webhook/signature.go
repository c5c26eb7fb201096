package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/maxbolgarin/errm"
)

// GitHub signature format: "sha256=<hex>"
const signaturePrefix = "sha256="

// ValidateSignature validates a webhook body against its X-Hub-Signature-256
// header value using HMAC-SHA256 keyed by the shared secret. Comparison is
// constant-time. Errors are generic so no digest details leak to the caller.
func ValidateSignature(secret string, payload []byte, signature string) error {
	if secret == "" {
		return errm.New("webhook secret is not configured")
	}
	if !strings.HasPrefix(signature, signaturePrefix) {
		return errm.New("invalid signature format")
	}

	expectedSignature := strings.TrimPrefix(signature, signaturePrefix)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	calculatedSignature := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expectedSignature), []byte(calculatedSignature)) {
		return errm.New("webhook signature verification failed")
	}

	return nil
}

// Signature computes the header value a sender would attach to the given
// body, in the "sha256=<hex>" format.
func Signature(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}
