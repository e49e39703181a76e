package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// GenerateSignature creates HMAC-SHA256 signature
func GenerateSignature(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature validates HMAC-SHA256 signature
func VerifySignature(payload []byte, signature, secret string) bool {
	expected := GenerateSignature(payload, secret)
	return hmac.Equal([]byte(signature), []byte(expected))
}

// SignVisitorID signs an analytics visitor ID so the ingest endpoint can
// reject forged or tampered visitor cookies.
func SignVisitorID(visitorID, secret string) string {
	return GenerateSignature([]byte(visitorID), secret)
}

// VerifyVisitorID checks a visitor ID against its signature cookie.
func VerifyVisitorID(visitorID, signature, secret string) bool {
	return VerifySignature([]byte(visitorID), signature, secret)
}
