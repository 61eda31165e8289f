package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"flms/config"

	"github.com/stretchr/testify/assert"
)

func signPayload(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyRazorpaySignature(t *testing.T) {
	config.AppConfig = &config.Config{RazorpaySecret: "test-secret"}

	sig := signPayload("test-secret", "order_123", "pay_456")
	assert.True(t, VerifyRazorpaySignature("order_123", "pay_456", sig))
}

func TestVerifyRazorpaySignatureRejectsTampering(t *testing.T) {
	config.AppConfig = &config.Config{RazorpaySecret: "test-secret"}

	sig := signPayload("test-secret", "order_123", "pay_456")

	assert.False(t, VerifyRazorpaySignature("order_999", "pay_456", sig))
	assert.False(t, VerifyRazorpaySignature("order_123", "pay_999", sig))
	assert.False(t, VerifyRazorpaySignature("order_123", "pay_456", "deadbeef"))
	assert.False(t, VerifyRazorpaySignature("order_123", "pay_456", ""))
}

func TestVerifyRazorpaySignatureWrongSecret(t *testing.T) {
	config.AppConfig = &config.Config{RazorpaySecret: "test-secret"}

	sig := signPayload("other-secret", "order_123", "pay_456")
	assert.False(t, VerifyRazorpaySignature("order_123", "pay_456", sig))
}
