package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"

	"flms/config"

	"github.com/go-resty/resty/v2"
)

// RazorpayOrderResponse represents the order object returned by the gateway
type RazorpayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateRazorpayOrder creates an order at the gateway for the given amount in
// paise and returns the gateway's order id.
func CreateRazorpayOrder(amountPaise int64, currency, receipt string) (string, error) {
	client := resty.New()
	resp, err := client.R().
		SetBasicAuth(config.AppConfig.RazorpayKeyID, config.AppConfig.RazorpaySecret).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"amount":          amountPaise,
			"currency":        currency,
			"receipt":         receipt,
			"payment_capture": 1,
		}).
		Post(config.AppConfig.RazorpayApiURL + "/orders")
	if err != nil {
		log.Printf("Razorpay order creation failed: %v", err)
		return "", fmt.Errorf("failed to create gateway order: %v", err)
	}
	if resp.StatusCode() != 200 {
		log.Printf("Razorpay order creation rejected: %s", resp.String())
		return "", fmt.Errorf("gateway rejected order: status %d", resp.StatusCode())
	}

	var orderResp RazorpayOrderResponse
	if err := json.Unmarshal(resp.Body(), &orderResp); err != nil {
		return "", fmt.Errorf("failed to parse gateway response: %v", err)
	}
	if orderResp.ID == "" {
		return "", fmt.Errorf("gateway returned no order id")
	}

	return orderResp.ID, nil
}

// VerifyRazorpaySignature checks the HMAC-SHA256 signature the gateway sends
// with a payment callback. The signed payload is "<order_id>|<payment_id>".
func VerifyRazorpaySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(config.AppConfig.RazorpaySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
