package utils

import (
	"fmt"
	"log"

	"flms/config"

	"github.com/go-resty/resty/v2"
)

// SendOTPToMobile delivers an OTP over the SMS provider. Failures are
// returned but callers treat dispatch as best-effort.
func SendOTPToMobile(mobile, otp string) error {
	client := resty.New()
	resp, err := client.R().
		SetQueryParams(map[string]string{
			"authorization":    config.AppConfig.LocalTextApi,
			"route":            "otp",
			"variables_values": otp,
			"flash":            "0",
			"numbers":          mobile,
		}).
		Get(config.AppConfig.LocalTextApiUrl)
	if err != nil {
		log.Printf("Error while sending OTP: %v", err)
		return err
	}

	if resp.StatusCode() != 200 {
		log.Printf("Failed to send OTP, response code: %d", resp.StatusCode())
		return fmt.Errorf("failed to send OTP, code: %d", resp.StatusCode())
	}

	log.Println("OTP sent successfully to", mobile)
	return nil
}
