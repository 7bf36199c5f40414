package credits

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mdolmen/autour-go/internal/apperr"
)

const (
	appleVerifyURL        = "https://buy.itunes.apple.com/verifyReceipt"
	appleSandboxVerifyURL = "https://sandbox.itunes.apple.com/verifyReceipt"

	// appleSandboxReceiptStatus is returned by the production endpoint when a
	// sandbox receipt is submitted there; the caller must retry against the
	// sandbox endpoint.
	appleSandboxReceiptStatus = 21007

	appleVerifyTimeout = 20 * time.Second
)

type appleVerifyRequest struct {
	ReceiptData string `json:"receipt-data"`
}

type appleVerifyResponse struct {
	Status int `json:"status"`
}

// VerifyAppleReceipt submits a base64 receipt to Apple, retrying against the
// sandbox endpoint on the well-known 21007 status. Any other non-zero
// status is an AuthError.
func VerifyAppleReceipt(client *resty.Client, receiptData string) error {
	status, err := postAppleReceipt(client, appleVerifyURL, receiptData)
	if err != nil {
		return err
	}
	if status == appleSandboxReceiptStatus {
		status, err = postAppleReceipt(client, appleSandboxVerifyURL, receiptData)
		if err != nil {
			return err
		}
	}
	if status != 0 {
		return apperr.Auth(status, "apple receipt verification failed with status %d", status)
	}
	return nil
}

func postAppleReceipt(client *resty.Client, url, receiptData string) (int, error) {
	var out appleVerifyResponse
	resp, err := client.R().
		SetBody(appleVerifyRequest{ReceiptData: receiptData}).
		SetResult(&out).
		Post(url)
	if err != nil {
		return 0, apperr.Upstream(0, "", "apple receipt request failed: %v", err)
	}
	if resp.IsError() {
		return 0, apperr.Upstream(resp.StatusCode(), string(resp.Body()), "apple receipt verification returned %d", resp.StatusCode())
	}
	return out.Status, nil
}
