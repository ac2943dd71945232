package emailer

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const acsAPIVersion = "2023-03-31"

// ACS delivers email through the Azure Communication Services REST API,
// signing each request with the resource access key (HMAC-SHA256 scheme).
type ACS struct {
	// Endpoint is the resource endpoint, e.g. https://club.communication.azure.com.
	Endpoint      string
	AccessKey     string
	SenderAddress string
	HTTPClient    *http.Client
}

func NewACS(endpoint, accessKey, senderAddress string) *ACS {
	return &ACS{
		Endpoint:      endpoint,
		AccessKey:     accessKey,
		SenderAddress: senderAddress,
		HTTPClient:    &http.Client{Timeout: 30 * time.Second},
	}
}

type acsRecipient struct {
	Address     string `json:"address"`
	DisplayName string `json:"displayName"`
}

type acsAttachment struct {
	Name            string `json:"name"`
	ContentType     string `json:"contentType"`
	ContentInBase64 string `json:"contentInBase64"`
	ContentID       string `json:"contentId"`
}

type acsSendRequestBody struct {
	SenderAddress string `json:"senderAddress"`
	Content       struct {
		Subject string `json:"subject"`
		HTML    string `json:"html"`
	} `json:"content"`
	Recipients struct {
		To []acsRecipient `json:"to"`
	} `json:"recipients"`
	Attachments []acsAttachment `json:"attachments,omitempty"`
}

// Send delivers a rendered message with the club logo attached inline.
func (a *ACS) Send(toAddress, toName string, msg Message) error {
	payload := acsSendRequestBody{SenderAddress: a.SenderAddress}
	payload.Content.Subject = msg.Subject
	payload.Content.HTML = msg.HTML
	payload.Recipients.To = []acsRecipient{{Address: toAddress, DisplayName: toName}}
	payload.Attachments = []acsAttachment{{
		Name:            "ojc.png",
		ContentType:     "image/png",
		ContentInBase64: base64.StdEncoding.EncodeToString(logoPNG),
		ContentID:       "ojc.png",
	}}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding send request: %w", err)
	}

	endpoint, err := url.Parse(a.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid ACS endpoint: %w", err)
	}
	pathAndQuery := "/emails:send?api-version=" + acsAPIVersion

	req, err := http.NewRequest(http.MethodPost, a.Endpoint+pathAndQuery, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	date := time.Now().UTC().Format(http.TimeFormat)
	contentHash := sha256.Sum256(body)
	contentHashB64 := base64.StdEncoding.EncodeToString(contentHash[:])

	signature, err := a.sign(http.MethodPost, pathAndQuery, date, endpoint.Host, contentHashB64)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-ms-date", date)
	req.Header.Set("x-ms-content-sha256", contentHashB64)
	req.Header.Set("Authorization",
		"HMAC-SHA256 SignedHeaders=x-ms-date;host;x-ms-content-sha256&Signature="+signature)

	res, err := a.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusAccepted && res.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return fmt.Errorf("unexpected status code %d: %s", res.StatusCode, detail)
	}
	return nil
}

func (a *ACS) sign(method, pathAndQuery, date, host, contentHash string) (string, error) {
	key, err := base64.StdEncoding.DecodeString(a.AccessKey)
	if err != nil {
		return "", fmt.Errorf("decoding ACS access key: %w", err)
	}
	stringToSign := method + "\n" + pathAndQuery + "\n" + date + ";" + host + ";" + contentHash
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(stringToSign))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}
