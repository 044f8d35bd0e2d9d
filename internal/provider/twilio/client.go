// Package twilio implements the verification provider on top of the Twilio
// Verify v2 REST API.
package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/wellness-compass/backend/internal/config"
	"github.com/wellness-compass/backend/internal/provider"
)

const defaultBaseURL = "https://verify.twilio.com/v2"

const channelSMS = "sms"

type Client struct {
	accountSID       string
	authToken        string
	verifyServiceSID string
	baseURL          string
	httpClient       *http.Client
}

func NewClient(cfg config.TwilioConfig) *Client {
	return &Client{
		accountSID:       cfg.AccountSID,
		authToken:        cfg.AuthToken,
		verifyServiceSID: cfg.VerifyServiceSID,
		baseURL:          defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Configured() bool {
	return c.accountSID != "" && c.authToken != "" && c.verifyServiceSID != ""
}

// Start requests an SMS challenge for phoneNumber and returns Twilio's
// verification SID.
func (c *Client) Start(ctx context.Context, phoneNumber string) (*provider.StartResult, error) {
	form := url.Values{}
	form.Set("To", phoneNumber)
	form.Set("Channel", channelSMS)

	endpoint := fmt.Sprintf("%s/Services/%s/Verifications", c.baseURL, c.verifyServiceSID)

	var res verificationResponse
	if err := c.postForm(ctx, endpoint, form, &res); err != nil {
		return nil, err
	}

	return &provider.StartResult{SID: res.SID}, nil
}

// Check submits a code against the pending challenge for phoneNumber.
func (c *Client) Check(ctx context.Context, phoneNumber string, code string) error {
	form := url.Values{}
	form.Set("To", phoneNumber)
	form.Set("Code", code)

	endpoint := fmt.Sprintf("%s/Services/%s/VerificationCheck", c.baseURL, c.verifyServiceSID)

	var res verificationCheckResponse
	if err := c.postForm(ctx, endpoint, form, &res); err != nil {
		return err
	}

	if res.Status != statusApproved {
		return provider.ErrCodeRejected
	}

	return nil
}

// postForm performs an authenticated form POST and decodes the response.
// Non-2xx responses are turned into provider errors carrying Twilio's own
// message where one is present.
func (c *Client) postForm(ctx context.Context, endpoint string, form url.Values, out interface{}) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return pkgerrors.Wrap(err, "build twilio request")
	}

	httpReq.SetBasicAuth(c.accountSID, c.authToken)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &provider.Error{Message: fmt.Sprintf("Twilio service error: %s", err.Error())}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return pkgerrors.Wrap(err, "read twilio response")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var errRes errorResponse
		if jsonErr := json.Unmarshal(body, &errRes); jsonErr == nil && errRes.Message != "" {
			return &provider.Error{Message: errRes.Message}
		}
		return &provider.Error{Message: fmt.Sprintf("Twilio error %d", resp.StatusCode)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return pkgerrors.Wrap(err, "decode twilio response")
	}

	return nil
}
