// Package webhook delivers lead-capture events to an operator-configured
// HTTP endpoint (CRM, Slack bridge, automation tool).
package webhook

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// LeadEvent is the JSON body POSTed on every captured lead.
type LeadEvent struct {
	LeadID      string    `json:"leadId"`
	Name        string    `json:"name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	SearchQuery string    `json:"searchQuery,omitempty"`
	Source      string    `json:"source,omitempty"`
	CapturedAt  time.Time `json:"capturedAt"`
}

// Notifier is the outbound side-channel the lead service talks to.
type Notifier interface {
	NotifyLeadCaptured(ctx context.Context, event LeadEvent) error
}

// Client is a resty-backed Notifier.
type Client struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client for the given endpoint URL.
func NewClient(url string) *Client {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second)

	return &Client{httpClient: restyClient, url: url}
}

// NotifyLeadCaptured POSTs the event and treats any non-2xx as an error.
func (c *Client) NotifyLeadCaptured(ctx context.Context, event LeadEvent) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(event).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("post lead webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("lead webhook returned status %d", resp.StatusCode())
	}
	return nil
}
