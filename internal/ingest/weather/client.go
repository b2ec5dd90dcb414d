package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client is a thin HTTP client for a weather advisory feed serving
// JSON alerts per region.
type Client struct {
	client *resty.Client
	region string
}

// NewClient creates a feed client. The baseURL is the feed root; region
// selects which advisories to fetch.
func NewClient(baseURL, region string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(2 * time.Second)

	return &Client{client: c, region: region}
}

// ActiveAdvisories fetches the advisories currently in effect.
func (c *Client) ActiveAdvisories(ctx context.Context) (*advisoryResponse, error) {
	var out advisoryResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("region", c.region).
		SetResult(&out).
		Get("/advisories")
	if err != nil {
		return nil, fmt.Errorf("fetching advisories: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("advisory feed returned %s", resp.Status())
	}

	return &out, nil
}
