// Package facebook fetches a page's public events from the Facebook Graph
// API and drives the OAuth dance required to obtain a page-scoped token.
package facebook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	fboauth "golang.org/x/oauth2/facebook"

	"github.com/oviedojeepclub/clubhub/internal/event"
)

const eventFields = "id,name,description,start_time,end_time,place,cover"

type Client struct {
	BaseURL    string
	PageID     string
	HTTPClient *http.Client
}

func NewClient(pageID string) *Client {
	return &Client{
		BaseURL:    "https://graph.facebook.com/v22.0",
		PageID:     pageID,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type pageEventsResponseBody struct {
	Data  []event.Event `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// PageEvents returns the page's events starting from now on. Facebook serves
// them in the same shape the events blob stores.
func (c *Client) PageEvents(ctx context.Context, accessToken string) ([]event.Event, error) {
	params := url.Values{}
	params.Set("access_token", accessToken)
	params.Set("since", strconv.FormatInt(time.Now().Unix(), 10))
	params.Set("fields", eventFields)
	target := fmt.Sprintf("%s/%s/events?%s", c.BaseURL, c.PageID, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer res.Body.Close()

	var response pageEventsResponseBody
	if err := json.NewDecoder(io.LimitReader(res.Body, 1<<20)).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if response.Error != nil {
		return nil, fmt.Errorf("facebook api error %d: %s", response.Error.Code, response.Error.Message)
	}
	return response.Data, nil
}

// OAuthConfig builds the authorization-code flow configuration for reading
// page events on the user's behalf.
func OAuthConfig(appID, appSecret, redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     appID,
		ClientSecret: appSecret,
		RedirectURL:  redirectURI,
		Scopes:       []string{"pages_read_engagement", "pages_read_user_content"},
		Endpoint:     fboauth.Endpoint,
	}
}
