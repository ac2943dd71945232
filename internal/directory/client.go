// Package directory wraps the Microsoft Graph API calls used to manage club
// member accounts in the Azure AD B2C tenant.
package directory

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/oauth2/microsoft"
)

const graphScope = "https://graph.microsoft.com/.default"

type Client struct {
	// BaseURL is the Graph API root, overridable in tests.
	BaseURL string
	// Domain is the B2C tenant domain used to build user principal names,
	// e.g. oviedojeepclub.onmicrosoft.com.
	Domain     string
	HTTPClient *http.Client

	// attrPrefix is the directory extension attribute prefix, derived from
	// the client id of the b2c-extensions-app with dashes stripped.
	attrPrefix string
}

// NewClient builds a Graph client authenticated with the client-credentials
// flow against the tenant's token endpoint. Tokens are acquired and refreshed
// lazily by the underlying oauth2 transport.
func NewClient(tenantID, clientID, clientSecret, domain, extensionsAppID string) *Client {
	oauthConfig := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     microsoft.AzureADEndpoint(tenantID).TokenURL,
		Scopes:       []string{graphScope},
	}

	return &Client{
		BaseURL:    "https://graph.microsoft.com/v1.0",
		Domain:     domain,
		HTTPClient: oauthConfig.Client(context.Background()),
		attrPrefix: "extension_" + strings.ReplaceAll(extensionsAppID, "-", "") + "_",
	}
}

func (c *Client) attr(name string) string {
	return c.attrPrefix + name
}

// MailNickname encodes a sign-in email address the way the directory stores
// it, and UserPrincipalName appends the tenant domain.
func MailNickname(email string) string {
	return strings.Replace(email, "@", "_at_", 1)
}

func (c *Client) userPrincipalName(email string) string {
	return MailNickname(email) + "@" + c.Domain
}
