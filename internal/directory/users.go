package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/oviedojeepclub/clubhub/internal/model"
)

type createUserRequestBody struct {
	AccountEnabled    bool            `json:"accountEnabled"`
	DisplayName       string          `json:"displayName"`
	UserPrincipalName string          `json:"userPrincipalName"`
	MailNickname      string          `json:"mailNickname"`
	PasswordProfile   passwordProfile `json:"passwordProfile"`
	Identities        []identity      `json:"identities"`
}

type passwordProfile struct {
	ForceChangePasswordNextSignIn bool   `json:"forceChangePasswordNextSignIn"`
	Password                      string `json:"password"`
}

type identity struct {
	SignInType       string `json:"signInType"`
	Issuer           string `json:"issuer"`
	IssuerAssignedID string `json:"issuerAssignedId"`
}

type userListResponseBody struct {
	Value    []map[string]any `json:"value"`
	NextLink string           `json:"@odata.nextLink"`
}

// CreateMember creates a B2C user with email sign-in and then patches the
// membership extension attributes onto it, mirroring the two-step flow the
// Graph API requires for custom attributes. Returns the new directory id.
func (c *Client) CreateMember(ctx context.Context, email, displayName, password string, details MembershipDetails) (string, error) {
	body := createUserRequestBody{
		AccountEnabled:    true,
		DisplayName:       displayName,
		UserPrincipalName: c.userPrincipalName(email),
		MailNickname:      MailNickname(email),
		PasswordProfile:   passwordProfile{Password: password},
		Identities: []identity{{
			SignInType:       "emailAddress",
			Issuer:           c.Domain,
			IssuerAssignedID: email,
		}},
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, c.BaseURL+"/users", body, http.StatusCreated, &created); err != nil {
		return "", fmt.Errorf("creating user: %w", err)
	}

	update := map[string]any{
		"otherMails":                   []string{email},
		c.attr("MembershipNumber"):     details.Number,
		c.attr("MemberJoinedDate"):     details.Joined,
		c.attr("MemberExpirationDate"): details.Expiration,
	}
	if err := c.do(ctx, http.MethodPatch, c.BaseURL+"/users/"+created.ID, update, http.StatusNoContent, nil); err != nil {
		return "", fmt.Errorf("updating membership attributes: %w", err)
	}

	return created.ID, nil
}

// UpdateExpiration patches a member's expiration date extension attribute.
func (c *Client) UpdateExpiration(ctx context.Context, userID string, expiration int64) error {
	update := map[string]any{
		c.attr("MemberExpirationDate"): expiration,
	}
	if err := c.do(ctx, http.MethodPatch, c.BaseURL+"/users/"+userID, update, http.StatusNoContent, nil); err != nil {
		return fmt.Errorf("updating expiration date: %w", err)
	}
	return nil
}

// All fetches every directory user, following @odata.nextLink paging.
func (c *Client) All(ctx context.Context) ([]model.Member, error) {
	selectFields := "id,displayName,mailNickname,jobTitle," +
		c.attr("MembershipNumber") + "," + c.attr("MemberExpirationDate")
	next := c.BaseURL + "/users?$select=" + url.QueryEscape(selectFields)

	var members []model.Member
	for next != "" {
		var page userListResponseBody
		if err := c.do(ctx, http.MethodGet, next, nil, http.StatusOK, &page); err != nil {
			return nil, fmt.Errorf("fetching users: %w", err)
		}
		for _, obj := range page.Value {
			members = append(members, c.memberFromGraph(obj))
		}
		next = page.NextLink
	}
	return members, nil
}

// Exists reports whether a user with the given sign-in email is still present
// in the directory.
func (c *Client) Exists(ctx context.Context, email string) (bool, error) {
	filter := fmt.Sprintf("userPrincipalName eq '%s'", c.userPrincipalName(email))
	target := c.BaseURL + "/users?$filter=" + url.QueryEscape(filter)

	var page userListResponseBody
	if err := c.do(ctx, http.MethodGet, target, nil, http.StatusOK, &page); err != nil {
		return false, fmt.Errorf("checking user existence: %w", err)
	}
	return len(page.Value) > 0, nil
}

// FamilyMembers returns the directory users sharing a membership number.
func (c *Client) FamilyMembers(ctx context.Context, membershipNumber string) ([]model.Member, error) {
	filter := fmt.Sprintf("%s eq '%s'", c.attr("MembershipNumber"), membershipNumber)
	target := c.BaseURL + "/users?$filter=" + url.QueryEscape(filter)

	var page userListResponseBody
	if err := c.do(ctx, http.MethodGet, target, nil, http.StatusOK, &page); err != nil {
		return nil, fmt.Errorf("fetching family members: %w", err)
	}
	members := make([]model.Member, 0, len(page.Value))
	for _, obj := range page.Value {
		members = append(members, c.memberFromGraph(obj))
	}
	return members, nil
}

func (c *Client) memberFromGraph(obj map[string]any) model.Member {
	member := model.Member{}
	member.ID, _ = obj["id"].(string)
	member.DisplayName, _ = obj["displayName"].(string)
	member.MailNickname, _ = obj["mailNickname"].(string)
	member.JobTitle, _ = obj["jobTitle"].(string)
	member.MembershipNumber, _ = obj[c.attr("MembershipNumber")].(string)
	member.Joined = epochFrom(obj[c.attr("MemberJoinedDate")])
	member.Expiration = epochFrom(obj[c.attr("MemberExpirationDate")])
	return member
}

// epochFrom tolerates the two renderings Graph uses for the extension
// attributes: a JSON number or a stringified integer.
func epochFrom(value any) int64 {
	switch v := value.(type) {
	case float64:
		return int64(v)
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func (c *Client) do(ctx context.Context, method, target string, body any, wantStatus int, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer res.Body.Close()

	// Graph answers PATCH with 200 or 204 depending on the Prefer header.
	if res.StatusCode != wantStatus && !(wantStatus == http.StatusNoContent && res.StatusCode == http.StatusOK) {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return fmt.Errorf("unexpected status code %d: %s", res.StatusCode, detail)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
