package webserver_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/golang-jwt/jwt/v4"
)

func signedIDToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("provider-key"))
	if err != nil {
		t.Fatalf("Unexpected error signing id_token: %v", err)
	}
	return token
}

func TestLoginRedirectsToProvider(t *testing.T) {
	env := newTestEnv(t)

	req, _ := http.NewRequest(http.MethodGet, "/login", nil)

	response, err := env.app.Test(req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if response.StatusCode != http.StatusFound {
		t.Fatalf("Expected a redirect, got %d", response.StatusCode)
	}

	location, _ := response.Location()
	if location.Host != "login.example" {
		t.Errorf("Expected a redirect to the identity provider, got %s", location)
	}
	state := location.Query().Get("state")
	if state == "" {
		t.Fatal("Expected a state parameter")
	}

	var stateCookie string
	for _, cookie := range response.Cookies() {
		if cookie.Name == "oauth_state" {
			stateCookie = cookie.Value
		}
	}
	if stateCookie != state {
		t.Error("Expected the state to be stored in a cookie")
	}
}

func TestCallbackSignsIn(t *testing.T) {
	env := newTestEnv(t)
	env.authFlow.idToken = signedIDToken(t, jwt.MapClaims{
		"oid":                            "member-1",
		"name":                           "Jane Doe",
		"emails":                         []string{"jane@example.com"},
		"extension_MembershipNumber":     "OJC123",
		"extension_MemberJoinedDate":     float64(1748779200),
		"extension_MemberExpirationDate": float64(1774915200000), // milliseconds
	})

	req, _ := http.NewRequest(http.MethodGet, "/auth/callback?state=xyz&code=authcode", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "xyz"})

	response, err := env.app.Test(req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if response.StatusCode != http.StatusFound {
		t.Fatalf("Expected a redirect, got %d", response.StatusCode)
	}
	if location, _ := response.Location(); location.Path != "/" {
		t.Errorf("Expected a redirect to the home page, got %s", location.Path)
	}

	var session *http.Cookie
	for _, cookie := range response.Cookies() {
		if cookie.Name == "session" {
			session = cookie
		}
	}
	if session == nil || session.Value == "" {
		t.Fatal("Expected a session cookie")
	}

	// The session cookie signs the member in on subsequent requests.
	home, _ := http.NewRequest(http.MethodGet, "/", nil)
	home.AddCookie(session)

	response, err = env.app.Test(home)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(response.Body)
	if err != nil {
		t.Fatalf("Unexpected error parsing response: %v", err)
	}
	if !strings.Contains(doc.Find("h1").Text(), "Jane Doe") {
		t.Error("Expected the member name on the home page")
	}
	if !strings.Contains(doc.Text(), "OJC123") {
		t.Error("Expected the membership number on the home page")
	}
	// The millisecond expiration is normalized before formatting.
	if !strings.Contains(doc.Text(), "March 31, 2026") {
		t.Error("Expected the formatted expiration date on the home page")
	}
}

func TestCallbackStateMismatch(t *testing.T) {
	env := newTestEnv(t)

	req, _ := http.NewRequest(http.MethodGet, "/auth/callback?state=evil&code=authcode", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "xyz"})

	response, err := env.app.Test(req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if response.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected %d, got %d", http.StatusUnauthorized, response.StatusCode)
	}
}

func TestCallbackExchangeFailure(t *testing.T) {
	env := newTestEnv(t)
	env.authFlow.exchangeErr = errMockFailure

	req, _ := http.NewRequest(http.MethodGet, "/auth/callback?state=xyz&code=authcode", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "xyz"})

	response, err := env.app.Test(req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if response.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected %d, got %d", http.StatusUnauthorized, response.StatusCode)
	}
}

func TestSignOut(t *testing.T) {
	env := newTestEnv(t)

	req, _ := http.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(sessionCookie(t, memberSession()))

	response, err := env.app.Test(req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if response.StatusCode != http.StatusFound {
		t.Fatalf("Expected a redirect, got %d", response.StatusCode)
	}
	if location, _ := response.Location(); location.Host != "login.example" {
		t.Errorf("Expected a redirect through the provider logout, got %s", location)
	}

	var cleared bool
	for _, cookie := range response.Cookies() {
		if cookie.Name == "session" && cookie.Value == "" {
			cleared = true
		}
	}
	if !cleared {
		t.Error("Expected the session cookie to be cleared")
	}
}
