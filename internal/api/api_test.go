package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/nvalverde/tourvia-be/internal/auth"
	"github.com/nvalverde/tourvia-be/internal/database"
	"github.com/nvalverde/tourvia-be/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	eventService := services.NewEventService(db)
	router := NewRouter(RouterDeps{
		DB:           db,
		Users:        services.NewUserService(db, eventService),
		Sessions:     services.NewSessionService(db),
		Catalog:      services.NewCatalogService(db),
		Availability: services.NewAvailabilityService(db),
		Orders:       services.NewOrderService(db, eventService),
		Events:       eventService,
		CORSOrigin:   "http://localhost:3000",
		SecureCookie: false,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func postJSON(t *testing.T, client *http.Client, url string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := client.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRegisterLoginWhoamiLogout(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	resp := postJSON(t, client, srv.URL+"/api/v1/auth/register", map[string]string{
		"name":     "Ana",
		"email":    "a@x.com",
		"password": "sup3rsecret",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var registered struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&registered))
	assert.NotEmpty(t, registered.ID)

	resp = postJSON(t, client, srv.URL+"/api/v1/auth/login", map[string]string{
		"email":    "a@x.com",
		"password": "sup3rsecret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == auth.SessionCookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie, "login must set the session cookie")
	assert.True(t, sessionCookie.HttpOnly)
	assert.Equal(t, "/", sessionCookie.Path)
	assert.InDelta(t, int(services.SessionTTL.Seconds()), sessionCookie.MaxAge, 60)

	var loggedIn struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loggedIn))
	assert.Equal(t, registered.ID, loggedIn.ID)

	// Whoami via the cookie jar.
	whoResp, err := client.Get(srv.URL + "/api/v1/auth/me")
	require.NoError(t, err)
	defer whoResp.Body.Close()
	require.Equal(t, http.StatusOK, whoResp.StatusCode)

	var who struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(whoResp.Body).Decode(&who))
	assert.Equal(t, registered.ID, who.ID)

	// Logout revokes the session; whoami then fails.
	resp = postJSON(t, client, srv.URL+"/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	whoResp, err = client.Get(srv.URL + "/api/v1/auth/me")
	require.NoError(t, err)
	defer whoResp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, whoResp.StatusCode)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	resp := postJSON(t, client, srv.URL+"/api/v1/auth/register", map[string]string{
		"name":     "Ana",
		"email":    "a@x.com",
		"password": "sup3rsecret",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	wrongPassword := postJSON(t, client, srv.URL+"/api/v1/auth/login", map[string]string{
		"email":    "a@x.com",
		"password": "wrongpassword",
	})
	unknownEmail := postJSON(t, client, srv.URL+"/api/v1/auth/login", map[string]string{
		"email":    "nobody@x.com",
		"password": "sup3rsecret",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.StatusCode)

	wrongBody, err := io.ReadAll(wrongPassword.Body)
	require.NoError(t, err)
	unknownBody, err := io.ReadAll(unknownEmail.Body)
	require.NoError(t, err)
	assert.Equal(t, wrongBody, unknownBody, "failure causes must not be distinguishable")
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	resp, err := client.Get(srv.URL + "/api/v1/orders")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOrderAndAvailabilityFlow(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	resp := postJSON(t, client, srv.URL+"/api/v1/auth/register", map[string]string{
		"name":     "Ana",
		"email":    "a@x.com",
		"password": "sup3rsecret",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, client, srv.URL+"/api/v1/auth/login", map[string]string{
		"email":    "a@x.com",
		"password": "sup3rsecret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	bookingTime := time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC)
	resp = postJSON(t, client, srv.URL+"/api/v1/orders", map[string]any{
		"resourceId":   "rest-1",
		"resourceType": "restaurant",
		"bookingTime":  bookingTime.Format(time.RFC3339),
		"partySize":    4,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var order struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&order))
	assert.Equal(t, "pending", order.Status)

	// The pending order counts against availability.
	availURL := fmt.Sprintf("%s/api/v1/restaurants/rest-1/availability?start=%s&end=%s",
		srv.URL,
		bookingTime.Add(-time.Hour).Format(time.RFC3339),
		bookingTime.Add(time.Hour).Format(time.RFC3339))
	availResp, err := client.Get(availURL)
	require.NoError(t, err)
	defer availResp.Body.Close()
	require.Equal(t, http.StatusOK, availResp.StatusCode)

	var avail struct {
		Capacity       int `json:"capacity"`
		ConfirmedCount int `json:"confirmedCount"`
		PendingCount   int `json:"pendingCount"`
		Available      int `json:"available"`
	}
	require.NoError(t, json.NewDecoder(availResp.Body).Decode(&avail))
	assert.Equal(t, 40, avail.Capacity)
	assert.Equal(t, 1, avail.PendingCount)
	assert.Equal(t, 39, avail.Available)

	// Cancelling releases the capacity.
	resp = postJSON(t, client, srv.URL+"/api/v1/orders/"+order.ID+"/cancel", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	availResp, err = client.Get(availURL)
	require.NoError(t, err)
	defer availResp.Body.Close()
	require.NoError(t, json.NewDecoder(availResp.Body).Decode(&avail))
	assert.Equal(t, 0, avail.PendingCount)
	assert.Equal(t, 40, avail.Available)
}

func TestAvailabilityRejectsBadWindows(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	// Inverted window.
	start := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	url := fmt.Sprintf("%s/api/v1/restaurants/rest-1/availability?start=%s&end=%s",
		srv.URL, start.Format(time.RFC3339), start.Add(-time.Hour).Format(time.RFC3339))
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Unparseable timestamps.
	resp, err = client.Get(srv.URL + "/api/v1/restaurants/rest-1/availability?start=yesterday&end=tomorrow")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	// Bad email shape.
	resp := postJSON(t, client, srv.URL+"/api/v1/auth/register", map[string]string{
		"name":     "Ana",
		"email":    "not-an-email",
		"password": "sup3rsecret",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Short password.
	resp = postJSON(t, client, srv.URL+"/api/v1/auth/register", map[string]string{
		"name":     "Ana",
		"email":    "a@x.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Duplicate email surfaces as a conflict.
	resp = postJSON(t, client, srv.URL+"/api/v1/auth/register", map[string]string{
		"name":     "Ana",
		"email":    "a@x.com",
		"password": "sup3rsecret",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = postJSON(t, client, srv.URL+"/api/v1/auth/register", map[string]string{
		"name":     "Ana Again",
		"email":    "a@x.com",
		"password": "otherpassword",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
