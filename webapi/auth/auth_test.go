package auth_test

import (
	"net/http"
	"testing"

	"github.com/amirasaad/brokerage/webapi/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAndLogin(t *testing.T) {
	t.Parallel()
	ta := testutils.New(t)

	resp := ta.Request(http.MethodPost, "/auth/signup",
		`{"email":"alice@example.com","name":"Alice","password":"password123"}`, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Customer map[string]any `json:"customer"`
		Account  map[string]any `json:"account"`
		Token    string         `json:"token"`
	}
	testutils.Decode(t, resp, &created)
	assert.Equal(t, "alice@example.com", created.Customer["email"])
	assert.Equal(t, "USDT", created.Account["currency"])
	assert.NotEmpty(t, created.Token)

	resp = ta.Request(http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"password123"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login struct {
		Token string `json:"token"`
	}
	testutils.Decode(t, resp, &login)
	assert.NotEmpty(t, login.Token)

	resp = ta.Request(http.MethodGet, "/customer/me", "", login.Token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSignup_Duplicate(t *testing.T) {
	t.Parallel()
	ta := testutils.New(t)
	body := `{"email":"dup@example.com","name":"Dup","password":"password123"}`

	resp := ta.Request(http.MethodPost, "/auth/signup", body, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = ta.Request(http.MethodPost, "/auth/signup", body, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSignup_Validation(t *testing.T) {
	t.Parallel()
	ta := testutils.New(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"email":`},
		{"bad email", `{"email":"nope","name":"X","password":"password123"}`},
		{"short password", `{"email":"x@example.com","name":"X","password":"123"}`},
		{"missing name", `{"email":"x@example.com","password":"password123"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := ta.Request(http.MethodPost, "/auth/signup", tc.body, "")
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			pd := testutils.Problem(t, resp)
			assert.EqualValues(t, http.StatusBadRequest, pd["status"])
		})
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()
	ta := testutils.New(t)
	resp := ta.Request(http.MethodPost, "/auth/signup",
		`{"email":"carol@example.com","name":"Carol","password":"password123"}`, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	tests := []struct {
		name string
		body string
	}{
		{"unknown email", `{"email":"ghost@example.com","password":"password123"}`},
		{"wrong password", `{"email":"carol@example.com","password":"wrong-one"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := ta.Request(http.MethodPost, "/auth/login", tc.body, "")
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}
