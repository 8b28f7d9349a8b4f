package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRequiresSession(t *testing.T) {
	s := newTestServer(t)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/cart", ""},
		{http.MethodPost, "/cart", `{"productId":"` + s.catalog.Regular.ID + `"}`},
		{http.MethodPatch, "/cart/some-id", `{"quantity":2}`},
		{http.MethodDelete, "/cart/some-id", ""},
	} {
		w := s.do(t, tc.method, tc.path, "", tc.body)
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.method+" "+tc.path)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	}

	w := s.do(t, http.MethodGet, "/cart", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddItem_BodyValidation(t *testing.T) {
	s := newTestServer(t)
	token := s.tokenFor(t, "user-1")

	tests := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{"missing product id", `{}`, http.StatusBadRequest, "Product ID required"},
		{"empty product id", `{"productId":""}`, http.StatusBadRequest, "Product ID required"},
		{"zero quantity", `{"productId":"` + s.catalog.Regular.ID + `","quantity":0}`, http.StatusBadRequest, "Valid quantity required"},
		{"fractional quantity", `{"productId":"` + s.catalog.Regular.ID + `","quantity":1.5}`, http.StatusBadRequest, "Valid quantity required"},
		{"unknown field", `{"productId":"` + s.catalog.Regular.ID + `","price":1}`, http.StatusBadRequest, "Invalid request body"},
		{"malformed json", `{"productId":`, http.StatusBadRequest, "Invalid request body"},
		{"unknown product", `{"productId":"does-not-exist"}`, http.StatusNotFound, "Product not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/cart", token, tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.message, decode(t, w)["error"])
		})
	}

	w := s.do(t, http.MethodGet, "/cart/count", token, "")
	assert.JSONEq(t, `{"count":0}`, w.Body.String())
}

func TestCartLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.tokenFor(t, "user-1")

	w := s.do(t, http.MethodPost, "/cart", token, `{"productId":"`+s.catalog.Regular.ID+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	added := decode(t, w)
	assert.Equal(t, true, added["success"])
	item := added["item"].(map[string]interface{})
	assert.Equal(t, float64(1), item["quantity"])
	itemID := item["id"].(string)

	w = s.do(t, http.MethodPost, "/cart", token, `{"productId":"`+s.catalog.Regular.ID+`","quantity":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), decode(t, w)["item"].(map[string]interface{})["quantity"])

	w = s.do(t, http.MethodPost, "/cart", token, `{"productId":"`+s.catalog.Sale.ID+`","quantity":1}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/cart", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	cart := decode(t, w)
	assert.Len(t, cart["items"], 2)
	assert.Equal(t, float64(4), cart["totalItems"])
	assert.Equal(t, float64(480+960), cart["totalPrice"])

	w = s.do(t, http.MethodPatch, "/cart/"+itemID, token, `{"quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Valid quantity required", decode(t, w)["error"])

	w = s.do(t, http.MethodPatch, "/cart/"+itemID, token, `{"quantity":"two"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Valid quantity required", decode(t, w)["error"])

	w = s.do(t, http.MethodPatch, "/cart/"+itemID, s.tokenFor(t, "user-2"), `{"quantity":9}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Item not found", decode(t, w)["error"])

	w = s.do(t, http.MethodPatch, "/cart/"+itemID, token, `{"quantity":5}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(5), decode(t, w)["item"].(map[string]interface{})["quantity"])

	w = s.do(t, http.MethodGet, "/cart/count", token, "")
	assert.JSONEq(t, `{"count":6}`, w.Body.String())

	w = s.do(t, http.MethodDelete, "/cart/"+itemID, token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = s.do(t, http.MethodDelete, "/cart/"+itemID, token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/cart/count", token, "")
	assert.JSONEq(t, `{"count":1}`, w.Body.String())
}

func TestCartCount_Anonymous(t *testing.T) {
	s := newTestServer(t)
	for _, token := range []string{"", "not-a-token"} {
		w := s.do(t, http.MethodGet, "/cart/count", token, "")
		assert.Equal(t, http.StatusOK, w.Code, "token %q", token)
		assert.JSONEq(t, `{"count":0}`, w.Body.String())
	}
}
