package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)

		keyID, secret, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "test_key", keyID)
		require.Equal(t, "test_secret", secret)

		var payload struct {
			Amount   int64  `json:"amount"`
			Currency string `json:"currency"`
			Receipt  string `json:"receipt"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, int64(49900), payload.Amount)
		require.Equal(t, "INR", payload.Currency)
		require.Len(t, payload.Receipt, 20)

		json.NewEncoder(w).Encode(Order{
			ID:       "order_test_1",
			Amount:   payload.Amount,
			Currency: payload.Currency,
			Receipt:  payload.Receipt,
			Status:   "created",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test_key", "test_secret")

	order, err := c.CreateOrder(t.Context(), 499)
	require.NoError(t, err)
	require.Equal(t, "order_test_1", order.ID)
	require.Equal(t, int64(49900), order.Amount)
	require.Equal(t, "created", order.Status)
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test_key", "test_secret")

	_, err := c.CreateOrder(t.Context(), 100)
	require.Error(t, err)
}

func TestVerifySignature(t *testing.T) {
	c := NewClient("", "test_key", "test_secret")

	mac := hmac.New(sha256.New, []byte("test_secret"))
	mac.Write([]byte("order_abc|pay_xyz"))
	good := hex.EncodeToString(mac.Sum(nil))

	require.True(t, c.VerifySignature("order_abc", "pay_xyz", good))
	require.False(t, c.VerifySignature("order_abc", "pay_xyz", "deadbeef"))
	require.False(t, c.VerifySignature("order_other", "pay_xyz", good))
}
