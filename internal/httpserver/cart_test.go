package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/skirsanov/gadgetshop/internal/models"
)

func seedProduct(t *testing.T, env *testEnv, name, price string) *models.Product {
	p := &models.Product{
		ProductName:  name,
		ProductDesc:  name + " description",
		ProductPrice: price,
		Category:     "phones",
	}
	require.NoError(t, env.Repo.CreateProduct(t.Context(), p))
	return p
}

func TestAddToCartIncrementsQuantity(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	product := seedProduct(t, env, "iPhone 15", "999")

	body := map[string]any{"UserId": userID, "productId": product.ID}

	rec, c := env.doJSONRequest(http.MethodPost, "/cart/addtocart", body)
	require.NoError(t, env.Cart.AddToCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	rec2, c2 := env.doJSONRequest(http.MethodPost, "/cart/addtocart", body)
	require.NoError(t, env.Cart.AddToCart(c2))
	require.Equal(t, http.StatusOK, rec2.Code)

	var cart models.Cart
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &cart))
	require.Len(t, cart.Items, 1)
	require.Equal(t, 2, cart.Items[0].Quantity)
}

func TestDecreaseBelowZero(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	product := seedProduct(t, env, "Pixel 9", "799")

	body := map[string]any{"UserId": userID, "productId": product.ID}

	_, cAdd := env.doJSONRequest(http.MethodPost, "/cart/addtocart", body)
	require.NoError(t, env.Cart.AddToCart(cAdd))

	recDec, cDec := env.doJSONRequest(http.MethodPut, "/cart/decrease-cart", body)
	require.NoError(t, env.Cart.Decrease(cDec))
	require.Equal(t, http.StatusOK, recDec.Code)

	recDec2, cDec2 := env.doJSONRequest(http.MethodPut, "/cart/decrease-cart", body)
	require.NoError(t, env.Cart.Decrease(cDec2))
	require.Equal(t, http.StatusOK, recDec2.Code)

	var cart models.Cart
	require.NoError(t, json.Unmarshal(recDec2.Body.Bytes(), &cart))
	require.Len(t, cart.Items, 1)
	require.Equal(t, -1, cart.Items[0].Quantity)
}

func TestDecreaseSoftMessages(t *testing.T) {
	env := newTestEnv(t)
	product := seedProduct(t, env, "Galaxy S25", "899")

	rec, c := env.doJSONRequest(http.MethodPut, "/cart/decrease-cart", map[string]any{
		"UserId":    uuid.New(),
		"productId": product.ID,
	})
	require.NoError(t, env.Cart.Decrease(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Cart not found!", resp["message"])

	userID := uuid.New()
	_, cAdd := env.doJSONRequest(http.MethodPost, "/cart/addtocart", map[string]any{
		"UserId":    userID,
		"productId": product.ID,
	})
	require.NoError(t, env.Cart.AddToCart(cAdd))

	recItem, cItem := env.doJSONRequest(http.MethodPut, "/cart/decrease-cart", map[string]any{
		"UserId":    userID,
		"productId": uuid.New(),
	})
	require.NoError(t, env.Cart.Decrease(cItem))
	require.Equal(t, http.StatusOK, recItem.Code)

	var respItem map[string]string
	require.NoError(t, json.Unmarshal(recItem.Body.Bytes(), &respItem))
	require.Equal(t, "Item not found in cart!", respItem["message"])
}

func TestGetCartHydratesProducts(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	product := seedProduct(t, env, "iPad Air", "599.99")

	_, cAdd := env.doJSONRequest(http.MethodPost, "/cart/addtocart", map[string]any{
		"UserId":    userID,
		"productId": product.ID,
	})
	require.NoError(t, env.Cart.AddToCart(cAdd))

	rec, c := env.doJSONRequest(http.MethodGet, "/cart/"+userID.String(), nil)
	c.SetParamNames("UserId")
	c.SetParamValues(userID.String())
	require.NoError(t, env.Cart.GetCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []struct {
			ProductName  string  `json:"productName"`
			ProductPrice float64 `json:"productPrice"`
			Quantity     int     `json:"quantity"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	require.Equal(t, "iPad Air", resp.Items[0].ProductName)
	require.Equal(t, 599.99, resp.Items[0].ProductPrice)
	require.Equal(t, 1, resp.Items[0].Quantity)
}

func TestGetCartUnknownUserIsEmptyList(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()

	rec, c := env.doJSONRequest(http.MethodGet, "/cart/"+userID.String(), nil)
	c.SetParamNames("UserId")
	c.SetParamValues(userID.String())
	require.NoError(t, env.Cart.GetCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []any `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Empty(t, resp.Items)
}

func TestClearCart(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	product := seedProduct(t, env, "MacBook Pro", "1999")

	recMissing, cMissing := env.doJSONRequest(http.MethodPut, "/cart/clear-cart", map[string]any{
		"UserId": userID,
	})
	require.NoError(t, env.Cart.Clear(cMissing))
	require.Equal(t, http.StatusNotFound, recMissing.Code)

	_, cAdd := env.doJSONRequest(http.MethodPost, "/cart/addtocart", map[string]any{
		"UserId":    userID,
		"productId": product.ID,
	})
	require.NoError(t, env.Cart.AddToCart(cAdd))

	rec, c := env.doJSONRequest(http.MethodPut, "/cart/clear-cart", map[string]any{
		"UserId": userID,
	})
	require.NoError(t, env.Cart.Clear(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Cart cleared after order placed", resp["message"])

	recGet, cGet := env.doJSONRequest(http.MethodGet, "/cart/"+userID.String(), nil)
	cGet.SetParamNames("UserId")
	cGet.SetParamValues(userID.String())
	require.NoError(t, env.Cart.GetCart(cGet))

	var after struct {
		Items []any `json:"items"`
	}
	require.NoError(t, json.Unmarshal(recGet.Body.Bytes(), &after))
	require.Empty(t, after.Items)
}
