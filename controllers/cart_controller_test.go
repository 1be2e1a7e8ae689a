package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tailor-shop/models"
	"tailor-shop/repositories"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type noopStore struct{}

func (noopStore) Load(ctx context.Context) (models.Cart, error) { return models.Cart{}, nil }

func (noopStore) Save(ctx context.Context, cart models.Cart) error { return nil }

func (noopStore) Close() error { return nil }

func newCartRouter(t *testing.T) (*gin.Engine, *repositories.CartRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cart := repositories.NewCartRepository(noopStore{}, zap.NewNop())
	ctrl := NewCartController(cart)

	router := gin.New()
	router.GET("/cart", ctrl.GetCart)
	router.DELETE("/cart", ctrl.ClearCart)
	router.POST("/cart/items", ctrl.AddItem)
	router.PATCH("/cart/items", ctrl.UpdateQuantity)
	router.DELETE("/cart/items/:productId", ctrl.RemoveItem)
	return router, cart
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAddItemEndpoint(t *testing.T) {
	router, cart := newCartRouter(t)

	w := doJSON(t, router, http.MethodPost, "/cart/items", gin.H{
		"product_id":   "shirt-1",
		"name":         "Linen Shirt",
		"unit_price":   "1000",
		"quantity":     2,
		"max_quantity": 5,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 2, cart.TotalItems())
}

func TestAddItemRejectsMissingFields(t *testing.T) {
	router, cart := newCartRouter(t)

	w := doJSON(t, router, http.MethodPost, "/cart/items", gin.H{"quantity": 2})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, cart.TotalItems())
}

func TestUpdateQuantityEndpointClamps(t *testing.T) {
	router, cart := newCartRouter(t)

	doJSON(t, router, http.MethodPost, "/cart/items", gin.H{
		"product_id":   "shirt-1",
		"name":         "Linen Shirt",
		"unit_price":   "1000",
		"quantity":     2,
		"max_quantity": 5,
	})

	w := doJSON(t, router, http.MethodPatch, "/cart/items", gin.H{
		"product_id": "shirt-1",
		"quantity":   99,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, cart.TotalItems())
}

func TestRemoveItemEndpointMatchesVariant(t *testing.T) {
	router, cart := newCartRouter(t)

	doJSON(t, router, http.MethodPost, "/cart/items", gin.H{
		"product_id": "shirt-1", "variant_id": "slim",
		"name": "Linen Shirt", "unit_price": "1000", "quantity": 1, "max_quantity": 5,
	})
	doJSON(t, router, http.MethodPost, "/cart/items", gin.H{
		"product_id": "shirt-1",
		"name":       "Linen Shirt", "unit_price": "1000", "quantity": 1, "max_quantity": 5,
	})

	w := doJSON(t, router, http.MethodDelete, "/cart/items/shirt-1?variant_id=slim", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	items := cart.Cart().Items
	require.Len(t, items, 1)
	assert.Nil(t, items[0].VariantID)
}

func TestGetCartEnvelope(t *testing.T) {
	router, _ := newCartRouter(t)

	doJSON(t, router, http.MethodPost, "/cart/items", gin.H{
		"product_id": "a", "name": "A", "unit_price": "250", "quantity": 2, "max_quantity": 9,
	})

	w := doJSON(t, router, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			TotalItems int    `json:"total_items"`
			TotalPrice string `json:"total_price"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Data.TotalItems)
	assert.Equal(t, "500", resp.Data.TotalPrice)
}

func TestClearCartEndpoint(t *testing.T) {
	router, cart := newCartRouter(t)
	doJSON(t, router, http.MethodPost, "/cart/items", gin.H{
		"product_id": "a", "name": "A", "unit_price": "250", "quantity": 2, "max_quantity": 9,
	})

	w := doJSON(t, router, http.MethodDelete, "/cart", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, cart.Cart().IsEmpty())
}
