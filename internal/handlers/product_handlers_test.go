package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nebulashop/storefront/internal/catalog"
)

func TestGetProduct(t *testing.T) {
	h := &ProductHandler{}

	rec, c := doJSONRequest(t, http.MethodGet, "/api/v1/products/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.GetProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var p catalog.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	require.Equal(t, 1, p.ID)
	require.NotEmpty(t, p.Title)
}

func TestGetProductNotFound(t *testing.T) {
	h := &ProductHandler{}

	_, c := doJSONRequest(t, http.MethodGet, "/api/v1/products/999", nil)
	c.SetParamNames("id")
	c.SetParamValues("999")
	he := httpError(t, h.GetProduct(c))
	require.Equal(t, http.StatusNotFound, he.Code)
	require.Equal(t, "Product not found", he.Message)
}

func TestGetProductInvalidID(t *testing.T) {
	h := &ProductHandler{}

	_, c := doJSONRequest(t, http.MethodGet, "/api/v1/products/abc", nil)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	he := httpError(t, h.GetProduct(c))
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestGetProductsPagination(t *testing.T) {
	h := &ProductHandler{}

	rec, c := doJSONRequest(t, http.MethodGet, "/api/v1/products?page=1&size=3", nil)
	require.NoError(t, h.GetProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []catalog.Product `json:"data"`
		Meta struct {
			Page    int  `json:"page"`
			Total   int  `json:"total"`
			HasNext bool `json:"has_next"`
			HasPrev bool `json:"has_prev"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 3)
	require.Equal(t, len(catalog.Products), resp.Meta.Total)
	require.True(t, resp.Meta.HasNext)
	require.False(t, resp.Meta.HasPrev)
}

func TestGetProductsPageBeyondEnd(t *testing.T) {
	h := &ProductHandler{}

	rec, c := doJSONRequest(t, http.MethodGet, "/api/v1/products?page=99", nil)
	require.NoError(t, h.GetProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []catalog.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Empty(t, resp.Data)
}
