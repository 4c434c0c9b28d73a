package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsilveira/stock-ledger/internal/http/handlers"
)

func postCSV(t *testing.T, h http.Handler, token, path, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "products.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestImportProducts(t *testing.T) {
	h, _ := newTestServer(t)
	token := registerUser(t, h, "alice")

	csvContent := "name,manufacturer,price,tech_spec,min_threshold\n" +
		"Bolt M8,Acme,0.35,steel,50\n" +
		"Washer,,0.10,,0\n" +
		",NoName,1.00,,0\n"

	rr := postCSV(t, h, token, "/products/import", csvContent)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	result := decodeBody[handlers.ImportProductsResult](t, rr)
	assert.Equal(t, 2, result.ImportedProductsCount)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Description, "row 4")

	// imported products start with a zero balance
	rr = doJSON(t, h, http.MethodGet, "/products/1/balance", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, decodeBody[handlers.MovementResult](t, rr).Quantity)
}

func TestImportProductsSkipAndUpdateModes(t *testing.T) {
	h, _ := newTestServer(t)
	token := registerUser(t, h, "alice")
	createProduct(t, h, token, handlers.ProductRequest{Name: "Bolt M8", Price: 0.35})

	csvContent := "name,price,min_threshold\nBolt M8,0.99,10\n"

	// default mode skips existing names
	rr := postCSV(t, h, token, "/products/import", csvContent)
	require.Equal(t, http.StatusOK, rr.Code)
	result := decodeBody[handlers.ImportProductsResult](t, rr)
	assert.Equal(t, 0, result.ImportedProductsCount)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Description, "already exists")

	// update mode overwrites in place
	rr = postCSV(t, h, token, "/products/import?mode=update", csvContent)
	require.Equal(t, http.StatusOK, rr.Code)
	result = decodeBody[handlers.ImportProductsResult](t, rr)
	assert.Equal(t, 1, result.ImportedProductsCount)
	assert.Empty(t, result.Errors)

	rr = doJSON(t, h, http.MethodGet, "/products/1", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	updated := decodeBody[handlers.ProductResponse](t, rr)
	assert.Equal(t, 0.99, updated.Price)
	assert.Equal(t, 10, updated.MinThreshold)
}

func TestImportProductsMissingFile(t *testing.T) {
	h, _ := newTestServer(t)
	token := registerUser(t, h, "alice")

	rr := doJSON(t, h, http.MethodPost, "/products/import", token, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
