package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/streetwear-admin-api/internal/application/analytics"
	"github.com/jhoicas/streetwear-admin-api/internal/application/audit"
	"github.com/jhoicas/streetwear-admin-api/internal/application/dto"
	appinventory "github.com/jhoicas/streetwear-admin-api/internal/application/inventory"
	"github.com/jhoicas/streetwear-admin-api/internal/application/orders"
	"github.com/jhoicas/streetwear-admin-api/internal/application/usecase"
	"github.com/jhoicas/streetwear-admin-api/internal/infrastructure/memory"
	"github.com/jhoicas/streetwear-admin-api/internal/infrastructure/pdf"
	"github.com/jhoicas/streetwear-admin-api/internal/infrastructure/revalidation"
	apphttp "github.com/jhoicas/streetwear-admin-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/streetwear-admin-api/pkg/jwt"
	"github.com/jhoicas/streetwear-admin-api/pkg/logger"
)

// newAPI levanta el router completo sobre el store en memoria.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	log := logger.Nop()
	store := memory.NewStore()
	repos := store.Repos()
	reval := revalidation.NewLogRevalidator(log)

	stockUC := appinventory.NewStockUseCase(store, repos.Stock, repos.Products, reval, log, 5)
	orderUC := orders.NewOrderUseCase(store, repos.Orders, reval, pdf.NewPackingSlipGenerator("Streetwear", nil), true, log)
	deps := apphttp.RouterDeps{
		ProductUC:    usecase.NewProductUseCase(store, repos.Products, repos.Stock, stockUC, reval, log),
		InvestmentUC: usecase.NewInvestmentUseCase(store, repos.Investments, reval, log),
		StockUC:      stockUC,
		OrderUC:      orderUC,
		DashboardUC:  analytics.NewDashboardUseCase(orderUC, repos.Investments, repos.Products, repos.Stock, nil, 5),
		AuditUC:      audit.NewAuditUseCase(repos.Audit),
		JWTSecret:    testJWTSecret,
		JWTIssuer:    testIssuer,
		ServiceName:  "streetwear-admin-api",
	}
	app := apphttp.NewApp("streetwear-admin-api", log)
	apphttp.Router(app, deps)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, auth string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	var body map[string]string
	status := call(t, newAPI(t), http.MethodGet, "/health", "", nil, &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestAdmin_RequiereRolAdmin(t *testing.T) {
	app := newAPI(t)
	assert.Equal(t, http.StatusUnauthorized, call(t, app, http.MethodGet, "/api/admin/dashboard", "", nil, nil))
	assert.Equal(t, http.StatusForbidden, call(t, app, http.MethodGet, "/api/admin/dashboard", tokenForRole(t, pkgjwt.RoleCustomer), nil, nil))
}

func TestFlujoProductoStockPedido(t *testing.T) {
	app := newAPI(t)
	admin := tokenForRole(t, pkgjwt.RoleAdmin)

	var product dto.ProductResponse
	status := call(t, app, http.MethodPost, "/api/admin/products", admin, map[string]any{
		"name": "Oversized Tee", "price": "29.90", "sizes": []string{"S", "M"},
	}, &product)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, product.ID)

	var levels []dto.StockLevelResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/admin/products/"+product.ID+"/stock", admin, nil, &levels))
	require.Len(t, levels, 2)
	assert.Equal(t, "S", levels[0].Size)
	assert.Equal(t, 0, levels[0].Quantity)

	var updated dto.StockLevelResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPatch, "/api/admin/stock/"+levels[1].ID, admin, map[string]int{"quantity": 3}, &updated))
	assert.Equal(t, 3, updated.Quantity)

	var errBody dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPatch, "/api/admin/stock/"+levels[1].ID, admin, map[string]int{"quantity": -1}, &errBody))
	assert.Equal(t, "VALIDATION", errBody.Code)
	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPatch, "/api/admin/stock/"+levels[1].ID, admin, map[string]any{}, nil))

	var alerts []dto.LowStockAlertResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/admin/stock/alerts", admin, nil, &alerts))
	assert.Len(t, alerts, 2, "S:0 y M:3 quedan por debajo del umbral 5")

	var storefront dto.StorefrontProductResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/storefront/products/"+product.ID, "", nil, &storefront))
	assert.Equal(t, 3, storefront.Stock.TotalStock)

	// checkout con token de cliente
	customer := tokenForRole(t, pkgjwt.RoleCustomer)
	var order dto.OrderResponse
	status = call(t, app, http.MethodPost, "/api/orders", customer, map[string]any{
		"customerName": "Ana", "customerEmail": testEmail, "totalAmount": "59.80",
		"shippingAddress": map[string]string{"line1": "Calle 1", "city": "Bogotá", "country": "CO"},
		"items":           []map[string]any{{"productId": product.ID, "size": "M", "quantity": 2}},
	}, &order)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "PENDING", order.Status)

	var shipped dto.OrderResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPatch, "/api/admin/orders/"+order.ID+"/tracking", admin,
		map[string]string{"trackingNumber": "TRK123", "carrier": "DHL"}, &shipped))
	assert.Equal(t, "SHIPPED", shipped.Status)
	assert.Equal(t, "TRK123", shipped.TrackingNumber)

	require.Equal(t, http.StatusOK, call(t, app, http.MethodPatch, "/api/admin/orders/"+order.ID+"/status", admin, map[string]string{"status": "cancelled"}, nil))
	assert.Equal(t, http.StatusConflict, call(t, app, http.MethodPatch, "/api/admin/orders/"+order.ID+"/status", admin, map[string]string{"status": "DELIVERED"}, &errBody))
	assert.Equal(t, "INVALID_TRANSITION", errBody.Code)

	var stats dto.DashboardStatsDTO
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/admin/dashboard", admin, nil, &stats))
	assert.Equal(t, 1, stats.TotalOrders)
	assert.Equal(t, "59.8", stats.TotalRevenue)
	assert.Equal(t, 1, stats.ActiveProducts)
	require.Len(t, stats.RecentOrders, 1)

	var logs dto.AuditLogListResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/admin/audit-logs?entity=Order&entityId="+order.ID, admin, nil, &logs))
	require.NotEmpty(t, logs.Items)
	assert.Equal(t, "ORDER_CANCELLED", logs.Items[0].Action)
}

func TestPedido_NoEncontrado(t *testing.T) {
	app := newAPI(t)
	var errBody dto.ErrorResponse
	status := call(t, app, http.MethodGet, "/api/admin/orders/no-existe", tokenForRole(t, pkgjwt.RoleAdmin), nil, &errBody)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errBody.Code)
}

// createProduct da de alta un producto activo por la API admin.
func createProduct(t *testing.T, app *fiber.App, sizes ...string) dto.ProductResponse {
	t.Helper()
	var product dto.ProductResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/admin/products", tokenForRole(t, pkgjwt.RoleAdmin), map[string]any{
		"name": "Cargo Pants", "price": "80", "sizes": sizes, "isActive": true,
	}, &product))
	return product
}

func TestPackingSlip(t *testing.T) {
	app := newAPI(t)
	product := createProduct(t, app, "L")
	var order dto.OrderResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/orders", tokenForRole(t, pkgjwt.RoleCustomer), map[string]any{
		"customerName": "Ana", "totalAmount": "10",
		"items": []map[string]any{{"productId": product.ID, "size": "L", "quantity": 1}},
	}, &order))
	assert.Equal(t, testEmail, order.CustomerEmail, "sin email en el cuerpo se usa el del token")

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders/"+order.ID+"/packing-slip", nil)
	req.Header.Set("Authorization", tokenForRole(t, pkgjwt.RoleAdmin))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestInversiones(t *testing.T) {
	app := newAPI(t)
	admin := tokenForRole(t, pkgjwt.RoleAdmin)

	var inv dto.InvestmentResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/admin/investments", admin,
		map[string]any{"name": "Máquina de bordado", "amount": "1200"}, &inv))

	var list dto.InvestmentListResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/admin/investments", admin, nil, &list))
	assert.Equal(t, "1200", list.Total.String())

	assert.Equal(t, http.StatusNoContent, call(t, app, http.MethodDelete, "/api/admin/investments/"+inv.ID, admin, nil, nil))
	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodGet, "/api/admin/investments/"+inv.ID, admin, nil, nil))
}

func TestAuditoria_IDDeRutaSobreviveALaPeticion(t *testing.T) {
	app := newAPI(t)
	admin := tokenForRole(t, pkgjwt.RoleAdmin)
	product := createProduct(t, app, "S", "M")

	var levels []dto.StockLevelResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/admin/products/"+product.ID+"/stock", admin, nil, &levels))
	require.Len(t, levels, 2)
	id := levels[0].ID
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPatch, "/api/admin/stock/"+id, admin, map[string]int{"quantity": 7}, nil))

	// otras peticiones reutilizan los buffers de Fiber
	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/health", "", nil, nil))
		require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/admin/products/"+product.ID+"/stock", admin, nil, nil))
	}

	var logs dto.AuditLogListResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/admin/audit-logs?entity=StockLevel&entityId="+id, admin, nil, &logs))
	require.Len(t, logs.Items, 1)
	assert.Equal(t, "STOCK_UPDATED", logs.Items[0].Action)
	assert.Equal(t, id, logs.Items[0].EntityID)
	assert.Equal(t, product.ID, logs.Items[0].Details["productId"])
}

func TestCheckout_Validaciones(t *testing.T) {
	app := newAPI(t)
	customer := tokenForRole(t, pkgjwt.RoleCustomer)
	product := createProduct(t, app, "M")
	order := func(email, productID, size, total string) map[string]any {
		return map[string]any{
			"customerName": "Ana", "customerEmail": email, "totalAmount": total,
			"items": []map[string]any{{"productId": productID, "size": size, "quantity": 1}},
		}
	}

	var errBody dto.ErrorResponse
	assert.Equal(t, http.StatusForbidden, call(t, app, http.MethodPost, "/api/orders", customer, order("victim@other.test", product.ID, "M", "10"), &errBody))
	assert.Equal(t, "FORBIDDEN", errBody.Code)
	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, "/api/orders", customer, order(testEmail, "no-existe", "M", "10"), nil))
	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, "/api/orders", customer, order(testEmail, product.ID, "XXL", "10"), nil))
	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, "/api/orders", customer, order(testEmail, product.ID, "M", "10.005"), nil))

	var list []dto.OrderResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/admin/orders", tokenForRole(t, pkgjwt.RoleAdmin), nil, &list))
	assert.Empty(t, list)

	var created dto.OrderResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/orders", customer, order(testEmail, product.ID, "M", "10.50"), &created))

	var logs dto.AuditLogListResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/admin/audit-logs?entity=Order&entityId="+created.ID, tokenForRole(t, pkgjwt.RoleAdmin), nil, &logs))
	require.Len(t, logs.Items, 1)
	assert.Equal(t, map[string]any{"uid": testUID, "email": testEmail}, logs.Items[0].Details["actor"])
}

func TestStock_AltaDeTallaYDisponibilidad(t *testing.T) {
	app := newAPI(t)
	admin := tokenForRole(t, pkgjwt.RoleAdmin)
	product := createProduct(t, app, "M")

	var level dto.StockLevelResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/admin/products/"+product.ID+"/stock", admin, map[string]string{"size": "XL"}, &level))
	assert.Equal(t, "XL", level.Size)
	assert.Equal(t, 0, level.Quantity)
	assert.Equal(t, http.StatusConflict, call(t, app, http.MethodPost, "/api/admin/products/"+product.ID+"/stock", admin, map[string]string{"size": "XL"}, nil))
	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, "/api/admin/products/"+product.ID+"/stock", admin, map[string]string{"size": " "}, nil))
	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodPost, "/api/admin/products/no-existe/stock", admin, map[string]string{"size": "S"}, nil))

	require.Equal(t, http.StatusOK, call(t, app, http.MethodPatch, "/api/admin/stock/"+level.ID, admin, map[string]int{"quantity": 2}, nil))

	var stock dto.ProductStockResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/storefront/products/"+product.ID+"/stock", "", nil, &stock))
	assert.Equal(t, 2, stock.TotalStock)
	assert.False(t, stock.OutOfStock)
	require.Len(t, stock.Sizes, 2)
	assert.Equal(t, "M", stock.Sizes[0].Size)
	assert.Equal(t, "XL", stock.Sizes[1].Size)
	assert.True(t, stock.Sizes[1].Available)

	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodGet, "/api/storefront/products/no-existe/stock", "", nil, nil))
}

func TestInversiones_MontoConTresDecimales(t *testing.T) {
	app := newAPI(t)
	var errBody dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, "/api/admin/investments", tokenForRole(t, pkgjwt.RoleAdmin),
		map[string]any{"name": "Tela", "amount": "99.999"}, &errBody))
	assert.Equal(t, "VALIDATION", errBody.Code)
}
