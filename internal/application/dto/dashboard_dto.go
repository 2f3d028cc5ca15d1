package dto

import "time"

// DashboardStatsDTO respuesta de GET /api/admin/dashboard.
// Los montos van como string decimal ("0" en una tienda vacía) para no perder precisión.
type DashboardStatsDTO struct {
	TotalOrders     int    `json:"totalOrders"`
	PendingOrders   int    `json:"pendingOrders"`
	PaidOrders      int    `json:"paidOrders"`
	TotalRevenue    string `json:"totalRevenue"`    // todos los estados
	RealizedRevenue string `json:"realizedRevenue"` // PAID, IN_PRODUCTION, SHIPPED, DELIVERED
	TotalInvestment string `json:"totalInvestment"`
	NetBalance      string `json:"netBalance"` // totalRevenue - totalInvestment
	Currency        string `json:"currency"`
	ActiveProducts  int    `json:"activeProducts"`
	LowStockAlerts  int    `json:"lowStockAlerts"`

	RecentOrders []RecentOrderDTO `json:"recentOrders"`
}

// RecentOrderDTO fila del widget de pedidos recientes.
type RecentOrderDTO struct {
	ID              string    `json:"id"`
	DisplayID       string    `json:"displayId"` // primeros 8 caracteres en mayúscula
	CustomerName    string    `json:"customerName"`
	CustomerEmail   string    `json:"customerEmail"`
	Status          string    `json:"status"`
	Amount          string    `json:"amount"`
	AmountFormatted string    `json:"amountFormatted"`
	ItemCount       int       `json:"itemCount"`
	CreatedAt       time.Time `json:"createdAt"`
}
