package dto

import "github.com/jhoicas/streetwear-admin-api/internal/domain/entity"

// NewProductResponse convierte la entidad a su salida HTTP.
func NewProductResponse(p *entity.Product) ProductResponse {
	sizes := p.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	colors := p.Colors
	if colors == nil {
		colors = []string{}
	}
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CutPrice:    p.CutPrice,
		Sizes:       sizes,
		Colors:      colors,
		IsActive:    p.IsActive,
		IsFeatured:  p.IsFeatured,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewStockLevelResponse convierte una fila de stock.
func NewStockLevelResponse(l *entity.StockLevel) StockLevelResponse {
	return StockLevelResponse{
		ID:           l.ID,
		ProductID:    l.ProductID,
		Size:         l.Size,
		Quantity:     l.Quantity,
		LowThreshold: l.LowThreshold,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

// NewShippingAddressDTO convierte la dirección de envío.
func NewShippingAddressDTO(a entity.ShippingAddress) ShippingAddressDTO {
	return ShippingAddressDTO{
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		Phone:      a.Phone,
	}
}

// ToEntity convierte la dirección recibida en el checkout.
func (a ShippingAddressDTO) ToEntity() entity.ShippingAddress {
	return entity.ShippingAddress{
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		Phone:      a.Phone,
	}
}

// NewOrderResponse convierte un pedido con sus líneas.
func NewOrderResponse(o *entity.OrderWithItems) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ID:           it.ID,
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			ProductPrice: it.ProductPrice,
			DesignID:     it.DesignID,
			Quantity:     it.Quantity,
			Size:         it.Size,
			Color:        it.Color,
		})
	}
	return OrderResponse{
		ID:              o.ID,
		CustomerEmail:   o.CustomerEmail,
		CustomerName:    o.CustomerName,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount,
		ShippingAddress: NewShippingAddressDTO(o.ShippingAddress),
		PaymentID:       o.PaymentID,
		TrackingNumber:  o.TrackingNumber,
		TrackingCarrier: o.TrackingCarrier,
		Notes:           o.Notes,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// NewInvestmentResponse convierte una inversión.
func NewInvestmentResponse(inv *entity.Investment) InvestmentResponse {
	return InvestmentResponse{
		ID:          inv.ID,
		Name:        inv.Name,
		Description: inv.Description,
		Amount:      inv.Amount,
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
}
