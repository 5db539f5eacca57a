package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stocktrack/backend/internal/domain/trade"
)

// OrderItemRequest is one requested order line. Unit is empty for the
// product's base unit. A nil UnitPrice falls back to the catalog price for
// the resolved unit.
type OrderItemRequest struct {
	ProductID     uuid.UUID        `json:"product_id" binding:"required"`
	Quantity      decimal.Decimal  `json:"quantity" binding:"required"`
	Unit          string           `json:"unit"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	OriginalPrice *decimal.Decimal `json:"original_price"` // sales orders only
}

// CreatePurchaseOrderRequest represents a request to create a purchase order
type CreatePurchaseOrderRequest struct {
	Supplier  string             `json:"supplier" binding:"required,min=1,max=200"`
	OrderDate *time.Time         `json:"order_date"`
	Items     []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateSalesOrderRequest represents a request to create a sales order
type CreateSalesOrderRequest struct {
	CustomerName string             `json:"customer_name" binding:"required,min=1,max=200"`
	OrderDate    *time.Time         `json:"order_date"`
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ReturnItemRequest is one returned line. The product must appear in the
// original order; the unit may be any unit of the product.
type ReturnItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Unit      string          `json:"unit"`
}

// CreateReturnOrderRequest represents a request to create a return order
type CreateReturnOrderRequest struct {
	OriginalOrderID uuid.UUID             `json:"original_order_id" binding:"required"`
	OrderType       trade.ReturnOrderType `json:"order_type" binding:"required"`
	ReturnDate      *time.Time            `json:"return_date"`
	Items           []ReturnItemRequest   `json:"items" binding:"required,min=1,dive"`
}

// PurchaseOrderItemResponse represents a purchase order line in API responses
type PurchaseOrderItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	ConversionRate decimal.Decimal `json:"conversion_rate"`
	BaseQuantity   decimal.Decimal `json:"base_quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID          uuid.UUID                   `json:"id"`
	OrderNumber string                      `json:"order_number"`
	Supplier    string                      `json:"supplier"`
	OrderDate   time.Time                   `json:"order_date"`
	TotalAmount decimal.Decimal             `json:"total_amount"`
	Status      string                      `json:"status"`
	ConfirmedAt *time.Time                  `json:"confirmed_at,omitempty"`
	Items       []PurchaseOrderItemResponse `json:"items,omitempty"`
	Returns     []ReturnOrderResponse       `json:"returns,omitempty"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// SalesOrderItemResponse represents a sales order line in API responses
type SalesOrderItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	ConversionRate decimal.Decimal `json:"conversion_rate"`
	BaseQuantity   decimal.Decimal `json:"base_quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	OriginalPrice  decimal.Decimal `json:"original_price"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// SalesOrderResponse represents a sales order in API responses
type SalesOrderResponse struct {
	ID           uuid.UUID                `json:"id"`
	OrderNumber  string                   `json:"order_number"`
	CustomerName string                   `json:"customer_name"`
	OrderDate    time.Time                `json:"order_date"`
	TotalAmount  decimal.Decimal          `json:"total_amount"`
	Status       string                   `json:"status"`
	ConfirmedAt  *time.Time               `json:"confirmed_at,omitempty"`
	Items        []SalesOrderItemResponse `json:"items,omitempty"`
	Returns      []ReturnOrderResponse    `json:"returns,omitempty"`
	CreatedAt    time.Time                `json:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at"`
}

// ReturnOrderItemResponse represents a return order line in API responses
type ReturnOrderItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	ConversionRate decimal.Decimal `json:"conversion_rate"`
	BaseQuantity   decimal.Decimal `json:"base_quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// ReturnOrderResponse represents a return order in API responses
type ReturnOrderResponse struct {
	ID              uuid.UUID                 `json:"id"`
	OrderNumber     string                    `json:"order_number"`
	OriginalOrderID uuid.UUID                 `json:"original_order_id"`
	OrderType       string                    `json:"order_type"`
	ReturnDate      time.Time                 `json:"return_date"`
	TotalAmount     decimal.Decimal           `json:"total_amount"`
	Status          string                    `json:"status"`
	ConfirmedAt     *time.Time                `json:"confirmed_at,omitempty"`
	Items           []ReturnOrderItemResponse `json:"items,omitempty"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

// ToPurchaseOrderResponse converts a domain purchase order to a response DTO
func ToPurchaseOrderResponse(o *trade.PurchaseOrder) *PurchaseOrderResponse {
	resp := &PurchaseOrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Supplier:    o.Supplier,
		OrderDate:   o.OrderDate,
		TotalAmount: o.TotalAmount,
		Status:      o.Status.String(),
		ConfirmedAt: o.ConfirmedAt,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, PurchaseOrderItemResponse{
			ID:             item.ID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			Unit:           item.Unit,
			ConversionRate: item.ConversionRate,
			BaseQuantity:   item.BaseQuantity,
			UnitPrice:      item.UnitPrice,
			Subtotal:       item.Subtotal,
		})
	}
	return resp
}

// ToSalesOrderResponse converts a domain sales order to a response DTO
func ToSalesOrderResponse(o *trade.SalesOrder) *SalesOrderResponse {
	resp := &SalesOrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		CustomerName: o.CustomerName,
		OrderDate:    o.OrderDate,
		TotalAmount:  o.TotalAmount,
		Status:       o.Status.String(),
		ConfirmedAt:  o.ConfirmedAt,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, SalesOrderItemResponse{
			ID:             item.ID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			Unit:           item.Unit,
			ConversionRate: item.ConversionRate,
			BaseQuantity:   item.BaseQuantity,
			UnitPrice:      item.UnitPrice,
			OriginalPrice:  item.OriginalPrice,
			Subtotal:       item.Subtotal,
		})
	}
	return resp
}

// ToReturnOrderResponse converts a domain return order to a response DTO
func ToReturnOrderResponse(o *trade.ReturnOrder) *ReturnOrderResponse {
	resp := &ReturnOrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		OriginalOrderID: o.OriginalOrderID,
		OrderType:       o.OrderType.String(),
		ReturnDate:      o.ReturnDate,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status.String(),
		ConfirmedAt:     o.ConfirmedAt,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, ReturnOrderItemResponse{
			ID:             item.ID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			Unit:           item.Unit,
			ConversionRate: item.ConversionRate,
			BaseQuantity:   item.BaseQuantity,
			UnitPrice:      item.UnitPrice,
			Subtotal:       item.Subtotal,
		})
	}
	return resp
}
