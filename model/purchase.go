package model

import "time"

type Supplier struct {
	DTO
	Name          string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	ContactPerson string `gorm:"size:100" json:"contactPerson"`
	Phone         string `gorm:"size:30" json:"phone"`
	Email         string `gorm:"size:100" json:"email"`
	Address       string `json:"address"`
	Active        bool   `gorm:"default:true" json:"active"`
}

type PurchaseOrder struct {
	DTO
	OrderNumber      string     `gorm:"uniqueIndex;size:20;not null" json:"orderNumber"`
	SupplierId       uint       `gorm:"not null" json:"supplierId"`
	Supplier         Supplier   `gorm:"foreignKey:SupplierId" json:"supplier,omitempty"`
	Status           string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	TotalAmount      float64    `gorm:"default:0" json:"totalAmount"`
	ExpectedDelivery *time.Time `json:"expectedDelivery"`
	ReceivedDate     *time.Time `json:"receivedDate"`
	Notes            string     `json:"notes"`
	CreatedBy        uint       `json:"createdBy"`

	Items []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderId" json:"items,omitempty"`
}

type PurchaseOrderItem struct {
	DTO
	PurchaseOrderId  uint       `gorm:"not null;index" json:"purchaseOrderId"`
	IngredientId     uint       `gorm:"not null" json:"ingredientId"`
	Ingredient       Ingredient `gorm:"foreignKey:IngredientId" json:"ingredient,omitempty"`
	Quantity         float64    `gorm:"not null" json:"quantity"`
	UnitPrice        float64    `gorm:"not null" json:"unitPrice"`
	TotalPrice       float64    `gorm:"not null" json:"totalPrice"`
	ReceivedQuantity float64    `gorm:"default:0" json:"receivedQuantity"`
}

type CreateSupplierInput struct {
	Name          string `json:"name" validate:"required,max=100"`
	ContactPerson string `json:"contactPerson" validate:"omitempty,max=100"`
	Phone         string `json:"phone" validate:"omitempty,max=30"`
	Email         string `json:"email" validate:"omitempty,email"`
	Address       string `json:"address"`
}

type CreatePurchaseOrderItemInput struct {
	IngredientId uint    `json:"ingredientId" validate:"required"`
	Quantity     float64 `json:"quantity" validate:"required,gt=0"`
	UnitPrice    float64 `json:"unitPrice" validate:"required,gte=0"`
}

type CreatePurchaseOrderInput struct {
	SupplierId       uint                           `json:"supplierId" validate:"required"`
	ExpectedDelivery *time.Time                     `json:"expectedDelivery"`
	Notes            string                         `json:"notes"`
	Items            []CreatePurchaseOrderItemInput `json:"items" validate:"required,min=1,dive"`
}

type PurchaseOrderStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending ordered received cancelled"`
}

type ReceiveShipmentItemInput struct {
	ItemId           uint    `json:"itemId" validate:"required"`
	ReceivedQuantity float64 `json:"receivedQuantity" validate:"required,gt=0"`
}

type ReceiveShipmentInput struct {
	Items []ReceiveShipmentItemInput `json:"items" validate:"required,min=1,dive"`
}
