package model

import "time"

type Order struct {
	DTO
	OrderNumber  string  `gorm:"uniqueIndex;size:20;not null" json:"orderNumber"`
	TableId      *uint   `json:"tableId"` // nil for takeaway
	Table        *Table  `gorm:"foreignKey:TableId" json:"table,omitempty"`
	CustomerName string  `gorm:"size:100" json:"customerName"`
	Status       string  `gorm:"size:20;not null;default:'pending'" json:"status"`
	PaymentStatus string `gorm:"size:20;not null;default:'pending'" json:"paymentStatus"`
	PaymentMethod string `gorm:"size:20" json:"paymentMethod"`
	TotalAmount  float64 `gorm:"not null;default:0" json:"totalAmount"`
	Tax          float64 `gorm:"default:0" json:"tax"`
	Tip          float64 `gorm:"default:0" json:"tip"`
	Discount     float64 `gorm:"default:0" json:"discount"`
	SplitCount   int     `gorm:"default:1" json:"splitCount"`
	WaiterId     uint    `json:"waiterId"`
	Waiter       *User   `gorm:"foreignKey:WaiterId" json:"waiter,omitempty"`
	CashierId    *uint   `json:"cashierId"`
	PagerNumber  *int    `json:"pagerNumber"`
	Notes        string  `json:"notes"`

	OrderTime          time.Time  `gorm:"autoCreateTime" json:"orderTime"`
	EstimatedReadyTime *time.Time `json:"estimatedReadyTime"`
	ActualReadyTime    *time.Time `json:"actualReadyTime"`
	CompletedTime      *time.Time `json:"completedTime"`

	Items []OrderItem `gorm:"foreignKey:OrderId" json:"items,omitempty"`
}

type OrderItem struct {
	DTO
	OrderId    uint `gorm:"not null;index" json:"orderId"`
	MenuItemId uint `gorm:"not null" json:"menuItemId"`
	MenuItem   MenuItem `gorm:"foreignKey:MenuItemId" json:"menuItem,omitempty"`
	Quantity   int  `gorm:"not null;default:1" json:"quantity"`
	// Price snapshot at order time, decoupled from the live menu price.
	Price               float64 `gorm:"not null" json:"price"`
	SpecialInstructions string  `json:"specialInstructions"`
	Status              string  `gorm:"size:20;not null;default:'pending'" json:"status"`
}

type CreateOrderItemInput struct {
	MenuItemId          uint   `json:"menuItemId" validate:"required"`
	Quantity            int    `json:"quantity" validate:"required,gt=0"`
	SpecialInstructions string `json:"specialInstructions"`
}

type CreateOrderInput struct {
	TableId      *uint                  `json:"tableId"`
	CustomerName string                 `json:"customerName" validate:"omitempty,max=100"`
	CustomerCount int                   `json:"customerCount" validate:"omitempty,gt=0"`
	PagerNumber  *int                   `json:"pagerNumber"`
	Notes        string                 `json:"notes"`
	Items        []CreateOrderItemInput `json:"items" validate:"required,min=1,dive"`
}

type OrderStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending preparing ready completed cancelled"`
}

type ItemStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending preparing ready served"`
}

type PaymentInput struct {
	PaymentMethod string  `json:"paymentMethod" validate:"required,oneof=cash card mobile split"`
	Tip           float64 `json:"tip" validate:"omitempty,gte=0"`
	Discount      float64 `json:"discount" validate:"omitempty,gte=0"`
	SplitCount    int     `json:"splitCount" validate:"omitempty,gt=0"`
}

type DiscountInput struct {
	Discount float64 `json:"discount" validate:"required,gt=0"`
	Reason   string  `json:"reason"`
}

type CancelOrderInput struct {
	Reason string `json:"reason"`
}

type FilterOrderInput struct {
	Pagination
	Status        string `query:"status"`
	PaymentStatus string `query:"paymentStatus"`
	TableId       *uint  `query:"tableId"`
	WaiterId      *uint  `query:"waiterId"`
	StartDate     string `query:"startDate"`
	EndDate       string `query:"endDate"`
}
