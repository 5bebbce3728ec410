package model

type Ingredient struct {
	DTO
	Name         string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Unit         string    `gorm:"size:20;not null" json:"unit"`
	CurrentStock float64   `gorm:"not null;default:0" json:"currentStock"`
	MinimumStock float64   `gorm:"not null;default:0" json:"minimumStock"`
	CostPerUnit  float64   `gorm:"not null;default:0" json:"costPerUnit"`
	SupplierId   *uint     `json:"supplierId"`
	Supplier     *Supplier `gorm:"foreignKey:SupplierId" json:"supplier,omitempty"`
	Category     string    `gorm:"size:50" json:"category"`
}

// StockTransaction is the append-only ledger of every stock movement.
type StockTransaction struct {
	DTO
	IngredientId    uint       `gorm:"not null;index" json:"ingredientId"`
	Ingredient      Ingredient `gorm:"foreignKey:IngredientId" json:"ingredient,omitempty"`
	TransactionType string     `gorm:"size:20;not null" json:"transactionType"` // adjustment, purchase, wastage, consumption
	Quantity        float64    `gorm:"not null" json:"quantity"`
	PreviousStock   float64    `json:"previousStock"`
	NewStock        float64    `json:"newStock"`
	ReferenceId     *uint      `json:"referenceId"`
	ReferenceType   string     `gorm:"size:20" json:"referenceType"`
	Notes           string     `json:"notes"`
	UserId          uint       `json:"userId"`
}

type CreateIngredientInput struct {
	Name         string  `json:"name" validate:"required,max=100"`
	Unit         string  `json:"unit" validate:"required,max=20"`
	CurrentStock float64 `json:"currentStock" validate:"omitempty,gte=0"`
	MinimumStock float64 `json:"minimumStock" validate:"omitempty,gte=0"`
	CostPerUnit  float64 `json:"costPerUnit" validate:"omitempty,gte=0"`
	SupplierId   *uint   `json:"supplierId"`
	Category     string  `json:"category" validate:"omitempty,max=50"`
}

type UpdateIngredientInput struct {
	Name         *string  `json:"name" validate:"omitempty,max=100"`
	Unit         *string  `json:"unit" validate:"omitempty,max=20"`
	MinimumStock *float64 `json:"minimumStock" validate:"omitempty,gte=0"`
	CostPerUnit  *float64 `json:"costPerUnit" validate:"omitempty,gte=0"`
	SupplierId   *uint    `json:"supplierId"`
	Category     *string  `json:"category" validate:"omitempty,max=50"`
}

type StockAdjustInput struct {
	Quantity float64 `json:"quantity" validate:"required"`
	Notes    string  `json:"notes"`
}

type WastageInput struct {
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
	Notes    string  `json:"notes"`
}
