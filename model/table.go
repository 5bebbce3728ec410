package model

type Table struct {
	DTO
	TableNumber   string `gorm:"uniqueIndex;size:10;not null" json:"tableNumber"`
	Capacity      int    `gorm:"not null;default:2" json:"capacity"`
	Status        string `gorm:"size:20;not null;default:'available'" json:"status"`
	CustomerCount int    `gorm:"not null;default:0" json:"customerCount"`
	Section       string `gorm:"size:50;default:'Main Hall'" json:"section"`
	Notes         string `json:"notes"`
}

type CreateTableInput struct {
	TableNumber string `json:"tableNumber" validate:"required,max=10"`
	Capacity    int    `json:"capacity" validate:"omitempty,gt=0"`
	Section     string `json:"section" validate:"omitempty,max=50"`
	Notes       string `json:"notes"`
}

type UpdateTableInput struct {
	TableNumber   *string `json:"tableNumber" validate:"omitempty,max=10"`
	Capacity      *int    `json:"capacity" validate:"omitempty,gt=0"`
	Status        *string `json:"status" validate:"omitempty,oneof=available occupied reserved"`
	CustomerCount *int    `json:"customerCount" validate:"omitempty,gte=0"`
	Section       *string `json:"section" validate:"omitempty,max=50"`
	Notes         *string `json:"notes"`
}

type SeatTableInput struct {
	CustomerCount int `json:"customerCount" validate:"required,gt=0"`
}

type TableStatusInput struct {
	Status        string `json:"status" validate:"required,oneof=available occupied reserved"`
	CustomerCount int    `json:"customerCount" validate:"omitempty,gte=0"`
}
