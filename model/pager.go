package model

import "time"

type Pager struct {
	DTO
	PagerNumber int        `gorm:"uniqueIndex;not null" json:"pagerNumber"`
	Status      string     `gorm:"size:20;not null;default:'available'" json:"status"`
	OrderId     *uint      `json:"orderId"`
	AssignedAt  *time.Time `json:"assignedAt"`
}

type AssignPagerInput struct {
	OrderId uint `json:"orderId" validate:"required"`
}

type CreatePagerInput struct {
	PagerNumber int `json:"pagerNumber" validate:"required,gt=0"`
}
