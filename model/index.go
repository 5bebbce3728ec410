package model

import "time"

type TokenClaim struct {
	UserId       uint   `json:"userId"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	TokenVersion uint   `json:"tokenVersion"`
}

type DTO struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ResponseCustom struct {
	Rows       any   `json:"rows"`
	Limit      *int  `json:"limit"`
	Page       *int  `json:"page"`
	TotalCount int64 `json:"totalCount"`
}

type ArrayId struct {
	IDs []uint `json:"ids"`
}

type Pagination struct {
	Limit *int `json:"limit"`
	Page  *int `json:"page"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	RepeatPassword  string `json:"repeatPassword" validate:"required,eqfield=NewPassword"`
}

type AdminResetPasswordInput struct {
	UserId      uint   `json:"userId" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}
