package model

type User struct {
	DTO
	Username  string `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	Role      string `gorm:"size:20;not null;default:'waiter'" json:"role"`
	FirstName string `gorm:"size:50" json:"firstName"`
	LastName  string `gorm:"size:50" json:"lastName"`
	Status    string `gorm:"size:20;not null;default:'active'" json:"status"`
	// Incremented to invalidate every previously issued token for this user.
	TokenVersion uint `gorm:"not null;default:1" json:"-"`
}

type CreateUserInput struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role" validate:"omitempty,oneof=admin manager cashier waiter chef"`
	FirstName string `json:"firstName" validate:"omitempty,max=50"`
	LastName  string `json:"lastName" validate:"omitempty,max=50"`
}

type UpdateUserInput struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	Username  *string `json:"username" validate:"omitempty,min=3,max=50"`
	Role      *string `json:"role" validate:"omitempty,oneof=admin manager cashier waiter chef"`
	Status    *string `json:"status" validate:"omitempty,oneof=active inactive suspended"`
	FirstName *string `json:"firstName" validate:"omitempty,max=50"`
	LastName  *string `json:"lastName" validate:"omitempty,max=50"`
}

type FilterUserInput struct {
	Pagination
	Role      string `query:"role"`
	Status    string `query:"status"`
	SearchKey string `query:"searchKey"`
}
