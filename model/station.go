package model

// Station is a kitchen preparation area (grill, fryer, salads...).
type Station struct {
	DTO
	Name        string `gorm:"uniqueIndex;size:50;not null" json:"name"`
	Description string `json:"description"`
	ChefId      *uint  `json:"chefId"`
	Chef        *User  `gorm:"foreignKey:ChefId" json:"chef,omitempty"`
	Active      bool   `gorm:"default:true" json:"active"`

	Categories []Category `gorm:"foreignKey:StationId" json:"categories,omitempty"`
}

type CreateStationInput struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description"`
}

type UpdateStationInput struct {
	Name        *string `json:"name" validate:"omitempty,max=50"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

type AssignCategoriesInput struct {
	CategoryIds []uint `json:"categoryIds" validate:"required,min=1"`
}

type AssignChefInput struct {
	ChefId uint `json:"chefId" validate:"required"`
}
