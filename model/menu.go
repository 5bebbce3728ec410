package model

type Category struct {
	DTO
	Name         string  `gorm:"uniqueIndex;size:50;not null" json:"name"`
	Description  string  `json:"description"`
	DisplayOrder int     `gorm:"default:0" json:"displayOrder"`
	StationId    *uint   `json:"stationId"`
	Station      *Station `gorm:"foreignKey:StationId" json:"station,omitempty"`
}

type MenuItem struct {
	DTO
	Name            string   `gorm:"size:100;not null" json:"name"`
	Slug            string   `gorm:"uniqueIndex;size:120" json:"slug"`
	Description     string   `json:"description"`
	Price           float64  `gorm:"not null" json:"price"`
	Cost            float64  `gorm:"default:0" json:"cost"`
	CategoryId      uint     `gorm:"not null" json:"categoryId"`
	Category        Category `gorm:"foreignKey:CategoryId" json:"category,omitempty"`
	Image           string   `json:"image"`
	Available       bool     `gorm:"default:true" json:"available"`
	Popular         bool     `gorm:"default:false" json:"popular"`
	PreparationTime int      `gorm:"default:15" json:"preparationTime"`
	Recipes         []Recipe `gorm:"foreignKey:MenuItemId" json:"recipes,omitempty"`
}

type CreateMenuItemInput struct {
	Name            string  `json:"name" validate:"required,max=100"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" validate:"required,gt=0"`
	Cost            float64 `json:"cost" validate:"omitempty,gte=0"`
	CategoryId      uint    `json:"categoryId" validate:"required"`
	Image           string  `json:"image"`
	PreparationTime int     `json:"preparationTime" validate:"omitempty,gt=0"`
}

type UpdateMenuItemInput struct {
	Name            *string  `json:"name" validate:"omitempty,max=100"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price" validate:"omitempty,gt=0"`
	Cost            *float64 `json:"cost" validate:"omitempty,gte=0"`
	CategoryId      *uint    `json:"categoryId"`
	Image           *string  `json:"image"`
	Available       *bool    `json:"available"`
	Popular         *bool    `json:"popular"`
	PreparationTime *int     `json:"preparationTime" validate:"omitempty,gt=0"`
}

type FilterMenuInput struct {
	Pagination
	CategoryId *uint  `query:"categoryId"`
	Available  *bool  `query:"available"`
	SearchKey  string `query:"searchKey"`
}

type CreateCategoryInput struct {
	Name         string `json:"name" validate:"required,max=50"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"displayOrder"`
	StationId    *uint  `json:"stationId"`
}

type UpdateCategoryInput struct {
	Name         *string `json:"name" validate:"omitempty,max=50"`
	Description  *string `json:"description"`
	DisplayOrder *int    `json:"displayOrder"`
	StationId    *uint   `json:"stationId"`
}
