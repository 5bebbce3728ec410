package model

// Recipe links one ingredient with the quantity a menu item requires.
type Recipe struct {
	DTO
	MenuItemId       uint       `gorm:"not null;uniqueIndex:idx_recipe_item_ingredient" json:"menuItemId"`
	IngredientId     uint       `gorm:"not null;uniqueIndex:idx_recipe_item_ingredient" json:"ingredientId"`
	Ingredient       Ingredient `gorm:"foreignKey:IngredientId" json:"ingredient,omitempty"`
	QuantityRequired float64    `gorm:"not null" json:"quantityRequired"`
}

type RecipeIngredientInput struct {
	IngredientId     uint    `json:"ingredientId" validate:"required"`
	QuantityRequired float64 `json:"quantityRequired" validate:"required,gt=0"`
}

type RecipeBulkInput struct {
	Ingredients []RecipeIngredientInput `json:"ingredients" validate:"required,min=1,dive"`
}
