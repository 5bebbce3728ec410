package handler

import (
	"errors"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func GetMenuItemRecipes(c *fiber.Ctx) error {
	menuItemId := c.Locals("inputId").(int)

	var menuItem model.MenuItem
	if err := database.DB.First(&menuItem, menuItemId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	var recipes []model.Recipe
	err := database.DB.Where("menu_item_id = ?", menuItem.ID).
		Preload("Ingredient").
		Find(&recipes).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, recipes)
}

// SetMenuItemRecipes replaces the full recipe of a menu item with the posted
// ingredient list, upserting quantities on the composite key.
func SetMenuItemRecipes(c *fiber.Ctx) error {
	menuItemId := c.Locals("inputId").(int)

	input, ok := c.Locals("inputRecipeBulk").(model.RecipeBulkInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse recipe input fail"))
	}

	var menuItem model.MenuItem
	if err := database.DB.First(&menuItem, menuItemId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		keep := make([]uint, 0, len(input.Ingredients))
		for _, line := range input.Ingredients {
			var ingredient model.Ingredient
			if err := tx.First(&ingredient, line.IngredientId).Error; err != nil {
				return errors.New("ingredient not found")
			}
			keep = append(keep, line.IngredientId)

			recipe := model.Recipe{
				MenuItemId:       menuItem.ID,
				IngredientId:     line.IngredientId,
				QuantityRequired: line.QuantityRequired,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "menu_item_id"}, {Name: "ingredient_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"quantity_required"}),
			}).Create(&recipe).Error
			if err != nil {
				return err
			}
		}

		return tx.Where("menu_item_id = ? AND ingredient_id NOT IN ?", menuItem.ID, keep).
			Delete(&model.Recipe{}).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot set recipes", err)
	}

	var recipes []model.Recipe
	database.DB.Where("menu_item_id = ?", menuItem.ID).Preload("Ingredient").Find(&recipes)
	return utils.SuccessResponse(c, fiber.StatusOK, recipes)
}

// GetMenuItemCost rolls the recipe up into an ingredient cost and the margin
// against the current menu price.
func GetMenuItemCost(c *fiber.Ctx) error {
	menuItemId := c.Locals("inputId").(int)

	var menuItem model.MenuItem
	if err := database.DB.First(&menuItem, menuItemId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	var recipes []model.Recipe
	if err := database.DB.Where("menu_item_id = ?", menuItem.ID).Preload("Ingredient").Find(&recipes).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	type costLine struct {
		IngredientId uint    `json:"ingredientId"`
		Name         string  `json:"name"`
		Quantity     float64 `json:"quantity"`
		Unit         string  `json:"unit"`
		CostPerUnit  float64 `json:"costPerUnit"`
		Cost         float64 `json:"cost"`
	}
	lines := make([]costLine, 0, len(recipes))
	totalCost := 0.0
	for _, recipe := range recipes {
		cost := recipe.QuantityRequired * recipe.Ingredient.CostPerUnit
		totalCost += cost
		lines = append(lines, costLine{
			IngredientId: recipe.IngredientId,
			Name:         recipe.Ingredient.Name,
			Quantity:     recipe.QuantityRequired,
			Unit:         recipe.Ingredient.Unit,
			CostPerUnit:  recipe.Ingredient.CostPerUnit,
			Cost:         cost,
		})
	}

	margin := 0.0
	if menuItem.Price > 0 {
		margin = (menuItem.Price - totalCost) / menuItem.Price * 100
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"menuItemId":    menuItem.ID,
		"name":          menuItem.Name,
		"price":         menuItem.Price,
		"ingredients":   lines,
		"totalCost":     totalCost,
		"profit":        menuItem.Price - totalCost,
		"marginPercent": margin,
	})
}

func DeleteMenuItemRecipe(c *fiber.Ctx) error {
	menuItemId := c.Locals("inputId").(int)
	ingredientId, err := c.ParamsInt("ingredient_id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	result := database.DB.Where("menu_item_id = ? AND ingredient_id = ?", menuItemId, ingredientId).
		Delete(&model.Recipe{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "recipe line deleted"})
}
