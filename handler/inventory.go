package handler

import (
	"errors"
	"strings"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

func GetIngredients(c *fiber.Ctx) error {
	condition := database.DB.Model(&model.Ingredient{})
	if category := c.Query("category"); category != "" {
		condition = condition.Where("category = ?", category)
	}
	if searchKey := c.Query("searchKey"); searchKey != "" {
		condition = condition.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(searchKey)+"%")
	}

	var ingredients []model.Ingredient
	err := condition.Preload("Supplier").Order("name").Find(&ingredients).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, ingredients)
}

func GetIngredientById(c *fiber.Ctx) error {
	ingredientId := c.Locals("inputId").(int)

	var ingredient model.Ingredient
	if err := database.DB.Preload("Supplier").First(&ingredient, ingredientId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, ingredient)
}

func CreateIngredient(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateIngredient").(model.CreateIngredientInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse create ingredient input fail"))
	}

	var ingredient model.Ingredient
	copier.Copy(&ingredient, &input)

	if err := database.DB.Create(&ingredient).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Ingredient name already exists", err)
	}

	// Seed the ledger when the ingredient starts with stock on hand.
	if ingredient.CurrentStock > 0 {
		actor := helper.CurrentUser(c)
		database.DB.Create(&model.StockTransaction{
			IngredientId:    ingredient.ID,
			TransactionType: "adjustment",
			Quantity:        ingredient.CurrentStock,
			PreviousStock:   0,
			NewStock:        ingredient.CurrentStock,
			Notes:           "initial stock",
			UserId:          actor.ID,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, ingredient)
}

func UpdateIngredient(c *fiber.Ctx) error {
	ingredientId := c.Locals("inputId").(int)

	input, ok := c.Locals("inputUpdateIngredient").(model.UpdateIngredientInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse update ingredient input fail"))
	}

	var ingredient model.Ingredient
	if err := database.DB.First(&ingredient, ingredientId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	// CurrentStock is deliberately absent from the update input, stock only
	// changes through the ledgered adjust endpoints.
	copier.CopyWithOption(&ingredient, &input, copier.Option{IgnoreEmpty: true})

	if err := database.DB.Save(&ingredient).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cannot update ingredient", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, ingredient)
}

func DeleteIngredient(c *fiber.Ctx) error {
	ingredientId := c.Locals("inputId").(int)

	var ingredient model.Ingredient
	if err := database.DB.First(&ingredient, ingredientId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	var recipeCount int64
	database.DB.Model(&model.Recipe{}).Where("ingredient_id = ?", ingredient.ID).Count(&recipeCount)
	if recipeCount > 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Ingredient is used by menu item recipes", nil)
	}

	if err := database.DB.Delete(&ingredient).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "ingredient deleted"})
}

// AdjustIngredientStock applies a signed delta and writes the ledger entry.
func AdjustIngredientStock(c *fiber.Ctx) error {
	ingredientId := c.Locals("inputId").(int)

	input, ok := c.Locals("inputStockAdjust").(model.StockAdjustInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse stock adjust input fail"))
	}

	actor := helper.CurrentUser(c)
	ingredient, err := helper.AdjustStock(database.DB, uint(ingredientId), input.Quantity, "adjustment", nil, "", input.Notes, actor.ID)
	if err != nil {
		if errors.Is(err, helper.ErrIngredientNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
		}
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot adjust stock", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, ingredient)
}

// RecordWastage removes stock as wastage, always negative.
func RecordWastage(c *fiber.Ctx) error {
	ingredientId := c.Locals("inputId").(int)

	input, ok := c.Locals("inputWastage").(model.WastageInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse wastage input fail"))
	}

	actor := helper.CurrentUser(c)
	ingredient, err := helper.AdjustStock(database.DB, uint(ingredientId), -input.Quantity, "wastage", nil, "", input.Notes, actor.ID)
	if err != nil {
		if errors.Is(err, helper.ErrIngredientNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
		}
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot record wastage", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, ingredient)
}

func GetLowStockIngredients(c *fiber.Ctx) error {
	var ingredients []model.Ingredient
	err := database.DB.
		Where("current_stock <= minimum_stock").
		Preload("Supplier").
		Order("name").
		Find(&ingredients).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, ingredients)
}

func GetStockTransactions(c *fiber.Ctx) error {
	ingredientId := c.Locals("inputId").(int)

	var transactions []model.StockTransaction
	err := database.DB.
		Where("ingredient_id = ?", ingredientId).
		Order("created_at desc").
		Limit(100).
		Find(&transactions).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, transactions)
}

func GetInventorySummary(c *fiber.Ctx) error {
	db := database.DB

	var total, lowStock, outOfStock int64
	db.Model(&model.Ingredient{}).Count(&total)
	db.Model(&model.Ingredient{}).Where("current_stock <= minimum_stock").Count(&lowStock)
	db.Model(&model.Ingredient{}).Where("current_stock <= 0").Count(&outOfStock)

	var totalValue float64
	db.Model(&model.Ingredient{}).Select("COALESCE(SUM(current_stock * cost_per_unit),0)").Scan(&totalValue)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"totalIngredients": total,
		"lowStockCount":    lowStock,
		"outOfStockCount":  outOfStock,
		"totalValue":       totalValue,
	})
}

func GetIngredientCategories(c *fiber.Ctx) error {
	var categories []string
	err := database.DB.Model(&model.Ingredient{}).
		Where("category <> ''").
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, categories)
}

// GetUsageStats sums ledger movement per ingredient over the last N days.
func GetUsageStats(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)
	since := time.Now().AddDate(0, 0, -days)

	type usageRow struct {
		IngredientId uint    `json:"ingredientId"`
		Name         string  `json:"name"`
		Consumed     float64 `json:"consumed"`
		Wasted       float64 `json:"wasted"`
		Purchased    float64 `json:"purchased"`
	}

	var rows []usageRow
	err := database.DB.Model(&model.StockTransaction{}).
		Select(`stock_transactions.ingredient_id, ingredients.name,
			COALESCE(SUM(CASE WHEN transaction_type = 'consumption' THEN -quantity ELSE 0 END),0) AS consumed,
			COALESCE(SUM(CASE WHEN transaction_type = 'wastage' THEN -quantity ELSE 0 END),0) AS wasted,
			COALESCE(SUM(CASE WHEN transaction_type = 'purchase' THEN quantity ELSE 0 END),0) AS purchased`).
		Joins("JOIN ingredients ON ingredients.id = stock_transactions.ingredient_id").
		Where("stock_transactions.created_at >= ?", since).
		Group("stock_transactions.ingredient_id, ingredients.name").
		Order("consumed desc").
		Scan(&rows).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, rows)
}

// CheckOrderStock previews the shortages an order would hit.
func CheckOrderStock(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)

	shortages, err := helper.CheckOrderStock(database.DB, uint(orderId))
	if err != nil {
		if errors.Is(err, helper.ErrOrderNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"sufficient": len(shortages) == 0,
		"shortages":  shortages,
	})
}

// ConsumeOrderStock deducts the recipe quantities of an order from stock.
func ConsumeOrderStock(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)

	actor := helper.CurrentUser(c)
	if err := helper.ConsumeOrderStock(database.DB, uint(orderId), actor.ID); err != nil {
		if errors.Is(err, helper.ErrOrderNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
		}
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot consume stock", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "stock consumed"})
}
