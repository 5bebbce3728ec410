package helper

import (
	"errors"
	"fmt"
	"restaurant_manager/model"

	"gorm.io/gorm"
)

var ErrIngredientNotFound = errors.New("ingredient not found")

// AdjustStock applies a delta to an ingredient and records the movement in
// the stock ledger, both inside one transaction.
func AdjustStock(db *gorm.DB, ingredientId uint, quantity float64, transactionType string, referenceId *uint, referenceType string, notes string, userId uint) (*model.Ingredient, error) {
	var ingredient model.Ingredient

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ingredient, ingredientId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrIngredientNotFound
			}
			return err
		}

		previous := ingredient.CurrentStock
		next := previous + quantity
		if next < 0 {
			return fmt.Errorf("stock of %s cannot go below zero (current %.2f, adjustment %.2f)", ingredient.Name, previous, quantity)
		}

		if err := tx.Model(&ingredient).Update("current_stock", next).Error; err != nil {
			return err
		}

		entry := model.StockTransaction{
			IngredientId:    ingredientId,
			TransactionType: transactionType,
			Quantity:        quantity,
			PreviousStock:   previous,
			NewStock:        next,
			ReferenceId:     referenceId,
			ReferenceType:   referenceType,
			Notes:           notes,
			UserId:          userId,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		ingredient.CurrentStock = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ingredient, nil
}

type StockShortage struct {
	IngredientId uint    `json:"ingredientId"`
	Name         string  `json:"name"`
	Required     float64 `json:"required"`
	Available    float64 `json:"available"`
	Unit         string  `json:"unit"`
}

// CheckOrderStock reports the ingredients an order would need beyond current
// stock, based on the menu item recipes.
func CheckOrderStock(db *gorm.DB, orderId uint) ([]StockShortage, error) {
	required, err := requiredIngredients(db, orderId)
	if err != nil {
		return nil, err
	}

	shortages := []StockShortage{}
	for ingredientId, qty := range required {
		var ingredient model.Ingredient
		if err := db.First(&ingredient, ingredientId).Error; err != nil {
			return nil, err
		}
		if ingredient.CurrentStock < qty {
			shortages = append(shortages, StockShortage{
				IngredientId: ingredientId,
				Name:         ingredient.Name,
				Required:     qty,
				Available:    ingredient.CurrentStock,
				Unit:         ingredient.Unit,
			})
		}
	}
	return shortages, nil
}

// ConsumeOrderStock decrements ingredient stock for every recipe line of an
// order. Invoked explicitly from the inventory endpoint, not from the order
// completion transition.
func ConsumeOrderStock(db *gorm.DB, orderId uint, userId uint) error {
	required, err := requiredIngredients(db, orderId)
	if err != nil {
		return err
	}

	ref := orderId
	for ingredientId, qty := range required {
		if _, err := AdjustStock(db, ingredientId, -qty, "consumption", &ref, "order", fmt.Sprintf("Order #%d consumption", orderId), userId); err != nil {
			return err
		}
	}
	return nil
}

func requiredIngredients(db *gorm.DB, orderId uint) (map[uint]float64, error) {
	var items []model.OrderItem
	if err := db.Where("order_id = ?", orderId).Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrOrderNotFound
	}

	required := map[uint]float64{}
	for _, item := range items {
		var recipes []model.Recipe
		if err := db.Where("menu_item_id = ?", item.MenuItemId).Find(&recipes).Error; err != nil {
			return nil, err
		}
		for _, recipe := range recipes {
			required[recipe.IngredientId] += recipe.QuantityRequired * float64(item.Quantity)
		}
	}
	return required, nil
}
