package helper

import (
	"testing"

	"restaurant_manager/constants"
	"restaurant_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedIngredient(t *testing.T, db *gorm.DB, name string, stock float64) *model.Ingredient {
	t.Helper()
	ingredient := model.Ingredient{Name: name, Unit: "kg", CurrentStock: stock, MinimumStock: 2}
	require.NoError(t, db.Create(&ingredient).Error)
	return &ingredient
}

func TestAdjustStockWritesLedger(t *testing.T) {
	db := setupTestDB(t)
	ingredient := seedIngredient(t, db, "Flour", 10)

	updated, err := AdjustStock(db, ingredient.ID, -4, "adjustment", nil, "", "spot count", 7)
	require.NoError(t, err)
	assert.Equal(t, 6.0, updated.CurrentStock)

	var entries []model.StockTransaction
	require.NoError(t, db.Where("ingredient_id = ?", ingredient.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, "adjustment", entries[0].TransactionType)
	assert.Equal(t, -4.0, entries[0].Quantity)
	assert.Equal(t, 10.0, entries[0].PreviousStock)
	assert.Equal(t, 6.0, entries[0].NewStock)
	assert.Equal(t, uint(7), entries[0].UserId)
}

func TestAdjustStockRejectsNegative(t *testing.T) {
	db := setupTestDB(t)
	ingredient := seedIngredient(t, db, "Salt", 3)

	_, err := AdjustStock(db, ingredient.ID, -5, "wastage", nil, "", "", 1)
	require.Error(t, err)

	// Rolled back: stock untouched, no ledger row.
	var got model.Ingredient
	require.NoError(t, db.First(&got, ingredient.ID).Error)
	assert.Equal(t, 3.0, got.CurrentStock)

	var count int64
	db.Model(&model.StockTransaction{}).Where("ingredient_id = ?", ingredient.ID).Count(&count)
	assert.Zero(t, count)
}

func TestAdjustStockUnknownIngredient(t *testing.T) {
	db := setupTestDB(t)

	_, err := AdjustStock(db, 99, 1, "adjustment", nil, "", "", 1)
	assert.ErrorIs(t, err, ErrIngredientNotFound)
}

func TestConsumeOrderStock(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, constants.ORDER_COMPLETED)

	flour := seedIngredient(t, db, "Flour", 10)
	cheese := seedIngredient(t, db, "Cheese", 5)

	var item model.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&item).Error)
	recipes := []model.Recipe{
		{MenuItemId: item.MenuItemId, IngredientId: flour.ID, QuantityRequired: 0.5},
		{MenuItemId: item.MenuItemId, IngredientId: cheese.ID, QuantityRequired: 0.2},
	}
	require.NoError(t, db.Create(&recipes).Error)

	require.NoError(t, ConsumeOrderStock(db, order.ID, 1))

	// Item quantity is 2.
	var gotFlour, gotCheese model.Ingredient
	require.NoError(t, db.First(&gotFlour, flour.ID).Error)
	require.NoError(t, db.First(&gotCheese, cheese.ID).Error)
	assert.InDelta(t, 9.0, gotFlour.CurrentStock, 0.001)
	assert.InDelta(t, 4.6, gotCheese.CurrentStock, 0.001)

	var entries []model.StockTransaction
	require.NoError(t, db.Where("transaction_type = ?", "consumption").Find(&entries).Error)
	assert.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, "order", entry.ReferenceType)
		require.NotNil(t, entry.ReferenceId)
		assert.Equal(t, order.ID, *entry.ReferenceId)
	}
}

func TestCheckOrderStockReportsShortages(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, constants.ORDER_PENDING)

	scarce := seedIngredient(t, db, "Truffle", 0.1)

	var item model.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&item).Error)
	recipe := model.Recipe{MenuItemId: item.MenuItemId, IngredientId: scarce.ID, QuantityRequired: 1}
	require.NoError(t, db.Create(&recipe).Error)

	shortages, err := CheckOrderStock(db, order.ID)
	require.NoError(t, err)
	require.Len(t, shortages, 1)
	assert.Equal(t, scarce.ID, shortages[0].IngredientId)
	assert.Equal(t, 2.0, shortages[0].Required)
	assert.InDelta(t, 0.1, shortages[0].Available, 0.001)
}

func TestCheckOrderStockUnknownOrder(t *testing.T) {
	db := setupTestDB(t)

	_, err := CheckOrderStock(db, 500)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
