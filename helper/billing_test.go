package helper

import (
	"testing"

	"restaurant_manager/constants"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettlePaymentClosesOpenOrder(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, constants.ORDER_READY)

	input := model.PaymentInput{PaymentMethod: "card", Tip: 3}
	settled, err := SettlePayment(db, order.ID, input, 42)
	require.NoError(t, err)

	assert.Equal(t, constants.PAYMENT_PAID, settled.PaymentStatus)
	assert.Equal(t, "card", settled.PaymentMethod)
	assert.Equal(t, constants.ORDER_COMPLETED, settled.Status)
	require.NotNil(t, settled.CompletedTime)
	require.NotNil(t, settled.CashierId)
	assert.Equal(t, uint(42), *settled.CashierId)
	assert.InDelta(t, 25*TaxRate(), settled.Tax, 0.001)
	assert.Equal(t, 1, settled.SplitCount)

	for _, item := range settled.Items {
		assert.Equal(t, constants.ITEM_SERVED, item.Status)
	}

	var table model.Table
	require.NoError(t, db.First(&table, *order.TableId).Error)
	assert.Equal(t, constants.TABLE_AVAILABLE, table.Status)
}

func TestSettlePaymentAppliesDiscountBeforeTax(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, constants.ORDER_COMPLETED)

	input := model.PaymentInput{PaymentMethod: "cash", Discount: 5}
	settled, err := SettlePayment(db, order.ID, input, 1)
	require.NoError(t, err)

	assert.Equal(t, 5.0, settled.Discount)
	assert.InDelta(t, 20*TaxRate(), settled.Tax, 0.001)
}

func TestSettlePaymentSplit(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, constants.ORDER_READY)

	input := model.PaymentInput{PaymentMethod: "split", SplitCount: 4}
	settled, err := SettlePayment(db, order.ID, input, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, settled.SplitCount)
}

func TestSettlePaymentRollsBackOnMidFlightFailure(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, constants.ORDER_READY)

	pager := model.Pager{PagerNumber: 7, Status: constants.PAGER_ASSIGNED, OrderId: utils.Ptr(order.ID)}
	require.NoError(t, db.Create(&pager).Error)
	require.NoError(t, db.Model(&model.Order{}).Where("id = ?", order.ID).Update("pager_number", 7).Error)

	// Dropping the pagers table makes the pager release fail after the table
	// has already been freed inside the transaction.
	require.NoError(t, db.Migrator().DropTable(&model.Pager{}))

	_, err := SettlePayment(db, order.ID, model.PaymentInput{PaymentMethod: "card"}, 1)
	require.Error(t, err)

	var reloaded model.Order
	require.NoError(t, db.Preload("Items").First(&reloaded, order.ID).Error)
	assert.Equal(t, constants.ORDER_READY, reloaded.Status)
	assert.Equal(t, constants.PAYMENT_PENDING, reloaded.PaymentStatus)
	assert.Nil(t, reloaded.CompletedTime)
	for _, item := range reloaded.Items {
		assert.Equal(t, constants.ITEM_PENDING, item.Status)
	}

	var table model.Table
	require.NoError(t, db.First(&table, *order.TableId).Error)
	assert.Equal(t, constants.TABLE_OCCUPIED, table.Status)
	assert.Equal(t, 2, table.CustomerCount)
}

func TestSettlePaymentRejectsDoublePay(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, constants.ORDER_READY)

	input := model.PaymentInput{PaymentMethod: "cash"}
	_, err := SettlePayment(db, order.ID, input, 1)
	require.NoError(t, err)

	_, err = SettlePayment(db, order.ID, input, 1)
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestSettlePaymentRejectsCancelledOrder(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, constants.ORDER_CANCELLED)

	_, err := SettlePayment(db, order.ID, model.PaymentInput{PaymentMethod: "cash"}, 1)
	assert.ErrorIs(t, err, ErrOrderCancelled)
}

func TestSettlePaymentUnknownOrder(t *testing.T) {
	db := setupTestDB(t)

	_, err := SettlePayment(db, 404, model.PaymentInput{PaymentMethod: "cash"}, 1)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
