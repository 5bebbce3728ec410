package helper

import (
	"errors"
	"strconv"
	"time"

	"restaurant_manager/config"
	"restaurant_manager/constants"
	"restaurant_manager/model"

	"gorm.io/gorm"
)

var (
	ErrAlreadyPaid    = errors.New("order is already paid")
	ErrOrderCancelled = errors.New("cannot take payment on a cancelled order")
)

// TaxRate reads TAX_RATE from the environment, defaulting to 8%.
func TaxRate() float64 {
	if raw := config.Config("TAX_RATE"); raw != "" {
		if rate, err := strconv.ParseFloat(raw, 64); err == nil && rate >= 0 {
			return rate
		}
	}
	return 0.08
}

// SettlePayment records the payment and closes the order in one transaction:
// payment fields and tax are written, the order is forced to completed, items
// are marked served and the table and pager are released. A failure anywhere
// rolls the whole settlement back.
func SettlePayment(db *gorm.DB, orderId uint, input model.PaymentInput, cashierId uint) (*model.Order, error) {
	var order model.Order
	if err := db.Preload("Items").First(&order, orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if order.PaymentStatus == constants.PAYMENT_PAID {
		return nil, ErrAlreadyPaid
	}
	if order.Status == constants.ORDER_CANCELLED {
		return nil, ErrOrderCancelled
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		taxable := order.TotalAmount - order.Discount - input.Discount
		if taxable < 0 {
			taxable = 0
		}
		tax := taxable * TaxRate()

		splitCount := input.SplitCount
		if splitCount == 0 {
			splitCount = 1
		}

		updates := map[string]any{
			"payment_status": constants.PAYMENT_PAID,
			"payment_method": input.PaymentMethod,
			"tip":            input.Tip,
			"discount":       order.Discount + input.Discount,
			"split_count":    splitCount,
			"tax":            tax,
			"cashier_id":     cashierId,
		}

		if order.Status != constants.ORDER_COMPLETED {
			updates["status"] = constants.ORDER_COMPLETED
			updates["completed_time"] = time.Now()
			if err := cascadeItems(tx, order.ID, []string{constants.ITEM_PENDING, constants.ITEM_PREPARING, constants.ITEM_READY}, constants.ITEM_SERVED); err != nil {
				return err
			}
			if err := releaseOrderResources(tx, &order); err != nil {
				return err
			}
		}

		return tx.Model(&model.Order{}).Where("id = ?", order.ID).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	var settled model.Order
	if err := db.Preload("Items").Preload("Table").First(&settled, orderId).Error; err != nil {
		return nil, err
	}
	return &settled, nil
}
