package helper

import (
	"errors"
	"fmt"
	"log"
	"restaurant_manager/constants"
	"restaurant_manager/model"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrTransitionDenied   = errors.New("role cannot perform this transition")
	ErrOrderTerminal      = errors.New("order is already completed or cancelled")
)

// transitionRights is the capability table: role -> target statuses it may set.
var transitionRights = map[string][]string{
	constants.ROLE_ADMIN:   {constants.ORDER_PREPARING, constants.ORDER_READY, constants.ORDER_COMPLETED, constants.ORDER_CANCELLED},
	constants.ROLE_MANAGER: {constants.ORDER_PREPARING, constants.ORDER_READY, constants.ORDER_COMPLETED, constants.ORDER_CANCELLED},
	constants.ROLE_CASHIER: {constants.ORDER_PREPARING, constants.ORDER_READY, constants.ORDER_COMPLETED},
	constants.ROLE_CHEF:    {constants.ORDER_PREPARING, constants.ORDER_READY},
	constants.ROLE_WAITER:  {constants.ORDER_COMPLETED},
}

// validNext maps the current status to the statuses reachable from it.
var validNext = map[string][]string{
	constants.ORDER_PENDING:   {constants.ORDER_PREPARING, constants.ORDER_READY, constants.ORDER_CANCELLED},
	constants.ORDER_PREPARING: {constants.ORDER_READY, constants.ORDER_COMPLETED, constants.ORDER_CANCELLED},
	constants.ORDER_READY:     {constants.ORDER_COMPLETED, constants.ORDER_CANCELLED},
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// CanTransition reports whether the role is allowed to set the target status.
func CanTransition(role, target string) bool {
	return contains(transitionRights[role], target)
}

// IsValidTransition reports whether target is reachable from current.
func IsValidTransition(current, target string) bool {
	return contains(validNext[current], target)
}

// GenerateOrderNumber produces the next ORD-NNNN number, falling back to a
// uuid suffix when the sequence cannot be read.
func GenerateOrderNumber(db *gorm.DB) string {
	var last model.Order
	err := db.Where("order_number LIKE ?", "ORD-%").
		Order("id desc").
		First(&last).Error

	nextNum := 1000
	if err == nil {
		var n int
		if _, scanErr := fmt.Sscanf(last.OrderNumber, "ORD-%d", &n); scanErr == nil && n >= 1000 {
			nextNum = n + 1
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "ORD-" + uuid.New().String()[:8]
	}

	return fmt.Sprintf("ORD-%d", nextNum)
}

// ApplyOrderStatus runs the unified order transition. All side effects
// (timestamps, item cascade, table free, pager activate/release) execute in a
// single transaction so a failure leaves nothing half-applied.
func ApplyOrderStatus(db *gorm.DB, orderId uint, target string, actorRole string) (*model.Order, error) {
	var order model.Order
	if err := db.Preload("Items").First(&order, orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if !CanTransition(actorRole, target) {
		return nil, ErrTransitionDenied
	}
	if order.Status == constants.ORDER_COMPLETED || order.Status == constants.ORDER_CANCELLED {
		return nil, ErrOrderTerminal
	}
	if !IsValidTransition(order.Status, target) {
		return nil, ErrInvalidTransition
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		updates := map[string]any{"status": target}

		switch target {
		case constants.ORDER_PREPARING:
			estimated := now.Add(30 * time.Minute)
			updates["estimated_ready_time"] = estimated
			if err := cascadeItems(tx, order.ID, []string{constants.ITEM_PENDING}, constants.ITEM_PREPARING); err != nil {
				return err
			}

		case constants.ORDER_READY:
			updates["actual_ready_time"] = now
			if err := cascadeItems(tx, order.ID, []string{constants.ITEM_PENDING, constants.ITEM_PREPARING}, constants.ITEM_READY); err != nil {
				return err
			}
			if order.PagerNumber != nil {
				if err := activatePagerTx(tx, *order.PagerNumber); err != nil {
					return err
				}
				// No physical integration; the buzz is log-only.
				log.Printf("buzzing pager #%d for order %s", *order.PagerNumber, order.OrderNumber)
			}

		case constants.ORDER_COMPLETED:
			updates["completed_time"] = now
			if err := cascadeItems(tx, order.ID, []string{constants.ITEM_PENDING, constants.ITEM_PREPARING, constants.ITEM_READY}, constants.ITEM_SERVED); err != nil {
				return err
			}
			if err := releaseOrderResources(tx, &order); err != nil {
				return err
			}

		case constants.ORDER_CANCELLED:
			if err := releaseOrderResources(tx, &order); err != nil {
				return err
			}
		}

		return tx.Model(&model.Order{}).Where("id = ?", order.ID).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	var updated model.Order
	if err := db.Preload("Items").Preload("Table").First(&updated, orderId).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func cascadeItems(tx *gorm.DB, orderId uint, from []string, to string) error {
	return tx.Model(&model.OrderItem{}).
		Where("order_id = ? AND status IN ?", orderId, from).
		Update("status", to).Error
}

// releaseOrderResources frees the table and releases the pager bound to the
// order. It runs on both completion and cancellation.
func releaseOrderResources(tx *gorm.DB, order *model.Order) error {
	if order.TableId != nil {
		err := tx.Model(&model.Table{}).Where("id = ?", *order.TableId).
			Updates(map[string]any{"status": constants.TABLE_AVAILABLE, "customer_count": 0}).Error
		if err != nil {
			return err
		}
	}

	if order.PagerNumber != nil {
		err := tx.Model(&model.Pager{}).Where("pager_number = ?", *order.PagerNumber).
			Updates(map[string]any{"status": constants.PAGER_AVAILABLE, "order_id": nil, "assigned_at": nil}).Error
		if err != nil {
			return err
		}
	}

	return nil
}

func activatePagerTx(tx *gorm.DB, pagerNumber int) error {
	return tx.Model(&model.Pager{}).
		Where("pager_number = ? AND status = ?", pagerNumber, constants.PAGER_ASSIGNED).
		Update("status", constants.PAGER_ACTIVE).Error
}

// AssignPager binds an available pager to the order using a conditional
// update; zero affected rows means another request won the pager.
func AssignPager(db *gorm.DB, pagerNumber int, orderId uint) (*model.Pager, error) {
	now := time.Now()
	result := db.Model(&model.Pager{}).
		Where("pager_number = ? AND status = ?", pagerNumber, constants.PAGER_AVAILABLE).
		Updates(map[string]any{"status": constants.PAGER_ASSIGNED, "order_id": orderId, "assigned_at": now})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errors.New("pager not available or already assigned")
	}

	var pager model.Pager
	if err := db.Where("pager_number = ?", pagerNumber).First(&pager).Error; err != nil {
		return nil, err
	}
	return &pager, nil
}
