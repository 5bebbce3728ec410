package handler

import (
	"errors"
	"fmt"
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateOrder inserts the order with item price snapshots, occupies the
// table and optionally assigns a pager, all in one transaction.
func CreateOrder(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateOrder").(model.CreateOrderInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse create order input fail"))
	}

	actor := helper.CurrentUser(c)
	db := database.DB

	var created model.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		order := model.Order{
			OrderNumber:   helper.GenerateOrderNumber(tx),
			TableId:       input.TableId,
			CustomerName:  input.CustomerName,
			Status:        constants.ORDER_PENDING,
			PaymentStatus: constants.PAYMENT_PENDING,
			WaiterId:      actor.ID,
			Notes:         input.Notes,
			OrderTime:     time.Now(),
		}

		total := 0.0
		items := make([]model.OrderItem, 0, len(input.Items))
		for _, itemInput := range input.Items {
			var menuItem model.MenuItem
			if err := tx.First(&menuItem, itemInput.MenuItemId).Error; err != nil {
				return fmt.Errorf("menu item %d not found", itemInput.MenuItemId)
			}
			if !menuItem.Available {
				return fmt.Errorf("menu item %s is not available", menuItem.Name)
			}

			items = append(items, model.OrderItem{
				MenuItemId:          menuItem.ID,
				Quantity:            itemInput.Quantity,
				Price:               menuItem.Price, // snapshot, live price changes do not touch it
				SpecialInstructions: itemInput.SpecialInstructions,
				Status:              constants.ITEM_PENDING,
			})
			total += menuItem.Price * float64(itemInput.Quantity)
		}
		order.TotalAmount = total

		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderId = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		if input.TableId != nil {
			customerCount := input.CustomerCount
			if customerCount == 0 {
				customerCount = 1
			}
			if _, err := helper.SeatTable(tx, *input.TableId, customerCount); err != nil {
				// An occupied table is fine: additional order for a seated party.
				if !errors.Is(err, helper.ErrTableOccupied) {
					return err
				}
			}
		}

		if input.PagerNumber != nil {
			if _, err := helper.AssignPager(tx, *input.PagerNumber, order.ID); err != nil {
				return err
			}
			if err := tx.Model(&order).Update("pager_number", *input.PagerNumber).Error; err != nil {
				return err
			}
		}

		created = order
		return nil
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot create order", err)
	}

	db.Preload("Items").Preload("Table").First(&created, created.ID)
	BroadcastKitchenOrder(&created)

	return utils.SuccessResponse(c, fiber.StatusCreated, created)
}

func GetOrders(c *fiber.Ctx) error {
	filterInput := new(model.FilterOrderInput)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	condition := database.DB.Model(&model.Order{})
	if filterInput.Status != "" {
		condition = condition.Where("status = ?", filterInput.Status)
	}
	if filterInput.PaymentStatus != "" {
		condition = condition.Where("payment_status = ?", filterInput.PaymentStatus)
	}
	if filterInput.TableId != nil {
		condition = condition.Where("table_id = ?", *filterInput.TableId)
	}
	if filterInput.WaiterId != nil {
		condition = condition.Where("waiter_id = ?", *filterInput.WaiterId)
	}
	if filterInput.StartDate != "" {
		if start, err := time.Parse("2006-01-02", filterInput.StartDate); err == nil {
			condition = condition.Where("order_time >= ?", start)
		}
	}
	if filterInput.EndDate != "" {
		if end, err := time.Parse("2006-01-02", filterInput.EndDate); err == nil {
			condition = condition.Where("order_time < ?", end.AddDate(0, 0, 1))
		}
	}

	var totalCount int64
	condition.Count(&totalCount)

	var orders []model.Order
	err := utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page).
		Preload("Items").Preload("Table").
		Order("order_time desc").
		Find(&orders).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       orders,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	})
}

func GetOrderById(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)

	var order model.Order
	err := database.DB.
		Preload("Items").Preload("Items.MenuItem").
		Preload("Table").Preload("Waiter").
		First(&order, orderId).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// GetOrderByNumber is public so customers can check their order status.
func GetOrderByNumber(c *fiber.Ctx) error {
	orderNumber := c.Params("order_number")

	var order model.Order
	err := database.DB.
		Preload("Items").Preload("Items.MenuItem").Preload("Table").
		Where("order_number = ?", orderNumber).
		First(&order).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"orderNumber":        order.OrderNumber,
		"status":             order.Status,
		"estimatedReadyTime": order.EstimatedReadyTime,
		"actualReadyTime":    order.ActualReadyTime,
		"items":              order.Items,
	})
}

// UpdateOrderStatus runs the unified role-gated transition.
func UpdateOrderStatus(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)

	input, ok := c.Locals("inputOrderStatus").(model.OrderStatusInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse order status input fail"))
	}

	actor := helper.CurrentUser(c)

	order, err := helper.ApplyOrderStatus(database.DB, uint(orderId), input.Status, actor.Role)
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrOrderNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
		case errors.Is(err, helper.ErrTransitionDenied):
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.PERMISSION_DENIED, err)
		case errors.Is(err, helper.ErrInvalidTransition), errors.Is(err, helper.ErrOrderTerminal):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid status transition", err)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	BroadcastKitchenOrder(order)

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// CancelOrder is admin/manager only (route-level allow-list).
func CancelOrder(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)

	input := new(model.CancelOrderInput)
	c.BodyParser(input) // reason is optional

	actor := helper.CurrentUser(c)

	order, err := helper.ApplyOrderStatus(database.DB, uint(orderId), constants.ORDER_CANCELLED, actor.Role)
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrOrderNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
		case errors.Is(err, helper.ErrOrderTerminal):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot cancel a completed or cancelled order", err)
		case errors.Is(err, helper.ErrTransitionDenied):
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.PERMISSION_DENIED, err)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	helper.Audit(c, &actor.ID, "order_cancelled", true, map[string]any{"orderId": order.ID, "reason": input.Reason})
	BroadcastKitchenOrder(order)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "order cancelled",
		"reason":  input.Reason,
		"order":   order,
	})
}

func AddItemToOrder(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)

	input := new(model.CreateOrderItemInput)
	if err := c.BodyParser(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	if input.MenuItemId == 0 || input.Quantity <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "menuItemId and positive quantity are required", nil)
	}

	db := database.DB
	var order model.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderId).Error; err != nil {
			return helper.ErrOrderNotFound
		}
		if order.Status == constants.ORDER_COMPLETED || order.Status == constants.ORDER_CANCELLED {
			return helper.ErrOrderTerminal
		}

		var menuItem model.MenuItem
		if err := tx.First(&menuItem, input.MenuItemId).Error; err != nil {
			return errors.New("menu item not found")
		}
		if !menuItem.Available {
			return fmt.Errorf("menu item %s is not available", menuItem.Name)
		}

		item := model.OrderItem{
			OrderId:             order.ID,
			MenuItemId:          menuItem.ID,
			Quantity:            input.Quantity,
			Price:               menuItem.Price,
			SpecialInstructions: input.SpecialInstructions,
			Status:              constants.ITEM_PENDING,
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}

		return recalculateOrderTotal(tx, order.ID)
	})
	if err != nil {
		if errors.Is(err, helper.ErrOrderNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
		}
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot add item", err)
	}

	db.Preload("Items").First(&order, orderId)
	BroadcastKitchenOrder(&order)
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func RemoveItemFromOrder(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)
	itemId, err := c.ParamsInt("item_id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	db := database.DB
	var order model.Order
	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderId).Error; err != nil {
			return helper.ErrOrderNotFound
		}
		if order.Status == constants.ORDER_COMPLETED || order.Status == constants.ORDER_CANCELLED {
			return helper.ErrOrderTerminal
		}

		result := tx.Where("id = ? AND order_id = ?", itemId, order.ID).Delete(&model.OrderItem{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errors.New("order item not found")
		}

		return recalculateOrderTotal(tx, order.ID)
	})
	if txErr != nil {
		if errors.Is(txErr, helper.ErrOrderNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, txErr)
		}
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot remove item", txErr)
	}

	db.Preload("Items").First(&order, orderId)
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func recalculateOrderTotal(tx *gorm.DB, orderId uint) error {
	var total float64
	err := tx.Model(&model.OrderItem{}).
		Where("order_id = ?", orderId).
		Select("COALESCE(SUM(price * quantity),0)").
		Scan(&total).Error
	if err != nil {
		return err
	}
	return tx.Model(&model.Order{}).Where("id = ?", orderId).Update("total_amount", total).Error
}

func SearchOrders(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Search query is required", nil)
	}

	key := "%" + strings.ToLower(query) + "%"
	var orders []model.Order
	err := database.DB.
		Joins("LEFT JOIN tables ON tables.id = orders.table_id").
		Where("LOWER(orders.order_number) LIKE ? OR LOWER(orders.customer_name) LIKE ? OR LOWER(tables.table_number) LIKE ?", key, key, key).
		Order("orders.order_time desc").
		Limit(50).
		Preload("Table").
		Find(&orders).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

func GetOrderStats(c *fiber.Ctx) error {
	timeRange := c.Query("range", "today")

	condition := database.DB.Model(&model.Order{})
	now := time.Now()
	switch timeRange {
	case "today":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		condition = condition.Where("order_time >= ?", start)
	case "week":
		condition = condition.Where("order_time >= ?", now.AddDate(0, 0, -7))
	case "month":
		condition = condition.Where("order_time >= ?", now.AddDate(0, 0, -30))
	}

	type stats struct {
		TotalOrders      int64   `json:"totalOrders"`
		CompletedOrders  int64   `json:"completedOrders"`
		PendingOrders    int64   `json:"pendingOrders"`
		PreparingOrders  int64   `json:"preparingOrders"`
		ReadyOrders      int64   `json:"readyOrders"`
		CancelledOrders  int64   `json:"cancelledOrders"`
		TotalRevenue     float64 `json:"totalRevenue"`
		AverageOrder     float64 `json:"averageOrderValue"`
		PaidOrders       int64   `json:"paidOrders"`
		PendingPayments  int64   `json:"pendingPaymentOrders"`
	}

	base := condition.Session(&gorm.Session{})

	var s stats
	base.Count(&s.TotalOrders)
	base.Where("status = ?", constants.ORDER_COMPLETED).Count(&s.CompletedOrders)
	base.Where("status = ?", constants.ORDER_PENDING).Count(&s.PendingOrders)
	base.Where("status = ?", constants.ORDER_PREPARING).Count(&s.PreparingOrders)
	base.Where("status = ?", constants.ORDER_READY).Count(&s.ReadyOrders)
	base.Where("status = ?", constants.ORDER_CANCELLED).Count(&s.CancelledOrders)
	base.Select("COALESCE(SUM(total_amount),0)").Scan(&s.TotalRevenue)
	base.Select("COALESCE(AVG(total_amount),0)").Scan(&s.AverageOrder)
	base.Where("payment_status = ?", constants.PAYMENT_PAID).Count(&s.PaidOrders)
	base.Where("payment_status = ?", constants.PAYMENT_PENDING).Count(&s.PendingPayments)

	return utils.SuccessResponse(c, fiber.StatusOK, s)
}

// GetWaiterOrders lists the calling waiter's open orders.
func GetWaiterOrders(c *fiber.Ctx) error {
	actor := helper.CurrentUser(c)

	var orders []model.Order
	err := database.DB.
		Where("waiter_id = ? AND status IN ?", actor.ID, []string{constants.ORDER_PENDING, constants.ORDER_PREPARING, constants.ORDER_READY}).
		Preload("Items").Preload("Table").
		Order("order_time").
		Find(&orders).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

// GetWaiterDailyOrders returns the waiter's orders plus totals for one day.
func GetWaiterDailyOrders(c *fiber.Ctx) error {
	actor := helper.CurrentUser(c)

	day := time.Now()
	if dateStr := c.Params("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD", err)
		}
		day = parsed
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var orders []model.Order
	err := database.DB.
		Where("waiter_id = ? AND order_time >= ? AND order_time < ?", actor.ID, start, end).
		Preload("Items").Preload("Table").
		Order("order_time desc").
		Find(&orders).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	totalSales := 0.0
	completed := 0
	for _, order := range orders {
		if order.Status == constants.ORDER_COMPLETED {
			completed++
			totalSales += order.TotalAmount
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"date":            start.Format("2006-01-02"),
		"orders":          orders,
		"orderCount":      len(orders),
		"completedOrders": completed,
		"totalSales":      totalSales,
	})
}
