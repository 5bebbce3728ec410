package handler

import (
	"errors"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// kitchenStatusRank orders the queue: ready first, then preparing, then pending.
var kitchenStatusRank = map[string]int{
	constants.ORDER_READY:     0,
	constants.ORDER_PREPARING: 1,
	constants.ORDER_PENDING:   2,
}

// FetchKitchenQueue loads every open order, ready > preparing > pending and
// oldest first within a status. Shared by the REST endpoint and the websocket.
func FetchKitchenQueue() ([]model.Order, error) {
	var orders []model.Order
	err := database.DB.
		Where("status IN ?", []string{constants.ORDER_PENDING, constants.ORDER_PREPARING, constants.ORDER_READY}).
		Preload("Items").Preload("Items.MenuItem").Preload("Table").
		Order("order_time").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	// Stable partition by status rank, order_time already sorted by the query.
	sorted := make([]model.Order, 0, len(orders))
	for rank := 0; rank <= 2; rank++ {
		for _, order := range orders {
			if kitchenStatusRank[order.Status] == rank {
				sorted = append(sorted, order)
			}
		}
	}
	return sorted, nil
}

func GetKitchenQueue(c *fiber.Ctx) error {
	orders, err := FetchKitchenQueue()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

// GetUrgentOrders lists open orders waiting longer than 20 minutes.
func GetUrgentOrders(c *fiber.Ctx) error {
	cutoff := time.Now().Add(-20 * time.Minute)

	var orders []model.Order
	err := database.DB.
		Where("status IN ? AND order_time < ?", []string{constants.ORDER_PENDING, constants.ORDER_PREPARING}, cutoff).
		Preload("Items").Preload("Table").
		Order("order_time").
		Find(&orders).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

// UpdateOrderItemStatus moves one line item through the kitchen. When every
// item of the order is ready the order itself is not bumped automatically,
// chefs confirm that through the order status endpoint.
func UpdateOrderItemStatus(c *fiber.Ctx) error {
	itemId := c.Locals("inputId").(int)

	input, ok := c.Locals("inputItemStatus").(model.ItemStatusInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse item status input fail"))
	}

	var item model.OrderItem
	if err := database.DB.First(&item, itemId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	var order model.Order
	if err := database.DB.First(&order, item.OrderId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	if order.Status == constants.ORDER_COMPLETED || order.Status == constants.ORDER_CANCELLED {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Order is already closed", nil)
	}

	if err := database.DB.Model(&item).Update("status", input.Status).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	database.DB.Preload("Items").First(&order, order.ID)
	BroadcastKitchenOrder(&order)

	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

// GetStationQueue shows the open items routed to one station through its
// categories.
func GetStationQueue(c *fiber.Ctx) error {
	stationId := c.Locals("inputId").(int)

	var station model.Station
	if err := database.DB.First(&station, stationId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	var items []model.OrderItem
	err := database.DB.
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Joins("JOIN categories ON categories.id = menu_items.category_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("categories.station_id = ?", station.ID).
		Where("order_items.status IN ?", []string{constants.ITEM_PENDING, constants.ITEM_PREPARING}).
		Where("orders.status IN ?", []string{constants.ORDER_PENDING, constants.ORDER_PREPARING}).
		Preload("MenuItem").
		Order("order_items.created_at").
		Find(&items).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"station": station,
		"items":   items,
	})
}

func GetKitchenStats(c *fiber.Ctx) error {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	type stats struct {
		PendingOrders     int64   `json:"pendingOrders"`
		PreparingOrders   int64   `json:"preparingOrders"`
		ReadyOrders       int64   `json:"readyOrders"`
		UrgentOrders      int64   `json:"urgentOrders"`
		CompletedToday    int64   `json:"completedToday"`
		AvgPrepMinutes    float64 `json:"avgPrepMinutes"`
	}

	db := database.DB
	var s stats
	db.Model(&model.Order{}).Where("status = ?", constants.ORDER_PENDING).Count(&s.PendingOrders)
	db.Model(&model.Order{}).Where("status = ?", constants.ORDER_PREPARING).Count(&s.PreparingOrders)
	db.Model(&model.Order{}).Where("status = ?", constants.ORDER_READY).Count(&s.ReadyOrders)
	db.Model(&model.Order{}).
		Where("status IN ? AND order_time < ?", []string{constants.ORDER_PENDING, constants.ORDER_PREPARING}, now.Add(-20*time.Minute)).
		Count(&s.UrgentOrders)
	db.Model(&model.Order{}).
		Where("status = ? AND completed_time >= ?", constants.ORDER_COMPLETED, startOfDay).
		Count(&s.CompletedToday)

	// Average minutes from order to ready for today's orders.
	var readyOrders []model.Order
	db.Where("actual_ready_time IS NOT NULL AND order_time >= ?", startOfDay).Find(&readyOrders)
	if len(readyOrders) > 0 {
		total := 0.0
		for _, order := range readyOrders {
			total += order.ActualReadyTime.Sub(order.OrderTime).Minutes()
		}
		s.AvgPrepMinutes = total / float64(len(readyOrders))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, s)
}

// MarkOrderPreparing and MarkOrderReady are kitchen display shortcuts over
// the generic status transition.
func markOrderTo(c *fiber.Ctx, target string) error {
	c.Locals("inputOrderStatus", model.OrderStatusInput{Status: target})
	return UpdateOrderStatus(c)
}

func MarkOrderPreparing(c *fiber.Ctx) error {
	return markOrderTo(c, constants.ORDER_PREPARING)
}

func MarkOrderReady(c *fiber.Ctx) error {
	return markOrderTo(c, constants.ORDER_READY)
}
