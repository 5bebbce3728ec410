package handler

import (
	"errors"
	"fmt"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetPurchaseOrders(c *fiber.Ctx) error {
	condition := database.DB.Model(&model.PurchaseOrder{})
	if status := c.Query("status"); status != "" {
		condition = condition.Where("status = ?", status)
	}
	if supplierId := c.QueryInt("supplierId"); supplierId > 0 {
		condition = condition.Where("supplier_id = ?", supplierId)
	}

	var orders []model.PurchaseOrder
	err := condition.Preload("Supplier").Preload("Items").Preload("Items.Ingredient").
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

func GetPurchaseOrderById(c *fiber.Ctx) error {
	purchaseOrderId := c.Locals("inputId").(int)

	var order model.PurchaseOrder
	err := database.DB.Preload("Supplier").Preload("Items").Preload("Items.Ingredient").
		First(&order, purchaseOrderId).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func CreatePurchaseOrder(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreatePurchaseOrder").(model.CreatePurchaseOrderInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse create purchase order input fail"))
	}

	actor := helper.CurrentUser(c)

	var created model.PurchaseOrder
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var supplier model.Supplier
		if err := tx.First(&supplier, input.SupplierId).Error; err != nil {
			return errors.New("supplier not found")
		}
		if !supplier.Active {
			return errors.New("supplier is inactive")
		}

		order := model.PurchaseOrder{
			OrderNumber:      generatePONumber(tx),
			SupplierId:       supplier.ID,
			Status:           constants.PO_PENDING,
			ExpectedDelivery: input.ExpectedDelivery,
			Notes:            input.Notes,
			CreatedBy:        actor.ID,
		}

		total := 0.0
		items := make([]model.PurchaseOrderItem, 0, len(input.Items))
		for _, line := range input.Items {
			var ingredient model.Ingredient
			if err := tx.First(&ingredient, line.IngredientId).Error; err != nil {
				return fmt.Errorf("ingredient %d not found", line.IngredientId)
			}
			lineTotal := line.Quantity * line.UnitPrice
			items = append(items, model.PurchaseOrderItem{
				IngredientId: ingredient.ID,
				Quantity:     line.Quantity,
				UnitPrice:    line.UnitPrice,
				TotalPrice:   lineTotal,
			})
			total += lineTotal
		}
		order.TotalAmount = total

		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].PurchaseOrderId = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		created = order
		return nil
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot create purchase order", err)
	}

	database.DB.Preload("Supplier").Preload("Items").First(&created, created.ID)
	return utils.SuccessResponse(c, fiber.StatusCreated, created)
}

func generatePONumber(tx *gorm.DB) string {
	var last model.PurchaseOrder
	nextNum := 100
	err := tx.Where("order_number LIKE ?", "PO-%").Order("id desc").First(&last).Error
	if err == nil {
		var n int
		if _, scanErr := fmt.Sscanf(last.OrderNumber, "PO-%d", &n); scanErr == nil && n >= 100 {
			nextNum = n + 1
		}
	}
	return fmt.Sprintf("PO-%d", nextNum)
}

// UpdatePurchaseOrderStatus moves pending->ordered->received or cancels.
// Receiving through this endpoint books the full ordered quantities; partial
// deliveries go through ReceiveShipment.
func UpdatePurchaseOrderStatus(c *fiber.Ctx) error {
	purchaseOrderId := c.Locals("inputId").(int)

	input, ok := c.Locals("inputPurchaseOrderStatus").(model.PurchaseOrderStatusInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse purchase order status input fail"))
	}

	var order model.PurchaseOrder
	if err := database.DB.Preload("Items").First(&order, purchaseOrderId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	valid := map[string][]string{
		constants.PO_PENDING: {constants.PO_ORDERED, constants.PO_CANCELLED},
		constants.PO_ORDERED: {constants.PO_RECEIVED, constants.PO_CANCELLED},
	}
	allowed := false
	for _, next := range valid[order.Status] {
		if next == input.Status {
			allowed = true
			break
		}
	}
	if !allowed {
		return utils.ErrorResponse(c, fiber.StatusBadRequest,
			fmt.Sprintf("Cannot move purchase order from %s to %s", order.Status, input.Status), nil)
	}

	actor := helper.CurrentUser(c)
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{"status": input.Status}
		if input.Status == constants.PO_RECEIVED {
			now := time.Now()
			updates["received_date"] = now
			for _, item := range order.Items {
				remaining := item.Quantity - item.ReceivedQuantity
				if remaining <= 0 {
					continue
				}
				ref := order.ID
				if _, err := helper.AdjustStock(tx, item.IngredientId, remaining, "purchase", &ref, "purchase_order",
					fmt.Sprintf("Received %s", order.OrderNumber), actor.ID); err != nil {
					return err
				}
				err := tx.Model(&model.PurchaseOrderItem{}).Where("id = ?", item.ID).
					Update("received_quantity", item.Quantity).Error
				if err != nil {
					return err
				}
			}
		}
		return tx.Model(&model.PurchaseOrder{}).Where("id = ?", order.ID).Updates(updates).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	database.DB.Preload("Supplier").Preload("Items").Preload("Items.Ingredient").First(&order, order.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// ReceiveShipment books a partial delivery: each posted line increments stock
// and its received quantity. When every line is fully received the purchase
// order flips to received.
func ReceiveShipment(c *fiber.Ctx) error {
	purchaseOrderId := c.Locals("inputId").(int)

	input, ok := c.Locals("inputReceiveShipment").(model.ReceiveShipmentInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse receive shipment input fail"))
	}

	var order model.PurchaseOrder
	if err := database.DB.Preload("Items").First(&order, purchaseOrderId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	if order.Status != constants.PO_ORDERED {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Only ordered purchase orders can receive shipments", nil)
	}

	itemsById := map[uint]model.PurchaseOrderItem{}
	for _, item := range order.Items {
		itemsById[item.ID] = item
	}

	actor := helper.CurrentUser(c)
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for _, line := range input.Items {
			item, found := itemsById[line.ItemId]
			if !found {
				return fmt.Errorf("item %d does not belong to this purchase order", line.ItemId)
			}
			if item.ReceivedQuantity+line.ReceivedQuantity > item.Quantity {
				return fmt.Errorf("received quantity for item %d exceeds the ordered quantity", line.ItemId)
			}

			ref := order.ID
			if _, err := helper.AdjustStock(tx, item.IngredientId, line.ReceivedQuantity, "purchase", &ref, "purchase_order",
				fmt.Sprintf("Shipment against %s", order.OrderNumber), actor.ID); err != nil {
				return err
			}
			err := tx.Model(&model.PurchaseOrderItem{}).Where("id = ?", item.ID).
				Update("received_quantity", gorm.Expr("received_quantity + ?", line.ReceivedQuantity)).Error
			if err != nil {
				return err
			}
		}

		// Close the order when nothing is outstanding.
		var outstanding int64
		err := tx.Model(&model.PurchaseOrderItem{}).
			Where("purchase_order_id = ? AND received_quantity < quantity", order.ID).
			Count(&outstanding).Error
		if err != nil {
			return err
		}
		if outstanding == 0 {
			now := time.Now()
			return tx.Model(&model.PurchaseOrder{}).Where("id = ?", order.ID).
				Updates(map[string]any{"status": constants.PO_RECEIVED, "received_date": now}).Error
		}
		return nil
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot receive shipment", err)
	}

	database.DB.Preload("Supplier").Preload("Items").Preload("Items.Ingredient").First(&order, order.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func GetPurchaseStats(c *fiber.Ctx) error {
	db := database.DB

	var pending, ordered, received, cancelled int64
	db.Model(&model.PurchaseOrder{}).Where("status = ?", constants.PO_PENDING).Count(&pending)
	db.Model(&model.PurchaseOrder{}).Where("status = ?", constants.PO_ORDERED).Count(&ordered)
	db.Model(&model.PurchaseOrder{}).Where("status = ?", constants.PO_RECEIVED).Count(&received)
	db.Model(&model.PurchaseOrder{}).Where("status = ?", constants.PO_CANCELLED).Count(&cancelled)

	since := time.Now().AddDate(0, 0, -30)
	var monthSpend float64
	db.Model(&model.PurchaseOrder{}).
		Where("status = ? AND received_date >= ?", constants.PO_RECEIVED, since).
		Select("COALESCE(SUM(total_amount),0)").
		Scan(&monthSpend)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"pending":        pending,
		"ordered":        ordered,
		"received":       received,
		"cancelled":      cancelled,
		"last30DaySpend": monthSpend,
	})
}

// GetSuggestedPurchases groups low-stock ingredients by supplier as draft
// purchase lines.
func GetSuggestedPurchases(c *fiber.Ctx) error {
	var ingredients []model.Ingredient
	err := database.DB.
		Where("current_stock <= minimum_stock").
		Preload("Supplier").
		Find(&ingredients).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	type suggestedLine struct {
		IngredientId uint    `json:"ingredientId"`
		Name         string  `json:"name"`
		CurrentStock float64 `json:"currentStock"`
		MinimumStock float64 `json:"minimumStock"`
		Quantity     float64 `json:"quantity"`
		UnitPrice    float64 `json:"unitPrice"`
	}
	bySupplier := map[string][]suggestedLine{}
	for _, ingredient := range ingredients {
		supplierName := "unassigned"
		if ingredient.Supplier != nil {
			supplierName = ingredient.Supplier.Name
		}
		// Order up to twice the minimum so the next alert is not immediate.
		quantity := ingredient.MinimumStock*2 - ingredient.CurrentStock
		bySupplier[supplierName] = append(bySupplier[supplierName], suggestedLine{
			IngredientId: ingredient.ID,
			Name:         ingredient.Name,
			CurrentStock: ingredient.CurrentStock,
			MinimumStock: ingredient.MinimumStock,
			Quantity:     quantity,
			UnitPrice:    ingredient.CostPerUnit,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, bySupplier)
}
