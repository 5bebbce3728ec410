package handler

import (
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// GetDashboard is the manager landing view: today at a glance.
func GetDashboard(c *fiber.Ctx) error {
	db := database.DB
	today := startOfToday()

	var todayOrders, openOrders, occupiedTables, totalTables, lowStock int64
	var todayRevenue float64

	db.Model(&model.Order{}).Where("order_time >= ?", today).Count(&todayOrders)
	db.Model(&model.Order{}).
		Where("status IN ?", []string{constants.ORDER_PENDING, constants.ORDER_PREPARING, constants.ORDER_READY}).
		Count(&openOrders)
	db.Model(&model.Order{}).
		Where("payment_status = ? AND completed_time >= ?", constants.PAYMENT_PAID, today).
		Select("COALESCE(SUM(total_amount - discount + tax + tip),0)").
		Scan(&todayRevenue)
	db.Model(&model.Table{}).Where("status = ?", constants.TABLE_OCCUPIED).Count(&occupiedTables)
	db.Model(&model.Table{}).Count(&totalTables)
	db.Model(&model.Ingredient{}).Where("current_stock <= minimum_stock").Count(&lowStock)

	var pendingPayments int64
	db.Model(&model.Order{}).
		Where("status = ? AND payment_status = ?", constants.ORDER_COMPLETED, constants.PAYMENT_PENDING).
		Count(&pendingPayments)

	var recentOrders []model.Order
	db.Preload("Table").Order("order_time desc").Limit(10).Find(&recentOrders)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"recentOrders":       recentOrders,
		"todayOrders":        todayOrders,
		"todayRevenue":       todayRevenue,
		"openOrders":         openOrders,
		"pendingPayments":    pendingPayments,
		"occupiedTables":     occupiedTables,
		"totalTables":        totalTables,
		"lowStockCount":      lowStock,
	})
}

// GetDailySalesReport returns one row per day over the requested range,
// defaulting to the last 7 days.
func GetDailySalesReport(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	if days < 1 || days > 90 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "days must be between 1 and 90", nil)
	}

	type dailyRow struct {
		Day        string  `json:"day"`
		OrderCount int64   `json:"orderCount"`
		Revenue    float64 `json:"revenue"`
	}

	rows := make([]dailyRow, 0, days)
	for i := days - 1; i >= 0; i-- {
		start := startOfToday().AddDate(0, 0, -i)
		end := start.AddDate(0, 0, 1)

		var row dailyRow
		row.Day = start.Format("2006-01-02")
		condition := database.DB.Model(&model.Order{}).
			Where("payment_status = ? AND completed_time >= ? AND completed_time < ?", constants.PAYMENT_PAID, start, end).
			Session(&gorm.Session{})
		condition.Count(&row.OrderCount)
		condition.Select("COALESCE(SUM(total_amount - discount + tax + tip),0)").Scan(&row.Revenue)
		rows = append(rows, row)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, rows)
}

// GetPeriodSalesReport buckets paid revenue by day, week or month. Buckets
// are computed in Go so the query stays portable across drivers.
func GetPeriodSalesReport(c *fiber.Ctx) error {
	period := c.Query("period", "day")
	buckets := c.QueryInt("buckets", 8)
	if buckets < 1 || buckets > 36 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "buckets must be between 1 and 36", nil)
	}

	var step func(t time.Time, n int) time.Time
	var align func(t time.Time) time.Time
	switch period {
	case "day":
		step = func(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) }
		align = func(t time.Time) time.Time { return t }
	case "week":
		step = func(t time.Time, n int) time.Time { return t.AddDate(0, 0, 7*n) }
		align = func(t time.Time) time.Time {
			// back to Monday
			offset := (int(t.Weekday()) + 6) % 7
			return t.AddDate(0, 0, -offset)
		}
	case "month":
		step = func(t time.Time, n int) time.Time { return t.AddDate(0, n, 0) }
		align = func(t time.Time) time.Time {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
		}
	default:
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "period must be day, week or month", nil)
	}

	type periodRow struct {
		PeriodStart string  `json:"periodStart"`
		OrderCount  int64   `json:"orderCount"`
		Revenue     float64 `json:"revenue"`
	}

	first := align(startOfToday())
	rows := make([]periodRow, 0, buckets)
	for i := buckets - 1; i >= 0; i-- {
		start := step(first, -i)
		end := step(start, 1)

		var row periodRow
		row.PeriodStart = start.Format("2006-01-02")
		condition := database.DB.Model(&model.Order{}).
			Where("payment_status = ? AND completed_time >= ? AND completed_time < ?", constants.PAYMENT_PAID, start, end).
			Session(&gorm.Session{})
		condition.Count(&row.OrderCount)
		condition.Select("COALESCE(SUM(total_amount - discount + tax + tip),0)").Scan(&row.Revenue)
		rows = append(rows, row)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"period": period,
		"rows":   rows,
	})
}

// GetTopMenuItems ranks menu items by quantity sold in paid orders.
func GetTopMenuItems(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	days := c.QueryInt("days", 30)
	since := startOfToday().AddDate(0, 0, -days)

	type topRow struct {
		MenuItemId uint    `json:"menuItemId"`
		Name       string  `json:"name"`
		Quantity   int64   `json:"quantity"`
		Revenue    float64 `json:"revenue"`
	}

	var rows []topRow
	err := database.DB.Model(&model.OrderItem{}).
		Select("order_items.menu_item_id, menu_items.name, SUM(order_items.quantity) AS quantity, SUM(order_items.price * order_items.quantity) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Where("orders.payment_status = ? AND orders.completed_time >= ?", constants.PAYMENT_PAID, since).
		Group("order_items.menu_item_id, menu_items.name").
		Order("quantity desc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, rows)
}

// GetCategorySalesReport breaks paid revenue down by menu category.
func GetCategorySalesReport(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)
	since := startOfToday().AddDate(0, 0, -days)

	type categoryRow struct {
		CategoryId uint    `json:"categoryId"`
		Name       string  `json:"name"`
		Quantity   int64   `json:"quantity"`
		Revenue    float64 `json:"revenue"`
	}

	var rows []categoryRow
	err := database.DB.Model(&model.OrderItem{}).
		Select("categories.id AS category_id, categories.name, SUM(order_items.quantity) AS quantity, SUM(order_items.price * order_items.quantity) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Joins("JOIN categories ON categories.id = menu_items.category_id").
		Where("orders.payment_status = ? AND orders.completed_time >= ?", constants.PAYMENT_PAID, since).
		Group("categories.id, categories.name").
		Order("revenue desc").
		Scan(&rows).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, rows)
}

// GetStaffPerformanceReport aggregates completed orders per waiter.
func GetStaffPerformanceReport(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)
	since := startOfToday().AddDate(0, 0, -days)

	type staffRow struct {
		WaiterId   uint    `json:"waiterId"`
		Username   string  `json:"username"`
		OrderCount int64   `json:"orderCount"`
		TotalSales float64 `json:"totalSales"`
	}

	var rows []staffRow
	err := database.DB.Model(&model.Order{}).
		Select("orders.waiter_id, users.username, COUNT(orders.id) AS order_count, COALESCE(SUM(orders.total_amount),0) AS total_sales").
		Joins("JOIN users ON users.id = orders.waiter_id").
		Where("orders.status = ? AND orders.completed_time >= ?", constants.ORDER_COMPLETED, since).
		Group("orders.waiter_id, users.username").
		Order("total_sales desc").
		Scan(&rows).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, rows)
}

// GetInventoryValueReport totals stock on hand at cost.
func GetInventoryValueReport(c *fiber.Ctx) error {
	var ingredients []model.Ingredient
	if err := database.DB.Order("name").Find(&ingredients).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	type valueRow struct {
		IngredientId uint    `json:"ingredientId"`
		Name         string  `json:"name"`
		CurrentStock float64 `json:"currentStock"`
		Unit         string  `json:"unit"`
		CostPerUnit  float64 `json:"costPerUnit"`
		Value        float64 `json:"value"`
	}

	rows := make([]valueRow, 0, len(ingredients))
	total := 0.0
	for _, ingredient := range ingredients {
		value := ingredient.CurrentStock * ingredient.CostPerUnit
		total += value
		rows = append(rows, valueRow{
			IngredientId: ingredient.ID,
			Name:         ingredient.Name,
			CurrentStock: ingredient.CurrentStock,
			Unit:         ingredient.Unit,
			CostPerUnit:  ingredient.CostPerUnit,
			Value:        value,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"totalValue":  total,
		"ingredients": rows,
	})
}
