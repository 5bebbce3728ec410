package helper

import (
	"log"
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/model"
	"restaurant_manager/utils"
	"time"

	"github.com/robfig/cron/v3"
)

var scheduler *cron.Cron

func StartSchedulers() {
	scheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	if _, err := scheduler.AddFunc("*/5 * * * *", logUrgentOrders); err != nil {
		log.Printf("failed to register urgent order sweep: %v", err)
		return
	}
	if _, err := scheduler.AddFunc("0 8 * * *", lowStockAlert); err != nil {
		log.Printf("failed to register low stock alert: %v", err)
		return
	}

	scheduler.Start()
	log.Println("schedulers started (urgent sweep every 5m, stock alert daily)")
}

func StopSchedulers() {
	if scheduler != nil {
		scheduler.Stop()
		log.Println("schedulers stopped")
	}
}

// Orders older than 20 minutes that are still open get surfaced in the log so
// the floor manager notices even without the dashboard.
func logUrgentOrders() {
	cutoff := time.Now().Add(-20 * time.Minute)
	var orders []model.Order
	err := database.DB.
		Where("status IN ? AND order_time < ?", []string{constants.ORDER_PENDING, constants.ORDER_PREPARING}, cutoff).
		Find(&orders).Error
	if err != nil {
		log.Printf("urgent order sweep failed: %v", err)
		return
	}

	for _, order := range orders {
		log.Printf("URGENT: order %s (%s) open for %.0f minutes", order.OrderNumber, order.Status, time.Since(order.OrderTime).Minutes())
	}
}

func lowStockAlert() {
	var ingredients []model.Ingredient
	err := database.DB.Preload("Supplier").
		Where("current_stock <= minimum_stock").
		Find(&ingredients).Error
	if err != nil {
		log.Printf("low stock check failed: %v", err)
		return
	}
	if len(ingredients) == 0 {
		return
	}

	items := make([]utils.LowStockItem, 0, len(ingredients))
	for _, ing := range ingredients {
		supplierName := ""
		if ing.Supplier != nil {
			supplierName = ing.Supplier.Name
		}
		items = append(items, utils.LowStockItem{
			Name:         ing.Name,
			CurrentStock: ing.CurrentStock,
			MinimumStock: ing.MinimumStock,
			Unit:         ing.Unit,
			SupplierName: supplierName,
		})
	}

	log.Printf("%d ingredients at or below minimum stock", len(items))
	utils.SendLowStockEmail(items)
}
