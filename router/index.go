package router

import (
	"restaurant_manager/constants"
	"restaurant_manager/handler"
	"restaurant_manager/middleware"
	"restaurant_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())

	admins := middleware.RequireRoles(constants.ROLE_ADMIN)
	managers := middleware.RequireRoles(constants.ROLE_ADMIN, constants.ROLE_MANAGER)
	frontOfHouse := middleware.RequireRoles(constants.ROLE_ADMIN, constants.ROLE_MANAGER, constants.ROLE_CASHIER, constants.ROLE_WAITER)
	kitchenStaff := middleware.RequireRoles(constants.ROLE_ADMIN, constants.ROLE_MANAGER, constants.ROLE_CHEF, constants.ROLE_CASHIER)
	cashiers := middleware.RequireRoles(constants.ROLE_ADMIN, constants.ROLE_MANAGER, constants.ROLE_CASHIER)

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Get("/me", middleware.Protected(), handler.Me)
	auth.Put("/profile", middleware.Protected(), handler.UpdateProfile)
	auth.Post("/change-password", middleware.Protected(), validate.ChangePassword(), handler.ChangePassword)
	auth.Post("/logout", middleware.Protected(), handler.Logout)
	auth.Post("/logout-all", middleware.Protected(), handler.LogoutAllDevices)

	users := api.Group("/users", middleware.Protected(), managers)
	users.Get("/", handler.GetUsers)
	users.Get("/stats", handler.GetUserStats)
	users.Get("/audit-logs", admins, handler.GetAuditLogs)
	users.Get("/:userId", validate.GetById("userId"), handler.GetUserById)
	users.Post("/", validate.CreateUser(), handler.Register)
	users.Put("/:userId", validate.GetById("userId"), handler.UpdateUser)
	users.Delete("/:userId", validate.GetById("userId"), handler.DeleteUser)
	users.Patch("/:userId/suspend", validate.GetById("userId"), handler.SuspendUser)
	users.Post("/reset-password", validate.AdminResetPassword(), handler.AdminResetPassword)

	menu := api.Group("/menu")
	menu.Get("/", handler.GetMenuItems)
	menu.Get("/popular", handler.GetPopularMenuItems)
	menu.Get("/stats", middleware.Protected(), managers, handler.GetMenuStats)
	menu.Get("/slug/:slug", handler.GetMenuItemBySlug)
	menu.Get("/:menuItemId", validate.GetById("menuItemId"), handler.GetMenuItemById)
	menu.Post("/", middleware.Protected(), managers, validate.CreateMenuItem(), handler.CreateMenuItem)
	menu.Put("/:menuItemId", middleware.Protected(), managers, validate.GetById("menuItemId"), validate.UpdateMenuItem(), handler.UpdateMenuItem)
	menu.Patch("/:menuItemId/availability", middleware.Protected(), kitchenStaff, validate.GetById("menuItemId"), handler.ToggleMenuItemAvailability)
	menu.Delete("/:menuItemId", middleware.Protected(), managers, validate.GetById("menuItemId"), handler.DeleteMenuItem)
	menu.Get("/:menuItemId/recipes", middleware.Protected(), validate.GetById("menuItemId"), handler.GetMenuItemRecipes)
	menu.Put("/:menuItemId/recipes", middleware.Protected(), managers, validate.GetById("menuItemId"), validate.RecipeBulk(), handler.SetMenuItemRecipes)
	menu.Delete("/:menuItemId/recipes/:ingredient_id", middleware.Protected(), managers, validate.GetById("menuItemId"), handler.DeleteMenuItemRecipe)
	menu.Get("/:menuItemId/cost", middleware.Protected(), managers, validate.GetById("menuItemId"), handler.GetMenuItemCost)

	categories := api.Group("/categories")
	categories.Get("/", handler.GetCategories)
	categories.Get("/:categoryId", validate.GetById("categoryId"), handler.GetCategoryById)
	categories.Post("/", middleware.Protected(), managers, validate.CreateCategory(), handler.CreateCategory)
	categories.Put("/:categoryId", middleware.Protected(), managers, validate.GetById("categoryId"), validate.UpdateCategory(), handler.UpdateCategory)
	categories.Delete("/:categoryId", middleware.Protected(), managers, validate.GetById("categoryId"), handler.DeleteCategory)

	tables := api.Group("/tables")
	tables.Get("/", handler.GetTables)
	tables.Get("/available", handler.GetAvailableTables)
	tables.Get("/search", handler.SearchTables)
	tables.Get("/stats", middleware.Protected(), handler.GetTableStats)
	tables.Get("/:tableId", validate.GetById("tableId"), handler.GetTableById)
	tables.Post("/", middleware.Protected(), managers, validate.CreateTable(), handler.CreateTable)
	tables.Put("/:tableId", middleware.Protected(), managers, validate.GetById("tableId"), handler.UpdateTable)
	tables.Delete("/:tableId", middleware.Protected(), admins, validate.GetById("tableId"), handler.DeleteTable)
	tables.Post("/:tableId/occupy", middleware.Protected(), frontOfHouse, validate.GetById("tableId"), validate.SeatTable(), handler.OccupyTable)
	tables.Post("/:tableId/free", middleware.Protected(), frontOfHouse, validate.GetById("tableId"), handler.FreeTable)
	tables.Post("/:tableId/reserve", middleware.Protected(), frontOfHouse, validate.GetById("tableId"), validate.SeatTable(), handler.ReserveTable)
	tables.Patch("/:tableId/status", middleware.Protected(), managers, validate.GetById("tableId"), validate.TableStatus(), handler.UpdateTableStatus)

	pagers := api.Group("/pagers", middleware.Protected())
	pagers.Get("/", handler.GetPagers)
	pagers.Get("/available", handler.GetAvailablePager)
	pagers.Get("/stats", handler.GetPagerStats)
	pagers.Post("/", managers, validate.CreatePager(), handler.CreatePager)
	pagers.Delete("/:pager_number", managers, handler.DeletePager)
	pagers.Post("/:pager_number/assign", frontOfHouse, validate.AssignPager(), handler.AssignPager)
	pagers.Post("/:pager_number/activate", kitchenStaff, handler.ActivatePager)
	pagers.Post("/:pager_number/buzz", kitchenStaff, handler.BuzzPager)
	pagers.Post("/:pager_number/release", frontOfHouse, handler.ReleasePager)

	orders := api.Group("/orders")
	orders.Get("/number/:order_number", handler.GetOrderByNumber)
	orders.Get("/", middleware.Protected(), handler.GetOrders)
	orders.Get("/search", middleware.Protected(), handler.SearchOrders)
	orders.Get("/stats", middleware.Protected(), handler.GetOrderStats)
	orders.Get("/mine", middleware.Protected(), handler.GetWaiterOrders)
	orders.Get("/mine/daily/:date?", middleware.Protected(), handler.GetWaiterDailyOrders)
	orders.Get("/:orderId", middleware.Protected(), validate.GetById("orderId"), handler.GetOrderById)
	orders.Post("/", middleware.Protected(), frontOfHouse, validate.CreateOrder(), handler.CreateOrder)
	orders.Patch("/:orderId/status", middleware.Protected(), validate.GetById("orderId"), validate.OrderStatus(), handler.UpdateOrderStatus)
	orders.Post("/:orderId/cancel", middleware.Protected(), managers, validate.GetById("orderId"), handler.CancelOrder)
	orders.Post("/:orderId/items", middleware.Protected(), frontOfHouse, validate.GetById("orderId"), handler.AddItemToOrder)
	orders.Delete("/:orderId/items/:item_id", middleware.Protected(), frontOfHouse, validate.GetById("orderId"), handler.RemoveItemFromOrder)
	orders.Get("/:orderId/stock-check", middleware.Protected(), kitchenStaff, validate.GetById("orderId"), handler.CheckOrderStock)
	orders.Post("/:orderId/consume-stock", middleware.Protected(), kitchenStaff, validate.GetById("orderId"), handler.ConsumeOrderStock)

	kitchen := api.Group("/kitchen", middleware.Protected(), kitchenStaff)
	kitchen.Get("/queue", handler.GetKitchenQueue)
	kitchen.Get("/urgent", handler.GetUrgentOrders)
	kitchen.Get("/stats", handler.GetKitchenStats)
	kitchen.Patch("/items/:itemId/status", validate.GetById("itemId"), validate.ItemStatus(), handler.UpdateOrderItemStatus)
	kitchen.Post("/orders/:orderId/preparing", validate.GetById("orderId"), handler.MarkOrderPreparing)
	kitchen.Post("/orders/:orderId/ready", validate.GetById("orderId"), handler.MarkOrderReady)
	kitchen.Get("/stations/:stationId/queue", validate.GetById("stationId"), handler.GetStationQueue)

	api.Get("/kitchen/ws", websocket.New(handler.KitchenWebsocket))

	billing := api.Group("/billing", middleware.Protected(), cashiers)
	billing.Get("/pending", handler.GetPendingPayments)
	billing.Post("/:orderId/pay", validate.GetById("orderId"), validate.Payment(), handler.ProcessPayment)
	billing.Get("/:orderId/receipt", validate.GetById("orderId"), handler.GetReceipt)
	billing.Post("/:orderId/discount", validate.GetById("orderId"), validate.Discount(), handler.ApplyDiscount)
	billing.Get("/summary", handler.GetSalesSummary)

	inventory := api.Group("/inventory", middleware.Protected())
	inventory.Get("/", handler.GetIngredients)
	inventory.Get("/low-stock", handler.GetLowStockIngredients)
	inventory.Get("/summary", handler.GetInventorySummary)
	inventory.Get("/categories", handler.GetIngredientCategories)
	inventory.Get("/usage", handler.GetUsageStats)
	inventory.Get("/:ingredientId", validate.GetById("ingredientId"), handler.GetIngredientById)
	inventory.Post("/", managers, validate.CreateIngredient(), handler.CreateIngredient)
	inventory.Put("/:ingredientId", managers, validate.GetById("ingredientId"), validate.UpdateIngredient(), handler.UpdateIngredient)
	inventory.Delete("/:ingredientId", managers, validate.GetById("ingredientId"), handler.DeleteIngredient)
	inventory.Post("/:ingredientId/adjust", kitchenStaff, validate.GetById("ingredientId"), validate.StockAdjust(), handler.AdjustIngredientStock)
	inventory.Post("/:ingredientId/wastage", kitchenStaff, validate.GetById("ingredientId"), validate.Wastage(), handler.RecordWastage)
	inventory.Get("/:ingredientId/transactions", validate.GetById("ingredientId"), handler.GetStockTransactions)

	suppliers := api.Group("/suppliers", middleware.Protected(), managers)
	suppliers.Get("/", handler.GetSuppliers)
	suppliers.Get("/performance", handler.GetSupplierPerformance)
	suppliers.Get("/:supplierId", validate.GetById("supplierId"), handler.GetSupplierById)
	suppliers.Post("/", validate.CreateSupplier(), handler.CreateSupplier)
	suppliers.Put("/:supplierId", validate.GetById("supplierId"), handler.UpdateSupplier)
	suppliers.Patch("/:supplierId/deactivate", validate.GetById("supplierId"), handler.DeactivateSupplier)

	purchases := api.Group("/purchase-orders", middleware.Protected(), managers)
	purchases.Get("/", handler.GetPurchaseOrders)
	purchases.Get("/suggested", handler.GetSuggestedPurchases)
	purchases.Get("/stats", handler.GetPurchaseStats)
	purchases.Get("/:purchaseOrderId", validate.GetById("purchaseOrderId"), handler.GetPurchaseOrderById)
	purchases.Post("/", validate.CreatePurchaseOrder(), handler.CreatePurchaseOrder)
	purchases.Patch("/:purchaseOrderId/status", validate.GetById("purchaseOrderId"), validate.PurchaseOrderStatus(), handler.UpdatePurchaseOrderStatus)
	purchases.Post("/:purchaseOrderId/receive", validate.GetById("purchaseOrderId"), validate.ReceiveShipment(), handler.ReceiveShipment)

	stations := api.Group("/stations", middleware.Protected())
	stations.Get("/", handler.GetStations)
	stations.Get("/available-chefs", handler.GetAvailableChefs)
	stations.Get("/workload", handler.GetStationWorkload)
	stations.Get("/:stationId", validate.GetById("stationId"), handler.GetStationById)
	stations.Post("/", managers, validate.CreateStation(), handler.CreateStation)
	stations.Put("/:stationId", managers, validate.GetById("stationId"), validate.UpdateStation(), handler.UpdateStation)
	stations.Delete("/:stationId", managers, validate.GetById("stationId"), handler.DeleteStation)
	stations.Post("/:stationId/chef", managers, validate.GetById("stationId"), validate.AssignChef(), handler.AssignChefToStation)
	stations.Delete("/:stationId/chef", managers, validate.GetById("stationId"), handler.RemoveChefFromStation)
	stations.Post("/:stationId/categories", managers, validate.GetById("stationId"), validate.AssignCategories(), handler.AssignCategoriesToStation)

	reports := api.Group("/reports", middleware.Protected(), managers)
	reports.Get("/dashboard", handler.GetDashboard)
	reports.Get("/sales/daily", handler.GetDailySalesReport)
	reports.Get("/sales/periods", handler.GetPeriodSalesReport)
	reports.Get("/sales/top-items", handler.GetTopMenuItems)
	reports.Get("/sales/categories", handler.GetCategorySalesReport)
	reports.Get("/staff", handler.GetStaffPerformanceReport)
	reports.Get("/inventory-value", handler.GetInventoryValueReport)
}
