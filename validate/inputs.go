package validate

import (
	"restaurant_manager/model"

	"github.com/gofiber/fiber/v2"
)

// Accounts
func CreateUser() fiber.Handler         { return body[model.CreateUserInput]("inputCreateUser") }
func ChangePassword() fiber.Handler     { return body[model.ChangePasswordInput]("inputChangePassword") }
func AdminResetPassword() fiber.Handler {
	return body[model.AdminResetPasswordInput]("inputAdminResetPassword")
}

// Tables
func CreateTable() fiber.Handler { return body[model.CreateTableInput]("inputCreateTable") }
func SeatTable() fiber.Handler   { return body[model.SeatTableInput]("inputSeatTable") }
func TableStatus() fiber.Handler { return body[model.TableStatusInput]("inputTableStatus") }

// Pagers
func AssignPager() fiber.Handler { return body[model.AssignPagerInput]("inputAssignPager") }
func CreatePager() fiber.Handler { return body[model.CreatePagerInput]("inputCreatePager") }

// Orders
func CreateOrder() fiber.Handler { return body[model.CreateOrderInput]("inputCreateOrder") }
func OrderStatus() fiber.Handler { return body[model.OrderStatusInput]("inputOrderStatus") }
func ItemStatus() fiber.Handler  { return body[model.ItemStatusInput]("inputItemStatus") }
func Payment() fiber.Handler     { return body[model.PaymentInput]("inputPayment") }
func Discount() fiber.Handler    { return body[model.DiscountInput]("inputDiscount") }

// Menu
func CreateMenuItem() fiber.Handler { return body[model.CreateMenuItemInput]("inputCreateMenuItem") }
func UpdateMenuItem() fiber.Handler { return body[model.UpdateMenuItemInput]("inputUpdateMenuItem") }
func CreateCategory() fiber.Handler { return body[model.CreateCategoryInput]("inputCreateCategory") }
func UpdateCategory() fiber.Handler { return body[model.UpdateCategoryInput]("inputUpdateCategory") }
func RecipeBulk() fiber.Handler     { return body[model.RecipeBulkInput]("inputRecipeBulk") }

// Inventory
func CreateIngredient() fiber.Handler {
	return body[model.CreateIngredientInput]("inputCreateIngredient")
}
func UpdateIngredient() fiber.Handler {
	return body[model.UpdateIngredientInput]("inputUpdateIngredient")
}
func StockAdjust() fiber.Handler { return body[model.StockAdjustInput]("inputStockAdjust") }
func Wastage() fiber.Handler     { return body[model.WastageInput]("inputWastage") }

// Purchasing
func CreateSupplier() fiber.Handler { return body[model.CreateSupplierInput]("inputCreateSupplier") }
func CreatePurchaseOrder() fiber.Handler {
	return body[model.CreatePurchaseOrderInput]("inputCreatePurchaseOrder")
}
func PurchaseOrderStatus() fiber.Handler {
	return body[model.PurchaseOrderStatusInput]("inputPurchaseOrderStatus")
}
func ReceiveShipment() fiber.Handler {
	return body[model.ReceiveShipmentInput]("inputReceiveShipment")
}

// Stations
func CreateStation() fiber.Handler { return body[model.CreateStationInput]("inputCreateStation") }
func UpdateStation() fiber.Handler { return body[model.UpdateStationInput]("inputUpdateStation") }
func AssignChef() fiber.Handler    { return body[model.AssignChefInput]("inputAssignChef") }
func AssignCategories() fiber.Handler {
	return body[model.AssignCategoriesInput]("inputAssignCategories")
}
