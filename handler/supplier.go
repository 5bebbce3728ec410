package handler

import (
	"errors"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

func GetSuppliers(c *fiber.Ctx) error {
	condition := database.DB.Model(&model.Supplier{})
	if c.Query("active") != "" {
		condition = condition.Where("active = ?", c.QueryBool("active"))
	}

	var suppliers []model.Supplier
	if err := condition.Order("name").Find(&suppliers).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, suppliers)
}

func GetSupplierById(c *fiber.Ctx) error {
	supplierId := c.Locals("inputId").(int)

	var supplier model.Supplier
	if err := database.DB.First(&supplier, supplierId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	var ingredients []model.Ingredient
	database.DB.Where("supplier_id = ?", supplier.ID).Order("name").Find(&ingredients)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"supplier":    supplier,
		"ingredients": ingredients,
	})
}

func CreateSupplier(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateSupplier").(model.CreateSupplierInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse create supplier input fail"))
	}

	var supplier model.Supplier
	copier.Copy(&supplier, &input)
	supplier.Active = true

	if err := database.DB.Create(&supplier).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Supplier name already exists", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, supplier)
}

func UpdateSupplier(c *fiber.Ctx) error {
	supplierId := c.Locals("inputId").(int)

	input := new(model.CreateSupplierInput)
	if err := c.BodyParser(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	var supplier model.Supplier
	if err := database.DB.First(&supplier, supplierId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	copier.CopyWithOption(&supplier, input, copier.Option{IgnoreEmpty: true})

	if err := database.DB.Save(&supplier).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cannot update supplier", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, supplier)
}

// GetSupplierPerformance summarizes purchase history per supplier.
func GetSupplierPerformance(c *fiber.Ctx) error {
	type performanceRow struct {
		SupplierId    uint    `json:"supplierId"`
		SupplierName  string  `json:"supplierName"`
		OrderCount    int64   `json:"orderCount"`
		ReceivedCount int64   `json:"receivedCount"`
		TotalSpend    float64 `json:"totalSpend"`
	}

	var rows []performanceRow
	err := database.DB.Model(&model.PurchaseOrder{}).
		Select(`suppliers.id as supplier_id, suppliers.name as supplier_name,
			COUNT(purchase_orders.id) as order_count,
			SUM(CASE WHEN purchase_orders.status = ? THEN 1 ELSE 0 END) as received_count,
			COALESCE(SUM(CASE WHEN purchase_orders.status = ? THEN purchase_orders.total_amount ELSE 0 END),0) as total_spend`,
			constants.PO_RECEIVED, constants.PO_RECEIVED).
		Joins("JOIN suppliers ON suppliers.id = purchase_orders.supplier_id").
		Group("suppliers.id, suppliers.name").
		Order("total_spend desc").
		Scan(&rows).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, rows)
}

// DeactivateSupplier keeps the record for purchase history, new purchase
// orders just refuse inactive suppliers.
func DeactivateSupplier(c *fiber.Ctx) error {
	supplierId := c.Locals("inputId").(int)

	var supplier model.Supplier
	if err := database.DB.First(&supplier, supplierId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	if err := database.DB.Model(&supplier).Update("active", false).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	supplier.Active = false
	return utils.SuccessResponse(c, fiber.StatusOK, supplier)
}
