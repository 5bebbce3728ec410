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

	"github.com/gofiber/fiber/v2"
)

func GetTables(c *fiber.Ctx) error {
	db := database.DB
	condition := db.Model(&model.Table{})

	if status := c.Query("status"); status != "" {
		condition = condition.Where("status = ?", status)
	}
	if section := c.Query("section"); section != "" {
		condition = condition.Where("section = ?", section)
	}
	if minCapacity := c.QueryInt("minCapacity"); minCapacity > 0 {
		condition = condition.Where("capacity >= ?", minCapacity)
	}

	var tables []model.Table
	if err := condition.Order("section, table_number").Find(&tables).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, tables)
}

func GetAvailableTables(c *fiber.Ctx) error {
	condition := database.DB.Where("status = ?", constants.TABLE_AVAILABLE)
	if customerCount := c.QueryInt("customerCount"); customerCount > 0 {
		condition = condition.Where("capacity >= ?", customerCount)
	}

	var tables []model.Table
	if err := condition.Order("capacity, section, table_number").Find(&tables).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, tables)
}

func GetTableById(c *fiber.Ctx) error {
	tableId := c.Locals("inputId").(int)

	var table model.Table
	if err := database.DB.First(&table, tableId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, table)
}

func CreateTable(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateTable").(model.CreateTableInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse create table input fail"))
	}

	table := model.Table{
		TableNumber: input.TableNumber,
		Capacity:    input.Capacity,
		Section:     input.Section,
		Notes:       input.Notes,
		Status:      constants.TABLE_AVAILABLE,
	}
	if table.Capacity == 0 {
		table.Capacity = 2
	}
	if table.Section == "" {
		table.Section = "Main Hall"
	}

	if err := database.DB.Create(&table).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE") {
			return utils.ErrorResponse(c, fiber.StatusConflict, "Table number already exists", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, table)
}

func UpdateTable(c *fiber.Ctx) error {
	tableId := c.Locals("inputId").(int)

	input := new(model.UpdateTableInput)
	if err := c.BodyParser(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	var table model.Table
	if err := database.DB.First(&table, tableId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	if input.TableNumber != nil {
		table.TableNumber = *input.TableNumber
	}
	if input.Capacity != nil {
		table.Capacity = *input.Capacity
	}
	if input.Status != nil {
		table.Status = *input.Status
	}
	if input.CustomerCount != nil {
		table.CustomerCount = *input.CustomerCount
	}
	if input.Section != nil {
		table.Section = *input.Section
	}
	if input.Notes != nil {
		table.Notes = *input.Notes
	}

	if err := database.DB.Save(&table).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE") {
			return utils.ErrorResponse(c, fiber.StatusConflict, "Table number already exists", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, table)
}

func DeleteTable(c *fiber.Ctx) error {
	tableId := c.Locals("inputId").(int)

	var table model.Table
	if err := database.DB.First(&table, tableId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	var activeOrders int64
	database.DB.Model(&model.Order{}).
		Where("table_id = ? AND status IN ?", table.ID, []string{constants.ORDER_PENDING, constants.ORDER_PREPARING, constants.ORDER_READY}).
		Count(&activeOrders)
	if activeOrders > 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Table has active orders", nil)
	}

	if err := database.DB.Delete(&table).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "table deleted"})
}

// OccupyTable seats customers. The guards (not already occupied, customer
// count within capacity) live in helper.SeatTable.
func OccupyTable(c *fiber.Ctx) error {
	tableId := c.Locals("inputId").(int)

	input, ok := c.Locals("inputSeatTable").(model.SeatTableInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse seat input fail"))
	}

	table, err := helper.SeatTable(database.DB, uint(tableId), input.CustomerCount)
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrTableNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
		case errors.Is(err, helper.ErrTableOccupied), errors.Is(err, helper.ErrTableOverCapacity):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, table)
}

func FreeTable(c *fiber.Ctx) error {
	tableId := c.Locals("inputId").(int)

	var table model.Table
	if err := database.DB.First(&table, tableId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	if table.Status == constants.TABLE_AVAILABLE {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Table is already available", nil)
	}

	table.Status = constants.TABLE_AVAILABLE
	table.CustomerCount = 0
	if err := database.DB.Save(&table).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, table)
}

func ReserveTable(c *fiber.Ctx) error {
	tableId := c.Locals("inputId").(int)

	input, ok := c.Locals("inputSeatTable").(model.SeatTableInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse seat input fail"))
	}

	var table model.Table
	if err := database.DB.First(&table, tableId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	if table.Status != constants.TABLE_AVAILABLE {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("Table is %s, cannot reserve", table.Status), nil)
	}

	table.Status = constants.TABLE_RESERVED
	table.CustomerCount = input.CustomerCount
	if err := database.DB.Save(&table).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, table)
}

// UpdateTableStatus is the admin override; no occupancy guard on purpose.
func UpdateTableStatus(c *fiber.Ctx) error {
	tableId := c.Locals("inputId").(int)

	input, ok := c.Locals("inputTableStatus").(model.TableStatusInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse table status input fail"))
	}

	var table model.Table
	if err := database.DB.First(&table, tableId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	table.Status = input.Status
	table.CustomerCount = input.CustomerCount
	if err := database.DB.Save(&table).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, table)
}

func GetTableStats(c *fiber.Ctx) error {
	type stats struct {
		TotalTables      int64 `json:"totalTables"`
		AvailableTables  int64 `json:"availableTables"`
		OccupiedTables   int64 `json:"occupiedTables"`
		ReservedTables   int64 `json:"reservedTables"`
		TotalCapacity    int64 `json:"totalCapacity"`
		CurrentCustomers int64 `json:"currentCustomers"`
	}

	db := database.DB
	var s stats
	db.Model(&model.Table{}).Count(&s.TotalTables)
	db.Model(&model.Table{}).Where("status = ?", constants.TABLE_AVAILABLE).Count(&s.AvailableTables)
	db.Model(&model.Table{}).Where("status = ?", constants.TABLE_OCCUPIED).Count(&s.OccupiedTables)
	db.Model(&model.Table{}).Where("status = ?", constants.TABLE_RESERVED).Count(&s.ReservedTables)
	db.Model(&model.Table{}).Select("COALESCE(SUM(capacity),0)").Scan(&s.TotalCapacity)
	db.Model(&model.Table{}).Select("COALESCE(SUM(customer_count),0)").Scan(&s.CurrentCustomers)

	return utils.SuccessResponse(c, fiber.StatusOK, s)
}

func SearchTables(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Search query is required", nil)
	}

	key := "%" + strings.ToLower(query) + "%"
	var tables []model.Table
	err := database.DB.
		Where("LOWER(table_number) LIKE ? OR LOWER(section) LIKE ? OR LOWER(notes) LIKE ?", key, key, key).
		Order("table_number").
		Find(&tables).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, tables)
}
