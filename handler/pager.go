package handler

import (
	"errors"
	"fmt"
	"log"
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func pagerNumberParam(c *fiber.Ctx) (int, error) {
	return strconv.Atoi(c.Params("pager_number"))
}

func GetPagers(c *fiber.Ctx) error {
	condition := database.DB.Model(&model.Pager{})
	if status := c.Query("status"); status != "" {
		condition = condition.Where("status = ?", status)
	}

	var pagers []model.Pager
	if err := condition.Order("pager_number").Find(&pagers).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, pagers)
}

func GetAvailablePager(c *fiber.Ctx) error {
	var pager model.Pager
	err := database.DB.Where("status = ?", constants.PAGER_AVAILABLE).
		Order("pager_number").First(&pager).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "No pager available", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, pager)
}

// AssignPager binds a pager to an order. The conditional update inside
// helper.AssignPager makes concurrent assigns lose cleanly.
func AssignPager(c *fiber.Ctx) error {
	pagerNumber, err := pagerNumberParam(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	input, ok := c.Locals("inputAssignPager").(model.AssignPagerInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse assign pager input fail"))
	}

	var order model.Order
	if err := database.DB.First(&order, input.OrderId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Order not found", err)
	}

	pager, err := helper.AssignPager(database.DB, pagerNumber, input.OrderId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Pager not available or already assigned", err)
	}

	database.DB.Model(&order).Update("pager_number", pagerNumber)

	return utils.SuccessResponse(c, fiber.StatusOK, pager)
}

func ActivatePager(c *fiber.Ctx) error {
	pagerNumber, err := pagerNumberParam(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	result := database.DB.Model(&model.Pager{}).
		Where("pager_number = ? AND status = ?", pagerNumber, constants.PAGER_ASSIGNED).
		Update("status", constants.PAGER_ACTIVE)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Pager not assigned or already active", nil)
	}

	var pager model.Pager
	database.DB.Where("pager_number = ?", pagerNumber).First(&pager)
	return utils.SuccessResponse(c, fiber.StatusOK, pager)
}

func ReleasePager(c *fiber.Ctx) error {
	pagerNumber, err := pagerNumberParam(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	result := database.DB.Model(&model.Pager{}).
		Where("pager_number = ?", pagerNumber).
		Updates(map[string]any{"status": constants.PAGER_AVAILABLE, "order_id": nil, "assigned_at": nil})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Pager not found", nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": fmt.Sprintf("pager #%d released", pagerNumber)})
}

// BuzzPager is log-only; there is no physical pager integration.
func BuzzPager(c *fiber.Ctx) error {
	pagerNumber, err := pagerNumberParam(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	var pager model.Pager
	if err := database.DB.Where("pager_number = ?", pagerNumber).First(&pager).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Pager not found", err)
	}

	if pager.Status != constants.PAGER_ACTIVE {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("Pager is %s, cannot buzz", pager.Status), nil)
	}

	log.Printf("BUZZING pager #%d for order %v", pagerNumber, pager.OrderId)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message":     fmt.Sprintf("pager #%d buzzed", pagerNumber),
		"pagerNumber": pagerNumber,
		"orderId":     pager.OrderId,
	})
}

func CreatePager(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreatePager").(model.CreatePagerInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse create pager input fail"))
	}

	pager := model.Pager{PagerNumber: input.PagerNumber, Status: constants.PAGER_AVAILABLE}
	if err := database.DB.Create(&pager).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE") {
			return utils.ErrorResponse(c, fiber.StatusConflict, "Pager number already exists", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, pager)
}

func DeletePager(c *fiber.Ctx) error {
	pagerNumber, err := pagerNumberParam(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	result := database.DB.Where("pager_number = ?", pagerNumber).Delete(&model.Pager{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Pager not found", nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "pager deleted"})
}

func GetPagerStats(c *fiber.Ctx) error {
	type stats struct {
		TotalPagers     int64 `json:"totalPagers"`
		AvailablePagers int64 `json:"availablePagers"`
		AssignedPagers  int64 `json:"assignedPagers"`
		ActivePagers    int64 `json:"activePagers"`
	}

	db := database.DB
	var s stats
	db.Model(&model.Pager{}).Count(&s.TotalPagers)
	db.Model(&model.Pager{}).Where("status = ?", constants.PAGER_AVAILABLE).Count(&s.AvailablePagers)
	db.Model(&model.Pager{}).Where("status = ?", constants.PAGER_ASSIGNED).Count(&s.AssignedPagers)
	db.Model(&model.Pager{}).Where("status = ?", constants.PAGER_ACTIVE).Count(&s.ActivePagers)

	return utils.SuccessResponse(c, fiber.StatusOK, s)
}
