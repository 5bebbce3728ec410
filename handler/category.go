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

func GetCategories(c *fiber.Ctx) error {
	var categories []model.Category
	err := database.DB.Preload("Station").Order("display_order, name").Find(&categories).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, categories)
}

func GetCategoryById(c *fiber.Ctx) error {
	categoryId := c.Locals("inputId").(int)

	var category model.Category
	if err := database.DB.Preload("Station").First(&category, categoryId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	var items []model.MenuItem
	database.DB.Where("category_id = ?", category.ID).Order("name").Find(&items)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"category": category,
		"items":    items,
	})
}

func CreateCategory(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateCategory").(model.CreateCategoryInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse create category input fail"))
	}

	if input.StationId != nil {
		var station model.Station
		if err := database.DB.First(&station, *input.StationId).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Station not found", err)
		}
	}

	var category model.Category
	copier.Copy(&category, &input)

	if err := database.DB.Create(&category).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Category name already exists", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, category)
}

func UpdateCategory(c *fiber.Ctx) error {
	categoryId := c.Locals("inputId").(int)

	input, ok := c.Locals("inputUpdateCategory").(model.UpdateCategoryInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse update category input fail"))
	}

	var category model.Category
	if err := database.DB.First(&category, categoryId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	if input.StationId != nil {
		var station model.Station
		if err := database.DB.First(&station, *input.StationId).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Station not found", err)
		}
	}

	copier.CopyWithOption(&category, &input, copier.Option{IgnoreEmpty: true})

	if err := database.DB.Save(&category).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cannot update category", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, category)
}

func DeleteCategory(c *fiber.Ctx) error {
	categoryId := c.Locals("inputId").(int)

	var category model.Category
	if err := database.DB.First(&category, categoryId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	var itemCount int64
	database.DB.Model(&model.MenuItem{}).Where("category_id = ?", category.ID).Count(&itemCount)
	if itemCount > 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Category still has menu items", nil)
	}

	if err := database.DB.Delete(&category).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "category deleted"})
}
