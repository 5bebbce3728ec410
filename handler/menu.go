package handler

import (
	"errors"
	"fmt"
	"strings"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"github.com/jinzhu/copier"
)

func GetMenuItems(c *fiber.Ctx) error {
	filterInput := new(model.FilterMenuInput)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	condition := database.DB.Model(&model.MenuItem{})
	if filterInput.CategoryId != nil {
		condition = condition.Where("category_id = ?", *filterInput.CategoryId)
	}
	if filterInput.Available != nil {
		condition = condition.Where("available = ?", *filterInput.Available)
	}
	if filterInput.SearchKey != "" {
		key := "%" + strings.ToLower(filterInput.SearchKey) + "%"
		condition = condition.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", key, key)
	}

	var totalCount int64
	condition.Count(&totalCount)

	var items []model.MenuItem
	err := utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page).
		Preload("Category").
		Order("name").
		Find(&items).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       items,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	})
}

func GetMenuItemById(c *fiber.Ctx) error {
	itemId := c.Locals("inputId").(int)

	var item model.MenuItem
	err := database.DB.Preload("Category").Preload("Recipes").Preload("Recipes.Ingredient").First(&item, itemId).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

func GetMenuItemBySlug(c *fiber.Ctx) error {
	var item model.MenuItem
	err := database.DB.Preload("Category").Where("slug = ?", c.Params("slug")).First(&item).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

func GetPopularMenuItems(c *fiber.Ctx) error {
	var items []model.MenuItem
	err := database.DB.Where("popular = ? AND available = ?", true, true).
		Preload("Category").
		Find(&items).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, items)
}

func CreateMenuItem(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateMenuItem").(model.CreateMenuItemInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse create menu item input fail"))
	}

	var category model.Category
	if err := database.DB.First(&category, input.CategoryId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Category not found", err)
	}

	var item model.MenuItem
	copier.Copy(&item, &input)
	item.Slug = uniqueMenuSlug(input.Name)
	item.Available = true
	if item.PreparationTime == 0 {
		item.PreparationTime = 15
	}

	if err := database.DB.Create(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cannot create menu item", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, item)
}

func uniqueMenuSlug(name string) string {
	base := slug.Make(name)
	candidate := base
	for i := 2; ; i++ {
		var count int64
		database.DB.Model(&model.MenuItem{}).Where("slug = ?", candidate).Count(&count)
		if count == 0 {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func UpdateMenuItem(c *fiber.Ctx) error {
	itemId := c.Locals("inputId").(int)

	input, ok := c.Locals("inputUpdateMenuItem").(model.UpdateMenuItemInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse update menu item input fail"))
	}

	var item model.MenuItem
	if err := database.DB.First(&item, itemId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	if input.CategoryId != nil {
		var category model.Category
		if err := database.DB.First(&category, *input.CategoryId).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Category not found", err)
		}
	}

	copier.CopyWithOption(&item, &input, copier.Option{IgnoreEmpty: true})
	if input.Name != nil {
		item.Slug = uniqueMenuSlug(*input.Name)
	}

	if err := database.DB.Save(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cannot update menu item", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

// ToggleMenuItemAvailability flips availability, used when the kitchen runs
// out of an item mid-service.
func ToggleMenuItemAvailability(c *fiber.Ctx) error {
	itemId := c.Locals("inputId").(int)

	var item model.MenuItem
	if err := database.DB.First(&item, itemId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	if err := database.DB.Model(&item).Update("available", !item.Available).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	item.Available = !item.Available
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

func GetMenuStats(c *fiber.Ctx) error {
	db := database.DB

	var total, available, popular, categories int64
	db.Model(&model.MenuItem{}).Count(&total)
	db.Model(&model.MenuItem{}).Where("available = ?", true).Count(&available)
	db.Model(&model.MenuItem{}).Where("popular = ?", true).Count(&popular)
	db.Model(&model.Category{}).Count(&categories)

	var avgPrice float64
	db.Model(&model.MenuItem{}).Select("COALESCE(AVG(price),0)").Scan(&avgPrice)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"totalItems":     total,
		"availableItems": available,
		"popularItems":   popular,
		"categories":     categories,
		"averagePrice":   avgPrice,
	})
}

func DeleteMenuItem(c *fiber.Ctx) error {
	itemId := c.Locals("inputId").(int)

	var item model.MenuItem
	if err := database.DB.First(&item, itemId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	var openItems int64
	database.DB.Model(&model.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.menu_item_id = ? AND orders.status IN ?", item.ID,
			[]string{constants.ORDER_PENDING, constants.ORDER_PREPARING, constants.ORDER_READY}).
		Count(&openItems)
	if openItems > 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Menu item is part of open orders", nil)
	}

	if err := database.DB.Delete(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "menu item deleted"})
}
