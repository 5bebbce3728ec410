package handler

import (
	"errors"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func GetStations(c *fiber.Ctx) error {
	var stations []model.Station
	err := database.DB.Preload("Chef").Preload("Categories").Order("name").Find(&stations).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, stations)
}

func GetStationById(c *fiber.Ctx) error {
	stationId := c.Locals("inputId").(int)

	var station model.Station
	err := database.DB.Preload("Chef").Preload("Categories").First(&station, stationId).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, station)
}

func CreateStation(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateStation").(model.CreateStationInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse create station input fail"))
	}

	var station model.Station
	copier.Copy(&station, &input)
	station.Active = true

	if err := database.DB.Create(&station).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Station name already exists", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, station)
}

func UpdateStation(c *fiber.Ctx) error {
	stationId := c.Locals("inputId").(int)

	input, ok := c.Locals("inputUpdateStation").(model.UpdateStationInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse update station input fail"))
	}

	var station model.Station
	if err := database.DB.First(&station, stationId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	copier.CopyWithOption(&station, &input, copier.Option{IgnoreEmpty: true})

	if err := database.DB.Save(&station).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cannot update station", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, station)
}

// AssignChefToStation binds a chef user to the station.
func AssignChefToStation(c *fiber.Ctx) error {
	stationId := c.Locals("inputId").(int)

	input, ok := c.Locals("inputAssignChef").(model.AssignChefInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse assign chef input fail"))
	}

	var station model.Station
	if err := database.DB.First(&station, stationId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	var chef model.User
	if err := database.DB.First(&chef, input.ChefId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Chef not found", err)
	}
	if chef.Role != constants.ROLE_CHEF {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "User is not a chef", nil)
	}

	if err := database.DB.Model(&station).Update("chef_id", chef.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	database.DB.Preload("Chef").First(&station, station.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, station)
}

// AssignCategoriesToStation routes the given categories to the station.
func AssignCategoriesToStation(c *fiber.Ctx) error {
	stationId := c.Locals("inputId").(int)

	input, ok := c.Locals("inputAssignCategories").(model.AssignCategoriesInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse assign categories input fail"))
	}

	var station model.Station
	if err := database.DB.First(&station, stationId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for _, categoryId := range input.CategoryIds {
			result := tx.Model(&model.Category{}).Where("id = ?", categoryId).Update("station_id", station.ID)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return errors.New("category not found")
			}
		}
		return nil
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot assign categories", err)
	}

	database.DB.Preload("Categories").First(&station, station.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, station)
}

// RemoveChefFromStation unbinds the chef; the station keeps its categories.
func RemoveChefFromStation(c *fiber.Ctx) error {
	stationId := c.Locals("inputId").(int)

	var station model.Station
	if err := database.DB.First(&station, stationId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	if station.ChefId == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Station has no chef assigned", nil)
	}

	if err := database.DB.Model(&station).Update("chef_id", nil).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "chef removed from station"})
}

// GetStationWorkload counts the open order items routed to each station.
func GetStationWorkload(c *fiber.Ctx) error {
	type workloadRow struct {
		StationId   uint   `json:"stationId"`
		StationName string `json:"stationName"`
		OpenItems   int64  `json:"openItems"`
	}

	var rows []workloadRow
	err := database.DB.Model(&model.OrderItem{}).
		Select("stations.id as station_id, stations.name as station_name, COUNT(order_items.id) as open_items").
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Joins("JOIN categories ON categories.id = menu_items.category_id").
		Joins("JOIN stations ON stations.id = categories.station_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status IN ?", []string{constants.ORDER_PENDING, constants.ORDER_PREPARING}).
		Where("order_items.status IN ?", []string{constants.ITEM_PENDING, constants.ITEM_PREPARING}).
		Group("stations.id, stations.name").
		Order("open_items desc").
		Scan(&rows).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, rows)
}

// GetAvailableChefs lists active chefs not bound to any station yet.
func GetAvailableChefs(c *fiber.Ctx) error {
	var chefs []model.User
	err := database.DB.
		Where("role = ? AND status = ?", constants.ROLE_CHEF, constants.USER_ACTIVE).
		Where("id NOT IN (?)", database.DB.Model(&model.Station{}).Where("chef_id IS NOT NULL").Select("chef_id")).
		Find(&chefs).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, chefs)
}

func DeleteStation(c *fiber.Ctx) error {
	stationId := c.Locals("inputId").(int)

	var station model.Station
	if err := database.DB.First(&station, stationId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	var categoryCount int64
	database.DB.Model(&model.Category{}).Where("station_id = ?", station.ID).Count(&categoryCount)
	if categoryCount > 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Station still has categories routed to it", nil)
	}

	if err := database.DB.Delete(&station).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "station deleted"})
}
