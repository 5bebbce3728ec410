package handler

import (
	"errors"
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func Register(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateUser").(model.CreateUserInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse create user input fail"))
	}

	actor := helper.CurrentUser(c)

	// Managers can create staff accounts but never admins.
	if actor.Role == constants.ROLE_MANAGER && input.Role == constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.PERMISSION_DENIED, errors.New("managers cannot create admin accounts"))
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}

	newUser := model.User{}
	copier.Copy(&newUser, &input)
	newUser.Password = hash
	if newUser.Role == "" {
		newUser.Role = constants.ROLE_WAITER
	}

	if err := database.DB.Create(&newUser).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE") {
			return utils.ErrorResponse(c, fiber.StatusConflict, "Username or email already exists", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	helper.Audit(c, &actor.ID, "user_created", true, map[string]any{"newUserId": newUser.ID, "role": newUser.Role})

	return utils.SuccessResponse(c, fiber.StatusCreated, newUser)
}

func GetUsers(c *fiber.Ctx) error {
	filterInput := new(model.FilterUserInput)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	db := database.DB

	condition := db.Model(&model.User{})
	if filterInput.SearchKey != "" {
		key := "%" + strings.ToLower(filterInput.SearchKey) + "%"
		condition = condition.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", key, key, key, key)
	}
	if filterInput.Role != "" {
		condition = condition.Where("role = ?", filterInput.Role)
	}
	if filterInput.Status != "" {
		condition = condition.Where("status = ?", filterInput.Status)
	}

	var totalCount int64
	condition.Count(&totalCount)

	var users []model.User
	if err := utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page).
		Order("created_at desc").Find(&users).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       users,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	})
}

func GetUserById(c *fiber.Ctx) error {
	userId := c.Locals("inputId").(int)

	var user model.User
	if err := database.DB.First(&user, userId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, user)
}

func UpdateUser(c *fiber.Ctx) error {
	userId := c.Locals("inputId").(int)
	actor := helper.CurrentUser(c)

	input := new(model.UpdateUserInput)
	if err := c.BodyParser(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	var user model.User
	if err := database.DB.First(&user, userId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	// Managers cannot touch admin accounts or promote anyone to admin.
	if actor.Role == constants.ROLE_MANAGER {
		if user.Role == constants.ROLE_ADMIN || (input.Role != nil && *input.Role == constants.ROLE_ADMIN) {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.PERMISSION_DENIED, errors.New("managers cannot manage admin accounts"))
		}
	}

	copier.CopyWithOption(&user, input, copier.Option{IgnoreEmpty: true})
	if err := database.DB.Save(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	helper.Audit(c, &actor.ID, "user_updated", true, map[string]any{"targetUserId": user.ID})

	return utils.SuccessResponse(c, fiber.StatusOK, user)
}

func DeleteUser(c *fiber.Ctx) error {
	userId := c.Locals("inputId").(int)
	actor := helper.CurrentUser(c)

	if uint(userId) == actor.ID {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot delete your own account", nil)
	}

	var user model.User
	if err := database.DB.First(&user, userId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	if actor.Role == constants.ROLE_MANAGER && user.Role == constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.PERMISSION_DENIED, errors.New("managers cannot delete admin accounts"))
	}

	if err := database.DB.Delete(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	helper.Audit(c, &actor.ID, "user_deleted", true, map[string]any{"targetUserId": user.ID, "username": user.Username})

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "user deleted"})
}

// SuspendUser sets status=suspended and bumps token_version so outstanding
// tokens stop working immediately.
func SuspendUser(c *fiber.Ctx) error {
	userId := c.Locals("inputId").(int)
	actor := helper.CurrentUser(c)

	var user model.User
	if err := database.DB.First(&user, userId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	if user.Role == constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.PERMISSION_DENIED, errors.New("admin accounts cannot be suspended"))
	}

	err := database.DB.Model(&user).Updates(map[string]any{
		"status":        constants.USER_SUSPENDED,
		"token_version": gorm.Expr("token_version + 1"),
	}).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	helper.Audit(c, &actor.ID, "user_suspended", true, map[string]any{"targetUserId": user.ID})

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "user suspended, sessions invalidated"})
}

func AdminResetPassword(c *fiber.Ctx) error {
	input, ok := c.Locals("inputAdminResetPassword").(model.AdminResetPasswordInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse reset password input fail"))
	}
	actor := helper.CurrentUser(c)

	var user model.User
	if err := database.DB.First(&user, input.UserId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	if actor.Role == constants.ROLE_MANAGER && user.Role == constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.PERMISSION_DENIED, errors.New("managers cannot reset admin passwords"))
	}

	hash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}

	err = database.DB.Model(&user).Updates(map[string]any{
		"password":      hash,
		"token_version": gorm.Expr("token_version + 1"),
	}).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	helper.Audit(c, &actor.ID, "password_reset", true, map[string]any{"targetUserId": user.ID, "tokenVersionIncremented": true})

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "password reset, user sessions invalidated"})
}

func GetUserStats(c *fiber.Ctx) error {
	type stats struct {
		TotalUsers     int64 `json:"totalUsers"`
		ActiveUsers    int64 `json:"activeUsers"`
		SuspendedUsers int64 `json:"suspendedUsers"`
		Admins         int64 `json:"admins"`
		Managers       int64 `json:"managers"`
		Cashiers       int64 `json:"cashiers"`
		Waiters        int64 `json:"waiters"`
		Chefs          int64 `json:"chefs"`
	}

	db := database.DB
	var s stats
	db.Model(&model.User{}).Count(&s.TotalUsers)
	db.Model(&model.User{}).Where("status = ?", constants.USER_ACTIVE).Count(&s.ActiveUsers)
	db.Model(&model.User{}).Where("status = ?", constants.USER_SUSPENDED).Count(&s.SuspendedUsers)
	db.Model(&model.User{}).Where("role = ?", constants.ROLE_ADMIN).Count(&s.Admins)
	db.Model(&model.User{}).Where("role = ?", constants.ROLE_MANAGER).Count(&s.Managers)
	db.Model(&model.User{}).Where("role = ?", constants.ROLE_CASHIER).Count(&s.Cashiers)
	db.Model(&model.User{}).Where("role = ?", constants.ROLE_WAITER).Count(&s.Waiters)
	db.Model(&model.User{}).Where("role = ?", constants.ROLE_CHEF).Count(&s.Chefs)

	return utils.SuccessResponse(c, fiber.StatusOK, s)
}

func GetAuditLogs(c *fiber.Ctx) error {
	filterInput := new(model.FilterAuditInput)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	condition := database.DB.Model(&model.AuditLog{})
	if filterInput.UserId != nil {
		condition = condition.Where("user_id = ?", *filterInput.UserId)
	}
	if filterInput.Action != "" {
		condition = condition.Where("action = ?", filterInput.Action)
	}

	var totalCount int64
	condition.Count(&totalCount)

	var logs []model.AuditLog
	if err := utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page).
		Order("created_at desc").Find(&logs).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       logs,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	})
}
