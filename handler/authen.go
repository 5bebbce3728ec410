package handler

import (
	"errors"
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	loginInput := new(LoginInput)

	if err := c.BodyParser(loginInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, err)
	}

	if loginInput.Email == "" || loginInput.Password == "" {
		helper.Audit(c, nil, "login_failed", false, map[string]any{"reason": "missing_credentials", "attemptedEmail": loginInput.Email})
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, errors.New("email and password are required"))
	}

	user, err := helper.GetUserByEmail(loginInput.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if user == nil {
		helper.Audit(c, nil, "login_failed", false, map[string]any{"reason": "user_not_found", "attemptedEmail": loginInput.Email})
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_CREDENTIALS, errors.New("email not registered"))
	}

	if !helper.CheckPasswordHash(loginInput.Password, user.Password) {
		helper.Audit(c, &user.ID, "login_failed", false, map[string]any{"reason": "invalid_password"})
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_CREDENTIALS, errors.New("password does not match"))
	}

	if user.Status != constants.USER_ACTIVE {
		helper.Audit(c, &user.ID, "login_failed", false, map[string]any{"reason": "account_inactive", "status": user.Status})
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_ACTIVE, errors.New("status "+user.Status))
	}

	tokenClaim := model.TokenClaim{
		UserId:       user.ID,
		Username:     user.Username,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
	}
	token, err := helper.GenerateAccessToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	helper.Audit(c, &user.ID, "login", true, map[string]any{"role": user.Role, "tokenVersion": user.TokenVersion})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "login success",
		"token":   token,
		"user": fiber.Map{
			"id":        user.ID,
			"username":  user.Username,
			"email":     user.Email,
			"role":      user.Role,
			"firstName": user.FirstName,
			"lastName":  user.LastName,
		},
	})
}

func Me(c *fiber.Ctx) error {
	user := helper.CurrentUser(c)
	return utils.SuccessResponse(c, fiber.StatusOK, user)
}

func UpdateProfile(c *fiber.Ctx) error {
	user := helper.CurrentUser(c)

	type ProfileInput struct {
		FirstName *string `json:"firstName"`
		LastName  *string `json:"lastName"`
		Email     *string `json:"email"`
	}
	input := new(ProfileInput)
	if err := c.BodyParser(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Email != nil {
		user.Email = *input.Email
	}

	if err := database.DB.Save(user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, user)
}

// ChangePassword also bumps token_version so every other session dies.
func ChangePassword(c *fiber.Ctx) error {
	user := helper.CurrentUser(c)

	input, ok := c.Locals("inputChangePassword").(model.ChangePasswordInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse change password input fail"))
	}

	if !helper.CheckPasswordHash(input.CurrentPassword, user.Password) {
		helper.Audit(c, &user.ID, "password_change_failed", false, map[string]any{"reason": "wrong_current_password"})
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Current password is incorrect", nil)
	}

	newHash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}

	err = database.DB.Model(user).Updates(map[string]any{
		"password":      newHash,
		"token_version": gorm.Expr("token_version + 1"),
	}).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	helper.Audit(c, &user.ID, "password_changed", true, map[string]any{"tokenVersionIncremented": true})

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "password changed, please login again"})
}

func Logout(c *fiber.Ctx) error {
	user := helper.CurrentUser(c)
	helper.Audit(c, &user.ID, "logout", true, nil)
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "logout successful"})
}

// LogoutAllDevices invalidates every outstanding token via token_version.
func LogoutAllDevices(c *fiber.Ctx) error {
	user := helper.CurrentUser(c)

	err := database.DB.Model(user).Update("token_version", gorm.Expr("token_version + 1")).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	helper.Audit(c, &user.ID, "logout_all", true, map[string]any{"tokenVersionIncremented": true})

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "all sessions invalidated"})
}
