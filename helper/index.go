package helper

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"restaurant_manager/database"
	"restaurant_manager/model"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var JwtSecret = []byte(os.Getenv("JWT_SECRET"))

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func GetUserByEmail(e string) (*model.User, error) {
	db := database.DB
	var user model.User
	if err := db.Where(&model.User{Email: e}).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func GenerateAccessToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["userId"] = tokenClaim.UserId
	claims["username"] = tokenClaim.Username
	claims["role"] = tokenClaim.Role
	claims["tokenVersion"] = tokenClaim.TokenVersion
	claims["exp"] = time.Now().Add(time.Hour * 12).Unix()

	t, err := token.SignedString(JwtSecret)
	return t, err
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return JwtSecret, nil
	})

	return token, err
}

// CurrentUser returns the user loaded by the Protected middleware.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, ok := c.Locals("currentUser").(*model.User)
	if !ok {
		return nil
	}
	return user
}

// Audit appends a security event. Failures are logged and swallowed so the
// audit sink can never block a business operation.
func Audit(c *fiber.Ctx, userId *uint, action string, success bool, details map[string]any) {
	payload := ""
	if details != nil {
		if raw, err := json.Marshal(details); err == nil {
			payload = string(raw)
		}
	}

	entry := model.AuditLog{
		UserId:    userId,
		Action:    action,
		IPAddress: c.IP(),
		UserAgent: c.Get("User-Agent"),
		Success:   success,
		Details:   payload,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		log.Printf("audit write failed (%s): %v", action, err)
	}
}
