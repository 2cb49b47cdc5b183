package routes

import (
	"testing"

	"learning-platform/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	resp := request(t, "POST", "/api/auth/register", "", map[string]string{
		"email":           "register@example.com",
		"password":        "password123",
		"confirmPassword": "password123",
		"role":            "learner",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	result := decodeMap(t, resp)
	assert.NotEmpty(t, result["token"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	body := map[string]string{
		"email":           "duplicate@example.com",
		"password":        "password123",
		"confirmPassword": "password123",
		"role":            "learner",
	}

	resp := request(t, "POST", "/api/auth/register", "", body)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = request(t, "POST", "/api/auth/register", "", body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "User already exists", decodeMap(t, resp)["message"])

	assert.Equal(t, int64(1), countRows(t, &models.User{}, "email = ?", "duplicate@example.com"))
}

func TestRegisterPasswordMismatch(t *testing.T) {
	resp := request(t, "POST", "/api/auth/register", "", map[string]string{
		"email":           "mismatch@example.com",
		"password":        "password123",
		"confirmPassword": "different123",
		"role":            "learner",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	result := decodeMap(t, resp)
	errs, _ := result["errors"].(map[string]interface{})
	assert.Equal(t, "Passwords do not match", errs["confirmPassword"])

	// Nothing was persisted for the failed request.
	assert.Equal(t, int64(0), countRows(t, &models.User{}, "email = ?", "mismatch@example.com"))
}

func TestRegisterInvalidRole(t *testing.T) {
	resp := request(t, "POST", "/api/auth/register", "", map[string]string{
		"email":           "badrole@example.com",
		"password":        "password123",
		"confirmPassword": "password123",
		"role":            "superuser",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRegisterShortPassword(t *testing.T) {
	resp := request(t, "POST", "/api/auth/register", "", map[string]string{
		"email":           "short@example.com",
		"password":        "abc",
		"confirmPassword": "abc",
		"role":            "learner",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	resp := request(t, "POST", "/api/auth/register", "", map[string]string{
		"email":           "login@example.com",
		"password":        "password123",
		"confirmPassword": "password123",
		"role":            "learner",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = request(t, "POST", "/api/auth/login", "", map[string]string{
		"email":    "login@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, decodeMap(t, resp)["token"])
}

func TestLoginWrongPassword(t *testing.T) {
	resp := request(t, "POST", "/api/auth/register", "", map[string]string{
		"email":           "wrongpass@example.com",
		"password":        "password123",
		"confirmPassword": "password123",
		"role":            "learner",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = request(t, "POST", "/api/auth/login", "", map[string]string{
		"email":    "wrongpass@example.com",
		"password": "password456",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid email or password", decodeMap(t, resp)["message"])
}

func TestLoginUnknownEmail(t *testing.T) {
	resp := request(t, "POST", "/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid email or password", decodeMap(t, resp)["message"])
}

func TestVerify(t *testing.T) {
	token := registerUser(t, "admin")

	resp := request(t, "GET", "/api/auth/verify", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeMap(t, resp)
	assert.Equal(t, "Token is valid", result["message"])
	user, _ := result["user"].(map[string]interface{})
	assert.Equal(t, "admin", user["role"])
	userID, _ := user["userId"].(string)
	assert.True(t, models.ValidID(userID))
}

func TestVerifyMissingToken(t *testing.T) {
	resp := request(t, "GET", "/api/auth/verify", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestVerifyGarbageToken(t *testing.T) {
	resp := request(t, "GET", "/api/auth/verify", "not-a-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Token is not valid", decodeMap(t, resp)["message"])
}
