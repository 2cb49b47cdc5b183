package validators

import (
	"regexp"
	"strings"

	"learning-platform/models"
	"learning-platform/utils"

	"github.com/gofiber/fiber/v2"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Register validates the registration request before the handler runs.
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email           string `json:"email"`
			Password        string `json:"password"`
			ConfirmPassword string `json:"confirmPassword"`
			Role            string `json:"role"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return utils.Message(c, fiber.StatusBadRequest, "Invalid request body")
		}

		errs := make(map[string]string)

		if !emailPattern.MatchString(strings.TrimSpace(reqData.Email)) {
			errs["email"] = "Invalid email format"
		}
		if len(reqData.Password) < 6 {
			errs["password"] = "Password must be at least 6 characters long"
		}
		if reqData.ConfirmPassword != reqData.Password {
			errs["confirmPassword"] = "Passwords do not match"
		}
		if reqData.Role != "" && reqData.Role != models.RoleAdmin && reqData.Role != models.RoleLearner {
			errs["role"] = "Role must be either admin or learner"
		}

		if len(errs) > 0 {
			return utils.ValidationError(c, errs)
		}
		return c.Next()
	}
}

// Login validates the login request.
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return utils.Message(c, fiber.StatusBadRequest, "Invalid request body")
		}

		errs := make(map[string]string)

		if !emailPattern.MatchString(strings.TrimSpace(reqData.Email)) {
			errs["email"] = "Invalid email format"
		}
		if len(reqData.Password) < 6 {
			errs["password"] = "Password must be at least 6 characters long"
		}

		if len(errs) > 0 {
			return utils.ValidationError(c, errs)
		}
		return c.Next()
	}
}
