package validators

import (
	"strings"

	"learning-platform/models"
	"learning-platform/utils"

	"github.com/gofiber/fiber/v2"
)

// Enroll validates the enrollment request.
func Enroll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID string `json:"courseId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return utils.Message(c, fiber.StatusBadRequest, "Invalid request body")
		}

		errs := make(map[string]string)

		if !models.ValidID(reqData.CourseID) {
			errs["courseId"] = "Invalid course ID"
		}

		if len(errs) > 0 {
			return utils.ValidationError(c, errs)
		}
		return c.Next()
	}
}

// SubmitAnswer validates an answer submission: the full id chain plus a
// non-empty answer.
func SubmitAnswer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID   string `json:"courseId"`
			SectionID  string `json:"sectionId"`
			UnitID     string `json:"unitId"`
			ChapterID  string `json:"chapterId"`
			QuestionID string `json:"questionId"`
			Answer     string `json:"answer"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return utils.Message(c, fiber.StatusBadRequest, "Invalid request body")
		}

		errs := make(map[string]string)

		if !models.ValidID(reqData.CourseID) {
			errs["courseId"] = "Invalid course ID"
		}
		if !models.ValidID(reqData.SectionID) {
			errs["sectionId"] = "Invalid section ID"
		}
		if !models.ValidID(reqData.UnitID) {
			errs["unitId"] = "Invalid unit ID"
		}
		if !models.ValidID(reqData.ChapterID) {
			errs["chapterId"] = "Invalid chapter ID"
		}
		if !models.ValidID(reqData.QuestionID) {
			errs["questionId"] = "Invalid question ID"
		}
		if strings.TrimSpace(reqData.Answer) == "" {
			errs["answer"] = "Answer is required"
		}

		if len(errs) > 0 {
			return utils.ValidationError(c, errs)
		}
		return c.Next()
	}
}
