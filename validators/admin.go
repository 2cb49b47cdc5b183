package validators

import (
	"strings"

	"learning-platform/models"
	"learning-platform/utils"

	"github.com/gofiber/fiber/v2"
)

// ObjectIDParam rejects malformed entity ids in the named route parameter
// before any store lookup is attempted.
func ObjectIDParam(param, label string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !models.ValidID(c.Params(param)) {
			return utils.Message(c, fiber.StatusBadRequest, "Invalid "+label+" format")
		}
		return c.Next()
	}
}

// CreateCourse validates admin course creation.
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return utils.Message(c, fiber.StatusBadRequest, "Invalid request body")
		}

		errs := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errs["title"] = "Course title is required"
		}

		if len(errs) > 0 {
			return utils.ValidationError(c, errs)
		}
		return c.Next()
	}
}

// UpdateCourse validates admin course updates. Fields are optional but must
// not be explicitly empty.
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title *string `json:"title"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return utils.Message(c, fiber.StatusBadRequest, "Invalid request body")
		}

		errs := make(map[string]string)

		if reqData.Title != nil && strings.TrimSpace(*reqData.Title) == "" {
			errs["title"] = "Course title cannot be empty"
		}

		if len(errs) > 0 {
			return utils.ValidationError(c, errs)
		}
		return c.Next()
	}
}

// CreateChild validates section/unit/chapter creation: a title plus the
// parent entity id under the given body key.
func CreateChild(parentKey, parentLabel string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body map[string]interface{}
		if err := c.BodyParser(&body); err != nil {
			return utils.Message(c, fiber.StatusBadRequest, "Invalid request body")
		}

		errs := make(map[string]string)

		title, _ := body["title"].(string)
		if strings.TrimSpace(title) == "" {
			errs["title"] = "Title is required"
		}

		parentID, _ := body[parentKey].(string)
		if !models.ValidID(parentID) {
			errs[parentKey] = "Invalid " + parentLabel + " ID"
		}

		if len(errs) > 0 {
			return utils.ValidationError(c, errs)
		}
		return c.Next()
	}
}

// UpdateTitle validates section/unit/chapter updates.
func UpdateTitle() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title string `json:"title"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return utils.Message(c, fiber.StatusBadRequest, "Invalid request body")
		}

		errs := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errs["title"] = "Title is required"
		}

		if len(errs) > 0 {
			return utils.ValidationError(c, errs)
		}
		return c.Next()
	}
}

func validQuestionType(t string) bool {
	for _, qt := range models.QuestionTypes {
		if t == qt {
			return true
		}
	}
	return false
}

// CreateQuestion validates question creation, including the MCQ options
// rule: required with at least 2 entries when type is mcq.
func CreateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ChapterID     string   `json:"chapterId"`
			Type          string   `json:"type"`
			QuestionText  string   `json:"questionText"`
			Options       []string `json:"options"`
			CorrectAnswer string   `json:"correctAnswer"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return utils.Message(c, fiber.StatusBadRequest, "Invalid request body")
		}

		errs := make(map[string]string)

		if !models.ValidID(reqData.ChapterID) {
			errs["chapterId"] = "Invalid chapter ID"
		}
		if strings.TrimSpace(reqData.QuestionText) == "" {
			errs["questionText"] = "Question text is required"
		}
		if !validQuestionType(reqData.Type) {
			errs["type"] = "Invalid question type"
		}
		if reqData.Type == models.QuestionMCQ && len(reqData.Options) < 2 {
			errs["options"] = "MCQ questions must have at least 2 options"
		}
		if strings.TrimSpace(reqData.CorrectAnswer) == "" {
			errs["correctAnswer"] = "Correct answer is required"
		}

		if len(errs) > 0 {
			return utils.ValidationError(c, errs)
		}
		return c.Next()
	}
}

// UpdateQuestion validates question updates; every field is optional.
func UpdateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Type          *string  `json:"type"`
			QuestionText  *string  `json:"questionText"`
			Options       []string `json:"options"`
			CorrectAnswer *string  `json:"correctAnswer"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return utils.Message(c, fiber.StatusBadRequest, "Invalid request body")
		}

		errs := make(map[string]string)

		if reqData.Type != nil && !validQuestionType(*reqData.Type) {
			errs["type"] = "Invalid question type"
		}
		if reqData.QuestionText != nil && strings.TrimSpace(*reqData.QuestionText) == "" {
			errs["questionText"] = "Question text cannot be empty"
		}
		if reqData.Type != nil && *reqData.Type == models.QuestionMCQ && reqData.Options != nil && len(reqData.Options) < 2 {
			errs["options"] = "MCQ questions must have at least 2 options"
		}
		if reqData.CorrectAnswer != nil && strings.TrimSpace(*reqData.CorrectAnswer) == "" {
			errs["correctAnswer"] = "Correct answer cannot be empty"
		}

		if len(errs) > 0 {
			return utils.ValidationError(c, errs)
		}
		return c.Next()
	}
}
