package controllers

import (
	"encoding/json"
	"errors"

	"learning-platform/config"
	"learning-platform/models"
	"learning-platform/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AdminController owns the content-authoring surface: CRUD across the
// Course → Section → Unit → Chapter → Question hierarchy. Every mutation
// verifies that the caller is the admin who created the owning course.
type AdminController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAdminController(db *gorm.DB, cfg *config.Config) *AdminController {
	return &AdminController{DB: db, Cfg: cfg}
}

func callerID(c *fiber.Ctx) string {
	id, _ := c.Locals("userId").(string)
	return id
}

func respondWalkError(c *fiber.Ctx, err error) error {
	var nf notFoundError
	if errors.As(err, &nf) {
		return utils.Message(c, fiber.StatusNotFound, nf.Error())
	}
	return utils.Message(c, fiber.StatusInternalServerError, err.Error())
}

func nextPosition(db *gorm.DB, model interface{}, parentColumn, parentID string) int {
	var count int64
	db.Model(model).Where(parentColumn+" = ?", parentID).Count(&count)
	return int(count) + 1
}

// ---- Courses ----

func (ctl *AdminController) CreateCourse(c *fiber.Ctx) error {
	var input struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	course := models.Course{
		Title:       input.Title,
		Description: input.Description,
		CreatedByID: callerID(c),
	}
	if err := ctl.DB.Create(&course).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not create course")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Course created",
		"course":  course,
	})
}

// GetAllCourses returns the caller's courses with the full content tree.
func (ctl *AdminController) GetAllCourses(c *fiber.Ctx) error {
	courses := []models.Course{}
	if err := preloadTree(ctl.DB, "").Where("created_by_id = ?", callerID(c)).Find(&courses).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}
	return c.JSON(courses)
}

func (ctl *AdminController) GetCourseByID(c *fiber.Ctx) error {
	var course models.Course
	if err := preloadTree(ctl.DB, "").First(&course, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Message(c, fiber.StatusNotFound, "Course not found")
		}
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	if course.CreatedByID != callerID(c) {
		return utils.Message(c, fiber.StatusForbidden, "Not authorized to access this course")
	}

	return c.JSON(course)
}

func (ctl *AdminController) UpdateCourse(c *fiber.Ctx) error {
	var input struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	var course models.Course
	if err := ctl.DB.First(&course, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Message(c, fiber.StatusNotFound, "Course not found")
		}
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	if course.CreatedByID != callerID(c) {
		return utils.Message(c, fiber.StatusForbidden, "Not authorized to update this course")
	}

	if input.Title != "" {
		course.Title = input.Title
	}
	if input.Description != "" {
		course.Description = input.Description
	}

	if err := ctl.DB.Save(&course).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not update course")
	}

	return c.JSON(fiber.Map{
		"message": "Course updated",
		"course":  course,
	})
}

func (ctl *AdminController) DeleteCourse(c *fiber.Ctx) error {
	id := c.Params("id")

	var course models.Course
	if err := ctl.DB.First(&course, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Message(c, fiber.StatusNotFound, "Course not found")
		}
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	if course.CreatedByID != callerID(c) {
		return utils.Message(c, fiber.StatusForbidden, "Not authorized to delete this course")
	}

	if err := deleteSubtree(ctl.DB, levelCourse, id); err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Failed to delete course: "+err.Error())
	}

	return utils.Message(c, fiber.StatusOK, "Course and all related content deleted")
}

// ---- Sections ----

func (ctl *AdminController) CreateSection(c *fiber.Ctx) error {
	var input struct {
		Title    string `json:"title"`
		CourseID string `json:"courseId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	course, err := ownerCourse(ctl.DB, levelCourse, input.CourseID)
	if err != nil {
		return respondWalkError(c, err)
	}
	if course.CreatedByID != callerID(c) {
		return utils.Message(c, fiber.StatusForbidden, "Not authorized to add sections to this course")
	}

	section := models.Section{
		Title:    input.Title,
		CourseID: course.ID,
		Position: nextPosition(ctl.DB, &models.Section{}, "course_id", course.ID),
	}
	if err := ctl.DB.Create(&section).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not create section")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Section created",
		"section": section,
	})
}

func (ctl *AdminController) UpdateSection(c *fiber.Ctx) error {
	var input struct {
		Title string `json:"title"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	var section models.Section
	if err := ctl.DB.First(&section, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Message(c, fiber.StatusNotFound, "Section not found")
		}
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	course, err := ownerCourse(ctl.DB, levelCourse, section.CourseID)
	if err != nil {
		return respondWalkError(c, err)
	}
	if course.CreatedByID != callerID(c) {
		return utils.Message(c, fiber.StatusForbidden, "Not authorized to update this section")
	}

	if input.Title != "" {
		section.Title = input.Title
	}

	if err := ctl.DB.Save(&section).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not update section")
	}

	return c.JSON(fiber.Map{
		"message": "Section updated",
		"section": section,
	})
}

func (ctl *AdminController) DeleteSection(c *fiber.Ctx) error {
	var section models.Section
	if err := ctl.DB.First(&section, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Message(c, fiber.StatusNotFound, "Section not found")
		}
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	course, err := ownerCourse(ctl.DB, levelCourse, section.CourseID)
	if err != nil {
		return respondWalkError(c, err)
	}
	if course.CreatedByID != callerID(c) {
		return utils.Message(c, fiber.StatusForbidden, "Not authorized to delete this section")
	}

	if err := deleteSubtree(ctl.DB, levelSection, section.ID); err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Failed to delete section: "+err.Error())
	}

	return utils.Message(c, fiber.StatusOK, "Section and all related content deleted")
}

// ---- Units ----

func (ctl *AdminController) CreateUnit(c *fiber.Ctx) error {
	var input struct {
		Title     string `json:"title"`
		SectionID string `json:"sectionId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	course, err := ownerCourse(ctl.DB, levelSection, input.SectionID)
	if err != nil {
		return respondWalkError(c, err)
	}
	if course.CreatedByID != callerID(c) {
		return utils.Message(c, fiber.StatusForbidden, "Not authorized to add units to this section")
	}

	unit := models.Unit{
		Title:     input.Title,
		SectionID: input.SectionID,
		Position:  nextPosition(ctl.DB, &models.Unit{}, "section_id", input.SectionID),
	}
	if err := ctl.DB.Create(&unit).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not create unit")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Unit created",
		"unit":    unit,
	})
}

func (ctl *AdminController) UpdateUnit(c *fiber.Ctx) error {
	var input struct {
		Title string `json:"title"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	var unit models.Unit
	if err := ctl.DB.First(&unit, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Message(c, fiber.StatusNotFound, "Unit not found")
		}
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	course, err := ownerCourse(ctl.DB, levelSection, unit.SectionID)
	if err != nil {
		return respondWalkError(c, err)
	}
	if course.CreatedByID != callerID(c) {
		return utils.Message(c, fiber.StatusForbidden, "Not authorized to update this unit")
	}

	if input.Title != "" {
		unit.Title = input.Title
	}

	if err := ctl.DB.Save(&unit).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not update unit")
	}

	return c.JSON(fiber.Map{
		"message": "Unit updated",
		"unit":    unit,
	})
}

func (ctl *AdminController) DeleteUnit(c *fiber.Ctx) error {
	var unit models.Unit
	if err := ctl.DB.First(&unit, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Message(c, fiber.StatusNotFound, "Unit not found")
		}
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	course, err := ownerCourse(ctl.DB, levelSection, unit.SectionID)
	if err != nil {
		return respondWalkError(c, err)
	}
	if course.CreatedByID != callerID(c) {
		return utils.Message(c, fiber.StatusForbidden, "Not authorized to delete this unit")
	}

	if err := deleteSubtree(ctl.DB, levelUnit, unit.ID); err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Failed to delete unit: "+err.Error())
	}

	return utils.Message(c, fiber.StatusOK, "Unit and all related content deleted")
}

// ---- Chapters ----

func (ctl *AdminController) CreateChapter(c *fiber.Ctx) error {
	var input struct {
		Title  string `json:"title"`
		UnitID string `json:"unitId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	course, err := ownerCourse(ctl.DB, levelUnit, input.UnitID)
	if err != nil {
		return respondWalkError(c, err)
	}
	if course.CreatedByID != callerID(c) {
		return utils.Message(c, fiber.StatusForbidden, "Not authorized to add chapters to this unit")
	}

	chapter := models.Chapter{
		Title:    input.Title,
		UnitID:   input.UnitID,
		Position: nextPosition(ctl.DB, &models.Chapter{}, "unit_id", input.UnitID),
	}
	if err := ctl.DB.Create(&chapter).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not create chapter")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Chapter created",
		"chapter": chapter,
	})
}

func (ctl *AdminController) UpdateChapter(c *fiber.Ctx) error {
	var input struct {
		Title string `json:"title"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	var chapter models.Chapter
	if err := ctl.DB.First(&chapter, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Message(c, fiber.StatusNotFound, "Chapter not found")
		}
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	course, err := ownerCourse(ctl.DB, levelUnit, chapter.UnitID)
	if err != nil {
		return respondWalkError(c, err)
	}
	if course.CreatedByID != callerID(c) {
		return utils.Message(c, fiber.StatusForbidden, "Not authorized to update this chapter")
	}

	if input.Title != "" {
		chapter.Title = input.Title
	}

	if err := ctl.DB.Save(&chapter).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not update chapter")
	}

	return c.JSON(fiber.Map{
		"message": "Chapter updated",
		"chapter": chapter,
	})
}

func (ctl *AdminController) DeleteChapter(c *fiber.Ctx) error {
	var chapter models.Chapter
	if err := ctl.DB.First(&chapter, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Message(c, fiber.StatusNotFound, "Chapter not found")
		}
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	course, err := ownerCourse(ctl.DB, levelUnit, chapter.UnitID)
	if err != nil {
		return respondWalkError(c, err)
	}
	if course.CreatedByID != callerID(c) {
		return utils.Message(c, fiber.StatusForbidden, "Not authorized to delete this chapter")
	}

	if err := deleteSubtree(ctl.DB, levelChapter, chapter.ID); err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Failed to delete chapter: "+err.Error())
	}

	return utils.Message(c, fiber.StatusOK, "Chapter and all related questions deleted")
}

// ---- Questions ----

func (ctl *AdminController) CreateQuestion(c *fiber.Ctx) error {
	var input struct {
		ChapterID     string   `json:"chapterId"`
		Type          string   `json:"type"`
		QuestionText  string   `json:"questionText"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correctAnswer"`
		Media         string   `json:"media"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	course, err := ownerCourse(ctl.DB, levelChapter, input.ChapterID)
	if err != nil {
		return respondWalkError(c, err)
	}
	if course.CreatedByID != callerID(c) {
		return utils.Message(c, fiber.StatusForbidden, "Not authorized to add questions to this chapter")
	}

	// Options are only meaningful for mcq questions.
	options := []string{}
	if input.Type == models.QuestionMCQ {
		options = input.Options
	}
	optionsJSON, err := json.Marshal(options)
	if err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not encode options")
	}

	question := models.Question{
		ChapterID:     input.ChapterID,
		Position:      nextPosition(ctl.DB, &models.Question{}, "chapter_id", input.ChapterID),
		Type:          input.Type,
		QuestionText:  input.QuestionText,
		Options:       datatypes.JSON(optionsJSON),
		CorrectAnswer: input.CorrectAnswer,
		Media:         input.Media,
	}
	if err := ctl.DB.Create(&question).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not create question")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Question created",
		"question": question,
	})
}

func (ctl *AdminController) UpdateQuestion(c *fiber.Ctx) error {
	var input struct {
		Type          string   `json:"type"`
		QuestionText  string   `json:"questionText"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correctAnswer"`
		Media         string   `json:"media"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	var question models.Question
	if err := ctl.DB.First(&question, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Message(c, fiber.StatusNotFound, "Question not found")
		}
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	course, err := ownerCourse(ctl.DB, levelChapter, question.ChapterID)
	if err != nil {
		return respondWalkError(c, err)
	}
	if course.CreatedByID != callerID(c) {
		return utils.Message(c, fiber.StatusForbidden, "Not authorized to update this question")
	}

	if input.Type != "" {
		question.Type = input.Type
	}
	if input.QuestionText != "" {
		question.QuestionText = input.QuestionText
	}
	if input.Type == models.QuestionMCQ && input.Options != nil {
		optionsJSON, err := json.Marshal(input.Options)
		if err != nil {
			return utils.Message(c, fiber.StatusInternalServerError, "Could not encode options")
		}
		question.Options = datatypes.JSON(optionsJSON)
	}
	if input.CorrectAnswer != "" {
		question.CorrectAnswer = input.CorrectAnswer
	}
	if input.Media != "" {
		question.Media = input.Media
	}

	if err := ctl.DB.Save(&question).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not update question")
	}

	return c.JSON(fiber.Map{
		"message":  "Question updated",
		"question": question,
	})
}

func (ctl *AdminController) DeleteQuestion(c *fiber.Ctx) error {
	var question models.Question
	if err := ctl.DB.First(&question, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Message(c, fiber.StatusNotFound, "Question not found")
		}
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	course, err := ownerCourse(ctl.DB, levelChapter, question.ChapterID)
	if err != nil {
		return respondWalkError(c, err)
	}
	if course.CreatedByID != callerID(c) {
		return utils.Message(c, fiber.StatusForbidden, "Not authorized to delete this question")
	}

	if err := deleteSubtree(ctl.DB, levelQuestion, question.ID); err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Failed to delete question: "+err.Error())
	}

	return utils.Message(c, fiber.StatusOK, "Question deleted")
}
