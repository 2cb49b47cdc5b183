package controllers

import (
	"errors"
	"time"

	"learning-platform/config"
	"learning-platform/models"
	"learning-platform/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LearnerController serves course discovery, enrollment and progress
// tracking. Any authenticated user may call these endpoints.
type LearnerController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewLearnerController(db *gorm.DB, cfg *config.Config) *LearnerController {
	return &LearnerController{DB: db, Cfg: cfg}
}

// GetAllCourses lists every course with its full content tree.
func (ctl *LearnerController) GetAllCourses(c *fiber.Ctx) error {
	courses := []models.Course{}
	if err := preloadTree(ctl.DB, "").Find(&courses).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Failed to fetch courses")
	}
	return c.JSON(courses)
}

// Enroll adds the caller to a course. At most one enrollment per
// (learner, course) pair.
func (ctl *LearnerController) Enroll(c *fiber.Ctx) error {
	var input struct {
		CourseID string `json:"courseId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	learnerID := callerID(c)

	var existing models.Enrollment
	err := ctl.DB.Where("learner_id = ? AND course_id = ?", learnerID, input.CourseID).First(&existing).Error
	if err == nil {
		return utils.Message(c, fiber.StatusBadRequest, "Already enrolled in this course")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	enrollment := models.Enrollment{
		LearnerID: learnerID,
		CourseID:  input.CourseID,
	}
	if err := ctl.DB.Create(&enrollment).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not enroll in course")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Enrolled in course",
		"enrollment": enrollment,
	})
}

// GetEnrolledCourses lists the caller's enrollments with course trees.
func (ctl *LearnerController) GetEnrolledCourses(c *fiber.Ctx) error {
	enrollments := []models.Enrollment{}
	if err := preloadTree(ctl.DB.Preload("Course"), "Course.").
		Where("learner_id = ?", callerID(c)).
		Find(&enrollments).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}
	return c.JSON(enrollments)
}

// GetCourseContent returns one course with its full content tree.
func (ctl *LearnerController) GetCourseContent(c *fiber.Ctx) error {
	var course models.Course
	if err := preloadTree(ctl.DB, "").First(&course, "id = ?", c.Params("courseId")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Message(c, fiber.StatusNotFound, "Course not found")
		}
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}
	return c.JSON(course)
}

// SubmitAnswer records one attempt and recomputes the chapter score.
// Correctness is exact string equality against the stored answer. The
// progress record is created lazily on the first attempt in a chapter, and
// completion means the attempt count equals the chapter's question count —
// repeated attempts on one question are not deduplicated.
func (ctl *LearnerController) SubmitAnswer(c *fiber.Ctx) error {
	var input struct {
		CourseID   string `json:"courseId"`
		SectionID  string `json:"sectionId"`
		UnitID     string `json:"unitId"`
		ChapterID  string `json:"chapterId"`
		QuestionID string `json:"questionId"`
		Answer     string `json:"answer"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.Message(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	var question models.Question
	if err := ctl.DB.First(&question, "id = ?", input.QuestionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Message(c, fiber.StatusNotFound, "Question not found")
		}
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	isCorrect := question.CorrectAnswer == input.Answer
	learnerID := callerID(c)

	var progress models.Progress
	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Preload("Attempts").
			Where("learner_id = ? AND course_id = ? AND section_id = ? AND unit_id = ? AND chapter_id = ?",
				learnerID, input.CourseID, input.SectionID, input.UnitID, input.ChapterID).
			First(&progress).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			progress = models.Progress{
				LearnerID: learnerID,
				CourseID:  input.CourseID,
				SectionID: input.SectionID,
				UnitID:    input.UnitID,
				ChapterID: input.ChapterID,
			}
			if err := tx.Create(&progress).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		attempt := models.Attempt{
			ProgressID:  progress.ID,
			QuestionID:  input.QuestionID,
			Answer:      input.Answer,
			IsCorrect:   isCorrect,
			AttemptedAt: time.Now(),
		}
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}
		progress.Attempts = append(progress.Attempts, attempt)

		var totalQuestions int64
		if err := tx.Model(&models.Question{}).Where("chapter_id = ?", input.ChapterID).Count(&totalQuestions).Error; err != nil {
			return err
		}

		correctAnswers := 0
		for _, a := range progress.Attempts {
			if a.IsCorrect {
				correctAnswers++
			}
		}

		// A chapter with no questions cannot produce a meaningful ratio;
		// the score stays at zero.
		progress.Score = 0
		if totalQuestions > 0 {
			progress.Score = float64(correctAnswers) / float64(totalQuestions) * 100
		}
		progress.Completed = int64(len(progress.Attempts)) == totalQuestions
		progress.LastUpdated = time.Now()

		return tx.Model(&progress).Updates(map[string]interface{}{
			"score":        progress.Score,
			"completed":    progress.Completed,
			"last_updated": progress.LastUpdated,
		}).Error
	})
	if err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not save progress")
	}

	return c.JSON(fiber.Map{
		"message":   "Answer submitted",
		"isCorrect": isCorrect,
		"score":     progress.Score,
	})
}

// GetProgress returns all progress records for the caller in a course plus
// the most recently updated one.
func (ctl *LearnerController) GetProgress(c *fiber.Ctx) error {
	progress := []models.Progress{}
	if err := ctl.DB.Preload("Attempts").
		Where("learner_id = ? AND course_id = ?", callerID(c), c.Params("courseId")).
		Find(&progress).Error; err != nil {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}

	var lastProgress *models.Progress
	for i := range progress {
		if lastProgress == nil || progress[i].LastUpdated.After(lastProgress.LastUpdated) {
			lastProgress = &progress[i]
		}
	}

	return c.JSON(fiber.Map{
		"progress":     progress,
		"lastProgress": lastProgress,
	})
}

// GetScoreSummary returns the caller's score and attempts for one chapter.
func (ctl *LearnerController) GetScoreSummary(c *fiber.Ctx) error {
	var progress models.Progress
	err := ctl.DB.Preload("Attempts").
		Where("learner_id = ? AND chapter_id = ?", callerID(c), c.Params("chapterId")).
		First(&progress).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.Message(c, fiber.StatusInternalServerError, "Could not query database")
	}
	if errors.Is(err, gorm.ErrRecordNotFound) || len(progress.Attempts) == 0 {
		return utils.Message(c, fiber.StatusBadRequest, "No attempts made for this chapter")
	}

	correctAnswers := 0
	for _, a := range progress.Attempts {
		if a.IsCorrect {
			correctAnswers++
		}
	}

	return c.JSON(fiber.Map{
		"score":          progress.Score,
		"attempts":       progress.Attempts,
		"totalQuestions": len(progress.Attempts),
		"correctAnswers": correctAnswers,
	})
}
