package routes

import (
	"testing"

	"learning-platform/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCourseRequiresAdmin(t *testing.T) {
	learnerToken := registerUser(t, "learner")

	resp := request(t, "POST", "/api/admin/courses", learnerToken, map[string]string{
		"title": "Sneaky Course",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Admin access required", decodeMap(t, resp)["message"])
}

func TestCreateCourseRequiresAuth(t *testing.T) {
	resp := request(t, "POST", "/api/admin/courses", "", map[string]string{
		"title": "Anonymous Course",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCreateCourse(t *testing.T) {
	token := registerUser(t, "admin")

	resp := request(t, "POST", "/api/admin/courses", token, map[string]string{
		"title":       "Go Fundamentals",
		"description": "An introduction",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	result := decodeMap(t, resp)
	assert.Equal(t, "Course created", result["message"])
	course, _ := result["course"].(map[string]interface{})
	require.NotNil(t, course)
	assert.Equal(t, "Go Fundamentals", course["title"])
	assert.Equal(t, "An introduction", course["description"])
}

func TestCreateCourseMissingTitle(t *testing.T) {
	token := registerUser(t, "admin")

	resp := request(t, "POST", "/api/admin/courses", token, map[string]string{
		"description": "No title here",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetAllCoursesOnlyOwn(t *testing.T) {
	token1 := registerUser(t, "admin")
	token2 := registerUser(t, "admin")
	createTree(t, token1, 0)

	resp := request(t, "GET", "/api/admin/courses", token2, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeList(t, resp))

	resp = request(t, "GET", "/api/admin/courses", token1, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 1)
}

func TestGetCourseTree(t *testing.T) {
	token := registerUser(t, "admin")
	tree := createTree(t, token, 2)

	resp := request(t, "GET", "/api/admin/courses/"+tree.courseID, token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	course := decodeMap(t, resp)
	sections, _ := course["sections"].([]interface{})
	require.Len(t, sections, 1)
	units, _ := sections[0].(map[string]interface{})["units"].([]interface{})
	require.Len(t, units, 1)
	chapters, _ := units[0].(map[string]interface{})["chapters"].([]interface{})
	require.Len(t, chapters, 1)
	questions, _ := chapters[0].(map[string]interface{})["questions"].([]interface{})
	assert.Len(t, questions, 2)
}

func TestUpdateCoursePartial(t *testing.T) {
	token := registerUser(t, "admin")
	tree := createTree(t, token, 0)

	resp := request(t, "PUT", "/api/admin/courses/"+tree.courseID, token, map[string]string{
		"description": "Updated description",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	course, _ := decodeMap(t, resp)["course"].(map[string]interface{})
	require.NotNil(t, course)
	assert.Equal(t, "Test Course", course["title"])
	assert.Equal(t, "Updated description", course["description"])
}

func TestUpdateCourseNotOwner(t *testing.T) {
	owner := registerUser(t, "admin")
	other := registerUser(t, "admin")
	tree := createTree(t, owner, 0)

	resp := request(t, "PUT", "/api/admin/courses/"+tree.courseID, other, map[string]string{
		"title": "Hijacked",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Not authorized to update this course", decodeMap(t, resp)["message"])

	// The course is unchanged after the rejected update.
	var course models.Course
	require.NoError(t, db.First(&course, "id = ?", tree.courseID).Error)
	assert.Equal(t, "Test Course", course.Title)
}

func TestDeleteCourseNotOwner(t *testing.T) {
	owner := registerUser(t, "admin")
	other := registerUser(t, "admin")
	tree := createTree(t, owner, 1)

	resp := request(t, "DELETE", "/api/admin/courses/"+tree.courseID, other, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	assert.Equal(t, int64(1), countRows(t, &models.Course{}, "id = ?", tree.courseID))
	assert.Equal(t, int64(1), countRows(t, &models.Question{}, "chapter_id = ?", tree.chapterID))
}

func TestDeleteCourseCascade(t *testing.T) {
	token := registerUser(t, "admin")
	tree := createTree(t, token, 3)

	resp := request(t, "DELETE", "/api/admin/courses/"+tree.courseID, token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Course and all related content deleted", decodeMap(t, resp)["message"])

	assert.Equal(t, int64(0), countRows(t, &models.Course{}, "id = ?", tree.courseID))
	assert.Equal(t, int64(0), countRows(t, &models.Section{}, "course_id = ?", tree.courseID))
	assert.Equal(t, int64(0), countRows(t, &models.Unit{}, "section_id = ?", tree.sectionID))
	assert.Equal(t, int64(0), countRows(t, &models.Chapter{}, "unit_id = ?", tree.unitID))
	assert.Equal(t, int64(0), countRows(t, &models.Question{}, "chapter_id = ?", tree.chapterID))

	resp = request(t, "GET", "/api/admin/courses/"+tree.courseID, token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteSectionLeavesSiblings(t *testing.T) {
	token := registerUser(t, "admin")
	tree := createTree(t, token, 1)

	resp := request(t, "POST", "/api/admin/sections", token, map[string]string{
		"title":    "Section 2",
		"courseId": tree.courseID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	siblingID := entityID(t, decodeMap(t, resp), "section")

	resp = request(t, "DELETE", "/api/admin/sections/"+tree.sectionID, token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Section and all related content deleted", decodeMap(t, resp)["message"])

	assert.Equal(t, int64(0), countRows(t, &models.Section{}, "id = ?", tree.sectionID))
	assert.Equal(t, int64(0), countRows(t, &models.Unit{}, "section_id = ?", tree.sectionID))
	assert.Equal(t, int64(0), countRows(t, &models.Question{}, "chapter_id = ?", tree.chapterID))
	assert.Equal(t, int64(1), countRows(t, &models.Section{}, "id = ?", siblingID))
	assert.Equal(t, int64(1), countRows(t, &models.Course{}, "id = ?", tree.courseID))
}

func TestDeleteChapterCascade(t *testing.T) {
	token := registerUser(t, "admin")
	tree := createTree(t, token, 2)

	resp := request(t, "DELETE", "/api/admin/chapters/"+tree.chapterID, token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Chapter and all related questions deleted", decodeMap(t, resp)["message"])

	assert.Equal(t, int64(0), countRows(t, &models.Chapter{}, "id = ?", tree.chapterID))
	assert.Equal(t, int64(0), countRows(t, &models.Question{}, "chapter_id = ?", tree.chapterID))
	assert.Equal(t, int64(1), countRows(t, &models.Unit{}, "id = ?", tree.unitID))
}

func TestDeleteQuestion(t *testing.T) {
	token := registerUser(t, "admin")
	tree := createTree(t, token, 2)

	resp := request(t, "DELETE", "/api/admin/questions/"+tree.questionIDs[0], token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Question deleted", decodeMap(t, resp)["message"])

	assert.Equal(t, int64(0), countRows(t, &models.Question{}, "id = ?", tree.questionIDs[0]))
	assert.Equal(t, int64(1), countRows(t, &models.Question{}, "id = ?", tree.questionIDs[1]))
}

func TestDeleteCourseInvalidID(t *testing.T) {
	token := registerUser(t, "admin")

	resp := request(t, "DELETE", "/api/admin/courses/not-hex", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDeleteCourseUnknownID(t *testing.T) {
	token := registerUser(t, "admin")

	resp := request(t, "DELETE", "/api/admin/courses/"+models.NewID(), token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Course not found", decodeMap(t, resp)["message"])
}

func TestCreateSectionUnknownCourse(t *testing.T) {
	token := registerUser(t, "admin")

	resp := request(t, "POST", "/api/admin/sections", token, map[string]string{
		"title":    "Orphan",
		"courseId": models.NewID(),
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateMCQQuestionOptionValidation(t *testing.T) {
	token := registerUser(t, "admin")
	tree := createTree(t, token, 0)

	resp := request(t, "POST", "/api/admin/questions", token, map[string]interface{}{
		"chapterId":     tree.chapterID,
		"type":          "mcq",
		"questionText":  "Pick one",
		"options":       []string{"only"},
		"correctAnswer": "only",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = request(t, "POST", "/api/admin/questions", token, map[string]interface{}{
		"chapterId":     tree.chapterID,
		"type":          "mcq",
		"questionText":  "Pick one",
		"options":       []string{"yes", "no"},
		"correctAnswer": "yes",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	question, _ := decodeMap(t, resp)["question"].(map[string]interface{})
	require.NotNil(t, question)
	options, _ := question["options"].([]interface{})
	assert.Equal(t, []interface{}{"yes", "no"}, options)
}

func TestCreateQuestionInvalidType(t *testing.T) {
	token := registerUser(t, "admin")
	tree := createTree(t, token, 0)

	resp := request(t, "POST", "/api/admin/questions", token, map[string]interface{}{
		"chapterId":     tree.chapterID,
		"type":          "essay",
		"questionText":  "Discuss",
		"correctAnswer": "anything",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateQuestion(t *testing.T) {
	token := registerUser(t, "admin")
	tree := createTree(t, token, 1)

	resp := request(t, "PUT", "/api/admin/questions/"+tree.questionIDs[0], token, map[string]string{
		"correctAnswer": "revised",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var question models.Question
	require.NoError(t, db.First(&question, "id = ?", tree.questionIDs[0]).Error)
	assert.Equal(t, "revised", question.CorrectAnswer)
	assert.Equal(t, "Question 0?", question.QuestionText)
}

func TestSectionPositionsAssignedInOrder(t *testing.T) {
	token := registerUser(t, "admin")
	tree := createTree(t, token, 0)

	resp := request(t, "POST", "/api/admin/sections", token, map[string]string{
		"title":    "Second",
		"courseId": tree.courseID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var sections []models.Section
	require.NoError(t, db.Where("course_id = ?", tree.courseID).Order("position").Find(&sections).Error)
	require.Len(t, sections, 2)
	assert.Equal(t, 1, sections[0].Position)
	assert.Equal(t, 2, sections[1].Position)
}
