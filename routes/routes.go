package routes

import (
	"learning-platform/config"
	"learning-platform/controllers"
	"learning-platform/middleware"
	"learning-platform/validators"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware()

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	auth := app.Group("/api/auth")
	auth.Post("/register", validators.Register(), authController.Register)
	auth.Post("/login", validators.Login(), authController.Login)
	auth.Get("/verify", authMiddleware, authController.Verify)

	// Admin routes: content authoring, gated on the admin role
	adminController := controllers.NewAdminController(db, cfg)
	admin := app.Group("/api/admin", authMiddleware, adminMiddleware)

	admin.Post("/courses", validators.CreateCourse(), adminController.CreateCourse)
	admin.Get("/courses", adminController.GetAllCourses)
	admin.Get("/courses/:id", adminController.GetCourseByID)
	admin.Put("/courses/:id", validators.UpdateCourse(), adminController.UpdateCourse)
	admin.Delete("/courses/:id", validators.ObjectIDParam("id", "course ID"), adminController.DeleteCourse)

	admin.Post("/sections", validators.CreateChild("courseId", "course"), adminController.CreateSection)
	admin.Put("/sections/:id", validators.UpdateTitle(), adminController.UpdateSection)
	admin.Delete("/sections/:id", adminController.DeleteSection)

	admin.Post("/units", validators.CreateChild("sectionId", "section"), adminController.CreateUnit)
	admin.Put("/units/:id", validators.UpdateTitle(), adminController.UpdateUnit)
	admin.Delete("/units/:id", adminController.DeleteUnit)

	admin.Post("/chapters", validators.CreateChild("unitId", "unit"), adminController.CreateChapter)
	admin.Put("/chapters/:id", validators.UpdateTitle(), adminController.UpdateChapter)
	admin.Delete("/chapters/:id", adminController.DeleteChapter)

	admin.Post("/questions", validators.CreateQuestion(), adminController.CreateQuestion)
	admin.Put("/questions/:id", validators.UpdateQuestion(), adminController.UpdateQuestion)
	admin.Delete("/questions/:id", adminController.DeleteQuestion)

	// Learner routes: open to any authenticated user
	learnerController := controllers.NewLearnerController(db, cfg)
	learner := app.Group("/api/learner", authMiddleware)

	learner.Get("/courses", learnerController.GetAllCourses)
	learner.Post("/enroll", validators.Enroll(), learnerController.Enroll)
	learner.Get("/enrolled-courses", learnerController.GetEnrolledCourses)
	learner.Get("/course/:courseId", validators.ObjectIDParam("courseId", "course ID"), learnerController.GetCourseContent)
	learner.Post("/submit-answer", validators.SubmitAnswer(), learnerController.SubmitAnswer)
	learner.Get("/progress/:courseId", validators.ObjectIDParam("courseId", "course ID"), learnerController.GetProgress)
	learner.Get("/score/:chapterId", validators.ObjectIDParam("chapterId", "chapter ID"), learnerController.GetScoreSummary)
}
