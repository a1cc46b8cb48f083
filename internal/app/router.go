package app

import (
	"edulearn_backend/docs"
	"edulearn_backend/internal/config"
	"edulearn_backend/internal/middleware"
	"edulearn_backend/internal/model"

	"edulearn_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		// 学生/通用 授权接口
		a.registerStudentRoutes(authGroup, c)

		// 教师相关接口
		a.registerTeacherRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/courses", c.course.List)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	// 课程与选课
	rg.GET("/courses/:id", c.course.Get)
	rg.POST("/courses/:id/enroll", c.course.Enroll)
	rg.GET("/my-courses", c.course.MyEnrollments)

	// 测验
	rg.GET("/quizzes/:id", c.quiz.GetQuiz)
	rg.POST("/quizzes/:id/submit", c.quiz.Submit)
	rg.GET("/quizzes/:id/my-summary", c.quiz.MySummary)

	// 学前测评
	assessment := rg.Group("/assessment")
	{
		assessment.GET("/topics", c.assessment.ListTopics)
		assessment.GET("/questions", c.assessment.RandomQuestions)
		assessment.POST("/submit", c.learningPath.SubmitPlacement)
		assessment.POST("/feedback", c.assessment.QuestionFeedback)
	}

	// 学习路径
	paths := rg.Group("/learning-paths")
	{
		paths.GET("", c.learningPath.ListMyPaths)
		paths.POST("/:id/courses/:courseId/enroll", c.learningPath.EnrollCourse)
		paths.POST("/:id/enroll-all", c.learningPath.EnrollAll)
	}
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher, model.Admin))
	{
		// 成绩查询
		teacher.GET("/courses/:id/roster", c.grade.CourseRoster)
		teacher.GET("/courses/:id/students/:studentId/grades", c.grade.StudentCourseDetail)

		// 测验出题
		teacher.POST("/quizzes/:id/questions", c.quiz.CreateQuestion)
		teacher.PUT("/questions/:id", c.quiz.UpdateQuestion)
		teacher.DELETE("/questions/:id", c.quiz.DeleteQuestion)

		// 测评题池维护
		teacher.POST("/assessment/topics", c.assessment.CreateTopic)
		teacher.POST("/assessment/questions", c.assessment.CreateQuestion)
		teacher.GET("/assessment/questions/:id", c.assessment.GetQuestion)
		teacher.DELETE("/assessment/questions/:id", c.assessment.DeleteQuestion)
	}
}
