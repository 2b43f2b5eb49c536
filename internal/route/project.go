package route

import (
	"github.com/gin-gonic/gin"
	"github.com/sopheak-dev/agencyflow/internal/controller"
	"github.com/sopheak-dev/agencyflow/internal/middleware"
)

func V1_Projects(r *gin.RouterGroup, projectController *controller.ProjectController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/projects")
	v1.Use(middleware.AuthMiddleware)
	{
		v1.POST("", projectController.CreateProject)
		v1.GET("", projectController.ListProjects)
		v1.GET("/:projectId", projectController.GetProjectById)
		v1.PATCH("/:projectId", projectController.UpdateProject)
		v1.PATCH("/:projectId/progress", projectController.AddProjectProgress)
		v1.DELETE("/:projectId", projectController.DeleteProject)

		v1.GET("/:projectId/files", projectController.GetProjectFiles)
		v1.POST("/:projectId/files", projectController.UploadProjectFile)
		v1.DELETE("/:projectId/files/:fileId", projectController.DeleteProjectFile)
		v1.PUT("/:projectId/requirement", projectController.UpdateRequirementPdf)
	}
}
