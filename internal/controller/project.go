package controller

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sopheak-dev/agencyflow/internal/constant"
	"github.com/sopheak-dev/agencyflow/internal/model"
	"github.com/sopheak-dev/agencyflow/internal/repository"
	"github.com/sopheak-dev/agencyflow/internal/service"
	"github.com/sopheak-dev/agencyflow/internal/util"
)

type ProjectController struct {
	*baseController
}

const (
	ErrProjectIdRequired     = "project id is required"
	ErrFileIdRequired        = "file id is required"
	ErrFileRequired          = "file is required"
	ErrRequirementFileNotPdf = "requirement file is invalid or not a pdf"
)

func (pc ProjectController) readProjectId(ctx *gin.Context) (uint, error) {
	raw := ctx.Param("projectId")
	if raw == "" {
		return 0, errors.New(ErrProjectIdRequired)
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.New(ErrProjectIdRequired)
	}

	return uint(id), nil
}

func (pc ProjectController) CreateProject(ctx *gin.Context) {
	type Request struct {
		Title             string     `json:"title" form:"title" binding:"required,strNotEmpty,min=1,max=100"`
		Description       string     `json:"description" form:"description"`
		ServiceID         *uint      `json:"serviceId" form:"serviceId"`
		ClientID          uint       `json:"clientId" form:"clientId"`
		ControllerID      *uint      `json:"controllerId" form:"controllerId"`
		Amount            *float64   `json:"amount" form:"amount"`
		AmountDescription *string    `json:"amountDescription" form:"amountDescription"`
		StartDate         *time.Time `json:"startDate" form:"startDate"`
		EndDate           *time.Time `json:"endDate" form:"endDate"`
	}
	var body Request

	requester, err := pc.getRequester(ctx)
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	project, err := pc.app.ProjectService.Create(ctx, requester, service.ProjectCreate{
		Title:             body.Title,
		Description:       body.Description,
		ServiceID:         body.ServiceID,
		ClientID:          body.ClientID,
		ControllerID:      body.ControllerID,
		Amount:            body.Amount,
		AmountDescription: body.AmountDescription,
		StartDate:         body.StartDate,
		EndDate:           body.EndDate,
	})
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseError(ctx, "Failed to create project", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"project": project,
	})
}

func (pc ProjectController) ListProjects(ctx *gin.Context) {
	type Request struct {
		Search   string                   `form:"search"`
		Status   []constant.ProjectStatus `form:"status"`
		Page     uint                     `form:"page,default=1"`
		PageSize uint                     `form:"pageSize,default=10"`
	}
	var params Request

	requester, err := pc.getRequester(ctx)
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := ctx.ShouldBindQuery(&params); err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid query", util.GenerateErrorMessages(err), nil)
		return
	}

	projects, total, err := pc.app.ProjectService.List(ctx, requester, repository.ListFilter{
		Search:   params.Search,
		Status:   params.Status,
		Page:     params.Page,
		PageSize: params.PageSize,
	})
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseError(ctx, "Failed to list projects", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"projects":  projects,
		"total":     total,
		"page":      params.Page,
		"totalPage": util.CalculateTotalPage(total, params.PageSize),
	})
}

func (pc ProjectController) GetProjectById(ctx *gin.Context) {
	requester, err := pc.getRequester(ctx)
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	projectId, err := pc.readProjectId(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Project ID is required", util.GenerateErrorMessages(err, "projectId"), nil)
		return
	}

	project, err := pc.app.ProjectService.GetByID(ctx, requester, projectId)
	if err != nil {
		util.ResponseError(ctx, "Project not found", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"project": project,
	})
}

func (pc ProjectController) UpdateProject(ctx *gin.Context) {
	type Request struct {
		Title             *string                 `json:"title" form:"title"`
		Description       *string                 `json:"description" form:"description"`
		ServiceID         *uint                   `json:"serviceId" form:"serviceId"`
		ControllerID      *uint                   `json:"controllerId" form:"controllerId"`
		Status            *constant.ProjectStatus `json:"status" form:"status"`
		Progress          *int                    `json:"progress" form:"progress"`
		Amount            *float64                `json:"amount" form:"amount"`
		AmountDescription *string                 `json:"amountDescription" form:"amountDescription"`
		StartDate         *time.Time              `json:"startDate" form:"startDate"`
		EndDate           *time.Time              `json:"endDate" form:"endDate"`
	}
	var body Request

	requester, err := pc.getRequester(ctx)
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	projectId, err := pc.readProjectId(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Project ID is required", util.GenerateErrorMessages(err, "projectId"), nil)
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	project, err := pc.app.ProjectService.Update(ctx, requester, projectId, service.ProjectPatch{
		Title:             body.Title,
		Description:       body.Description,
		ServiceID:         body.ServiceID,
		ControllerID:      body.ControllerID,
		Status:            body.Status,
		Progress:          body.Progress,
		Amount:            body.Amount,
		AmountDescription: body.AmountDescription,
		StartDate:         body.StartDate,
		EndDate:           body.EndDate,
	})
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseError(ctx, "Failed to update project", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"project": project,
	})
}

func (pc ProjectController) AddProjectProgress(ctx *gin.Context) {
	type Request struct {
		Status   *constant.ProjectStatus `json:"status" form:"status"`
		Progress *int                    `json:"progress" form:"progress"`
	}
	var body Request

	requester, err := pc.getRequester(ctx)
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	projectId, err := pc.readProjectId(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Project ID is required", util.GenerateErrorMessages(err, "projectId"), nil)
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	project, err := pc.app.ProjectService.AddProgress(ctx, requester, projectId, service.ProgressPatch{
		Status:   body.Status,
		Progress: body.Progress,
	})
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseError(ctx, "Failed to update project progress", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"project": project,
	})
}

func (pc ProjectController) DeleteProject(ctx *gin.Context) {
	requester, err := pc.getRequester(ctx)
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	projectId, err := pc.readProjectId(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Project ID is required", util.GenerateErrorMessages(err, "projectId"), nil)
		return
	}

	result, err := pc.app.ProjectService.Remove(ctx, requester, projectId)
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseError(ctx, "Failed to delete project", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"message": result.Message,
		"deleted": result.Deleted,
	})
}

func (pc ProjectController) UploadProjectFile(ctx *gin.Context) {
	requester, err := pc.getRequester(ctx)
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	projectId, err := pc.readProjectId(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Project ID is required", util.GenerateErrorMessages(err, "projectId"), nil)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "No file uploaded", util.GenerateErrorMessages(errors.New(ErrFileRequired), "file"), nil)
		return
	}

	src, err := file.Open()
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to read uploaded file", util.GenerateErrorMessages(err), nil)
		return
	}
	defer src.Close()

	result, err := pc.app.ProjectService.UploadFile(ctx, requester, projectId, service.FileUpload{
		FileName:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
		Reader:      src,
	})
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseError(ctx, "Failed to upload project file", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"file": result.File,
	})
}

func (pc ProjectController) UpdateRequirementPdf(ctx *gin.Context) {
	requester, err := pc.getRequester(ctx)
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	projectId, err := pc.readProjectId(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Project ID is required", util.GenerateErrorMessages(err, "projectId"), nil)
		return
	}

	file, err := ctx.FormFile("requirementFile")
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "No requirement file uploaded", util.GenerateErrorMessages(errors.New(ErrFileRequired), "requirementFile"), nil)
		return
	}

	// create temp file to validate pdf structure before storing
	tempFile, err := util.CreateTemp("requirement-*.pdf")
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to create temp file", util.GenerateErrorMessages(err), nil)
		return
	}
	defer os.Remove(tempFile.Name())
	defer tempFile.Close()

	if err := ctx.SaveUploadedFile(file, tempFile.Name()); err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to save uploaded file", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := util.ValidatePdfFile(tempFile.Name()); err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid requirement file", util.GenerateErrorMessages(errors.New(ErrRequirementFileNotPdf), "requirementFile"), nil)
		return
	}

	src, err := os.Open(tempFile.Name())
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to read uploaded file", util.GenerateErrorMessages(err), nil)
		return
	}
	defer src.Close()

	project, err := pc.app.ProjectService.UpdateRequirementPdf(ctx, requester, projectId, service.FileUpload{
		FileName:    file.Filename,
		ContentType: "application/pdf",
		Size:        file.Size,
		Reader:      src,
	})
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseError(ctx, "Failed to update requirement document", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"project": project,
	})
}

func (pc ProjectController) GetProjectFiles(ctx *gin.Context) {
	requester, err := pc.getRequester(ctx)
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	projectId, err := pc.readProjectId(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Project ID is required", util.GenerateErrorMessages(err, "projectId"), nil)
		return
	}

	files, err := pc.app.ProjectService.GetFiles(ctx, requester, projectId)
	if err != nil {
		util.ResponseError(ctx, "Failed to list project files", err)
		return
	}

	type fileWithUrl struct {
		model.ProjectFile
		Url string `json:"url"`
	}

	filesWithUrl := make([]fileWithUrl, 0, len(files))
	for _, f := range files {
		url, err := pc.app.Storage.PresignedURL(ctx, f.FilePath)
		if err != nil {
			pc.app.Logger.Errorf("Failed to presign url for file %d: %v", f.ID, err)
		}
		filesWithUrl = append(filesWithUrl, fileWithUrl{ProjectFile: f, Url: url})
	}

	util.ResponseSuccess(ctx, gin.H{
		"files": filesWithUrl,
	})
}

func (pc ProjectController) DeleteProjectFile(ctx *gin.Context) {
	requester, err := pc.getRequester(ctx)
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	projectId, err := pc.readProjectId(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Project ID is required", util.GenerateErrorMessages(err, "projectId"), nil)
		return
	}

	rawFileId := ctx.Param("fileId")
	fileId, err := strconv.ParseUint(rawFileId, 10, 64)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "File ID is required", util.GenerateErrorMessages(errors.New(ErrFileIdRequired), "fileId"), nil)
		return
	}

	if err := pc.app.ProjectService.DeleteFile(ctx, requester, projectId, uint(fileId)); err != nil {
		pc.app.Logger.Error(err)
		util.ResponseError(ctx, "Failed to delete project file", err)
		return
	}

	util.ResponseSuccess(ctx, nil)
}
