package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sopheak-dev/agencyflow/internal/apperror"
	"github.com/sopheak-dev/agencyflow/internal/authz"
	"github.com/sopheak-dev/agencyflow/internal/constant"
	filestorage "github.com/sopheak-dev/agencyflow/internal/file_storage"
	"github.com/sopheak-dev/agencyflow/internal/model"
	"github.com/sopheak-dev/agencyflow/internal/repository"
	"go.uber.org/zap"
)

// ObjectStorage is the slice of the S3 layer the lifecycle needs. Implemented
// by filestorage.Storage.
type ObjectStorage interface {
	Upload(ctx context.Context, directory string, obj filestorage.Object) (string, error)
	Remove(ctx context.Context, key string) error
}

// ProjectService owns the project lifecycle: create, update, progress, file
// management and removal, each followed by a three-way notification fan-out
// to admins, the owning client and the assigned controller.
type ProjectService struct {
	projects ProjectStore
	files    ProjectFileStore
	storage  ObjectStorage
	notifier Notifier
	logger   *zap.SugaredLogger
}

func NewProjectService(projects ProjectStore, files ProjectFileStore, storage ObjectStorage, notifier Notifier, logger *zap.SugaredLogger) *ProjectService {
	return &ProjectService{
		projects: projects,
		files:    files,
		storage:  storage,
		notifier: notifier,
		logger:   logger,
	}
}

// ProjectCreate carries the caller-supplied fields of a new project.
// Ownership fields are overridden per role before the insert.
type ProjectCreate struct {
	Title             string
	Description       string
	ServiceID         *uint
	ClientID          uint
	ControllerID      *uint
	Amount            *float64
	AmountDescription *string
	StartDate         *time.Time
	EndDate           *time.Time
}

// ProjectPatch is a sparse update: nil means "leave unchanged". The field
// names reported by suppliedFields match the JSON names the whitelist uses.
type ProjectPatch struct {
	Title             *string
	Description       *string
	ServiceID         *uint
	ControllerID      *uint
	Status            *constant.ProjectStatus
	Progress          *int
	Amount            *float64
	AmountDescription *string
	StartDate         *time.Time
	EndDate           *time.Time
}

type patchField struct {
	name   string
	column string
	value  any
}

func (p ProjectPatch) suppliedFields() []patchField {
	var fields []patchField
	if p.Title != nil {
		fields = append(fields, patchField{"title", "title", *p.Title})
	}
	if p.Description != nil {
		fields = append(fields, patchField{"description", "description", *p.Description})
	}
	if p.ServiceID != nil {
		fields = append(fields, patchField{"serviceId", "service_id", *p.ServiceID})
	}
	if p.ControllerID != nil {
		fields = append(fields, patchField{"controllerId", "controller_id", *p.ControllerID})
	}
	if p.Status != nil {
		fields = append(fields, patchField{"status", "status", *p.Status})
	}
	if p.Progress != nil {
		fields = append(fields, patchField{"progress", "progress", *p.Progress})
	}
	if p.Amount != nil {
		fields = append(fields, patchField{"amount", "amount", *p.Amount})
	}
	if p.AmountDescription != nil {
		fields = append(fields, patchField{"amountDescription", "amount_description", *p.AmountDescription})
	}
	if p.StartDate != nil {
		fields = append(fields, patchField{"startDate", "start_date", *p.StartDate})
	}
	if p.EndDate != nil {
		fields = append(fields, patchField{"endDate", "end_date", *p.EndDate})
	}
	return fields
}

// ProgressPatch is the narrow update the progress endpoint accepts.
type ProgressPatch struct {
	Status   *constant.ProjectStatus
	Progress *int
}

// Create inserts a new project with forced ownership and fans out creation
// notifications to admins, the owning client and the assigned controller.
func (s *ProjectService) Create(ctx context.Context, r authz.Requester, input ProjectCreate) (*model.Project, error) {
	if err := authz.CanCreateProject(r); err != nil {
		return nil, err
	}

	if input.Title == "" {
		return nil, apperror.Validation("Project title is required")
	}

	project := &model.Project{
		Title:             input.Title,
		Description:       input.Description,
		ServiceID:         input.ServiceID,
		ClientID:          input.ClientID,
		ControllerID:      input.ControllerID,
		Status:            constant.ProjectStatusPending,
		Amount:            input.Amount,
		AmountDescription: input.AmountDescription,
		StartDate:         input.StartDate,
		EndDate:           input.EndDate,
	}
	authz.ApplyCreateOwnership(r, project)

	if project.ClientID == 0 {
		return nil, apperror.Validation("Project must have an owning client")
	}

	created, err := s.projects.Create(ctx, nil, project)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Project %q has been created.", created.Title)
	s.notifier.Dispatch(ctx, AdminsSpec(), "New Project Created", message, constant.NotificationTypeProjectCreated)
	s.notifier.Dispatch(ctx, UserSpec(created.ClientID), "Project Created", message, constant.NotificationTypeProjectCreated)
	if created.ControllerID != nil {
		s.notifier.Dispatch(ctx, UserSpec(*created.ControllerID), "New Project Assigned",
			fmt.Sprintf("Project %q has been assigned to you.", created.Title), constant.NotificationTypeProjectCreated)
	}

	return created, nil
}

// Update applies a sparse patch. Clients are held to the whitelisted fields,
// and an update that changes nothing writes nothing and notifies no one.
func (s *ProjectService) Update(ctx context.Context, r authz.Requester, projectId uint, patch ProjectPatch) (*model.Project, error) {
	project, err := s.projects.GetById(ctx, nil, projectId)
	if err != nil {
		return nil, apperror.NotFound("Project not found")
	}

	if err := authz.CanUpdateProject(r, project); err != nil {
		return nil, err
	}

	supplied := patch.suppliedFields()
	names := make([]string, 0, len(supplied))
	for _, f := range supplied {
		names = append(names, f.name)
	}
	if err := authz.CheckClientFields(r, names); err != nil {
		return nil, err
	}

	if patch.Progress != nil && (*patch.Progress < 0 || *patch.Progress > 100) {
		return nil, apperror.Validation("Progress must be between 0 and 100")
	}

	changes := map[string]any{}
	for _, f := range supplied {
		if projectFieldChanged(project, f) {
			changes[f.column] = f.value
		}
	}

	if len(changes) == 0 {
		return project, nil
	}

	updated, err := s.projects.UpdateFields(ctx, nil, projectId, changes)
	if err != nil {
		return nil, err
	}

	_, statusChanged := changes["status"]
	_, progressChanged := changes["progress"]
	if statusChanged || progressChanged {
		s.fanOut(ctx, updated, "Project Updated",
			fmt.Sprintf("Project %q is now %s at %d%% progress.", updated.Title, updated.Status, updated.Progress),
			constant.NotificationTypeProjectUpdated)
	}

	return updated, nil
}

func projectFieldChanged(p *model.Project, f patchField) bool {
	switch f.column {
	case "title":
		return p.Title != f.value.(string)
	case "description":
		return p.Description != f.value.(string)
	case "service_id":
		return p.ServiceID == nil || *p.ServiceID != f.value.(uint)
	case "controller_id":
		return p.ControllerID == nil || *p.ControllerID != f.value.(uint)
	case "status":
		return p.Status != f.value.(constant.ProjectStatus)
	case "progress":
		return p.Progress != f.value.(int)
	case "amount":
		return p.Amount == nil || *p.Amount != f.value.(float64)
	case "amount_description":
		return p.AmountDescription == nil || *p.AmountDescription != f.value.(string)
	case "start_date":
		return p.StartDate == nil || !p.StartDate.Equal(f.value.(time.Time))
	case "end_date":
		return p.EndDate == nil || !p.EndDate.Equal(f.value.(time.Time))
	}
	return true
}

// AddProgress updates status and progress. Unlike Update it always fans out
// when something changed, since progress is what stakeholders watch.
func (s *ProjectService) AddProgress(ctx context.Context, r authz.Requester, projectId uint, patch ProgressPatch) (*model.Project, error) {
	project, err := s.projects.GetById(ctx, nil, projectId)
	if err != nil {
		return nil, apperror.NotFound("Project not found")
	}

	if err := authz.CanAddProgress(r, project); err != nil {
		return nil, err
	}

	if patch.Progress != nil && (*patch.Progress < 0 || *patch.Progress > 100) {
		return nil, apperror.Validation("Progress must be between 0 and 100")
	}

	changes := map[string]any{}
	if patch.Status != nil && *patch.Status != project.Status {
		changes["status"] = *patch.Status
	}
	if patch.Progress != nil && *patch.Progress != project.Progress {
		changes["progress"] = *patch.Progress
	}

	if len(changes) == 0 {
		return project, nil
	}

	updated, err := s.projects.UpdateFields(ctx, nil, projectId, changes)
	if err != nil {
		return nil, err
	}

	s.fanOut(ctx, updated, "Project Updated",
		fmt.Sprintf("Project %q is now %s at %d%% progress.", updated.Title, updated.Status, updated.Progress),
		constant.NotificationTypeProjectUpdated)

	return updated, nil
}

// DeleteResult reports whether Remove actually deleted a row.
type DeleteResult struct {
	Message string `json:"message"`
	Deleted bool   `json:"deleted"`
}

// Remove deletes the project. Removal is idempotent: an id that no longer
// exists reports Deleted false without an error, and notifications only go
// out when a row was actually removed. File rows cascade with the project,
// so their object keys are collected up front and the stored objects removed
// after the row delete, best-effort.
func (s *ProjectService) Remove(ctx context.Context, r authz.Requester, projectId uint) (DeleteResult, error) {
	project, err := s.projects.GetById(ctx, nil, projectId)
	if err != nil {
		return DeleteResult{Message: "Project already deleted", Deleted: false}, nil
	}

	if err := authz.CanDeleteProject(r, project); err != nil {
		return DeleteResult{}, err
	}

	files, err := s.files.ListByProject(ctx, nil, projectId)
	if err != nil {
		s.logger.Errorf("Failed to list files of project %d before delete, objects may strand: %v", projectId, err)
		files = nil
	}

	rows, err := s.projects.Delete(ctx, nil, projectId)
	if err != nil {
		return DeleteResult{}, err
	}

	if rows == 0 {
		return DeleteResult{Message: "Project already deleted", Deleted: false}, nil
	}

	for _, f := range files {
		if removeErr := s.storage.Remove(ctx, f.FilePath); removeErr != nil {
			s.logger.Errorf("Failed to remove object %s of deleted project %d: %v", f.FilePath, projectId, removeErr)
		}
	}
	if project.RequirementsPdf != nil && *project.RequirementsPdf != "" {
		if removeErr := s.storage.Remove(ctx, *project.RequirementsPdf); removeErr != nil {
			s.logger.Errorf("Failed to remove requirement pdf %s of deleted project %d: %v", *project.RequirementsPdf, projectId, removeErr)
		}
	}

	s.fanOut(ctx, project, "Project Deleted",
		fmt.Sprintf("Project %q has been deleted.", project.Title),
		constant.NotificationTypeProjectDeleted)

	return DeleteResult{Message: "Project deleted", Deleted: true}, nil
}

// GetByID loads a project through the requester's ownership scope. Clients
// and controllers get not-found for projects outside their scope.
func (s *ProjectService) GetByID(ctx context.Context, r authz.Requester, projectId uint) (*model.Project, error) {
	project, err := s.getScoped(ctx, r, projectId)
	if err != nil {
		return nil, apperror.NotFound("Project not found")
	}
	return project, nil
}

// List returns the requester's page of projects. Admins see everything,
// clients their own, controllers their assignments. A storage failure
// degrades to an empty page.
func (s *ProjectService) List(ctx context.Context, r authz.Requester, filter repository.ListFilter) ([]model.Project, int64, error) {
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 || filter.PageSize > constant.MaxPageSize {
		filter.PageSize = constant.DefaultPageSize
	}

	var (
		projects []model.Project
		total    int64
		err      error
	)
	switch {
	case r.IsAdmin():
		projects, total, err = s.projects.ListAll(ctx, nil, filter)
	case r.IsClient():
		projects, total, err = s.projects.ListForClient(ctx, nil, r.ID, filter)
	case r.IsController():
		projects, total, err = s.projects.ListForController(ctx, nil, r.ID, filter)
	default:
		return []model.Project{}, 0, nil
	}

	if err != nil {
		s.logger.Errorf("Failed to list projects for user %d: %v", r.ID, err)
		return []model.Project{}, 0, nil
	}

	return projects, total, nil
}

// FileUpload is the content of an incoming project file.
type FileUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// UploadResult is what the upload endpoints return to the caller.
type UploadResult struct {
	File *model.ProjectFile `json:"file"`
}

// UploadFile stores the object first, then records the metadata row. If the
// row insert fails the stored object is removed on a best-effort basis so the
// bucket does not accumulate orphans.
func (s *ProjectService) UploadFile(ctx context.Context, r authz.Requester, projectId uint, upload FileUpload) (*UploadResult, error) {
	project, err := s.projects.GetById(ctx, nil, projectId)
	if err != nil {
		return nil, apperror.NotFound("Project not found")
	}

	if err := authz.CanUploadProjectFile(r, project); err != nil {
		return nil, err
	}

	if upload.FileName == "" {
		return nil, apperror.Validation("File name is required")
	}

	key, err := s.storage.Upload(ctx, filestorage.GetProjectDirectoryPath(projectId), filestorage.Object{
		FileName:    upload.FileName,
		ContentType: upload.ContentType,
		Size:        upload.Size,
		Reader:      upload.Reader,
	})
	if err != nil {
		return nil, err
	}

	file, err := s.files.Create(ctx, nil, &model.ProjectFile{
		ProjectID:  projectId,
		FileName:   upload.FileName,
		FilePath:   key,
		FileType:   upload.ContentType,
		FileSize:   upload.Size,
		UploadedBy: r.ID,
	})
	if err != nil {
		if removeErr := s.storage.Remove(ctx, key); removeErr != nil {
			s.logger.Errorf("Failed to remove orphaned object %s: %v", key, removeErr)
		}
		return nil, err
	}

	s.fanOut(ctx, project, "Project File Uploaded",
		fmt.Sprintf("A new file %q was uploaded to project %q.", upload.FileName, project.Title),
		constant.NotificationTypeProjectFile)

	return &UploadResult{File: file}, nil
}

// UpdateRequirementPdf replaces the project's requirement document. Only a
// PDF is accepted and the type is checked before anything touches storage.
func (s *ProjectService) UpdateRequirementPdf(ctx context.Context, r authz.Requester, projectId uint, upload FileUpload) (*model.Project, error) {
	project, err := s.projects.GetById(ctx, nil, projectId)
	if err != nil {
		return nil, apperror.NotFound("Project not found")
	}

	if err := authz.CanUploadProjectFile(r, project); err != nil {
		return nil, err
	}

	if upload.ContentType != "application/pdf" {
		return nil, apperror.Validation("Requirement document must be a PDF file")
	}

	if upload.FileName == "" {
		return nil, apperror.Validation("File name is required")
	}

	key, err := s.storage.Upload(ctx, filestorage.GetProjectDirectoryPath(projectId), filestorage.Object{
		FileName:    upload.FileName,
		ContentType: upload.ContentType,
		Size:        upload.Size,
		Reader:      upload.Reader,
	})
	if err != nil {
		return nil, err
	}

	old := project.RequirementsPdf

	updated, err := s.projects.UpdateFields(ctx, nil, projectId, map[string]any{
		"requirements_pdf": key,
	})
	if err != nil {
		if removeErr := s.storage.Remove(ctx, key); removeErr != nil {
			s.logger.Errorf("Failed to remove orphaned object %s: %v", key, removeErr)
		}
		return nil, err
	}

	if old != nil && *old != "" {
		if removeErr := s.storage.Remove(ctx, *old); removeErr != nil {
			s.logger.Errorf("Failed to remove replaced requirement pdf %s: %v", *old, removeErr)
		}
	}

	s.fanOut(ctx, updated, "Project Requirement Updated",
		fmt.Sprintf("The requirement document of project %q has been updated.", updated.Title),
		constant.NotificationTypeProjectRequirement)

	return updated, nil
}

// GetFiles lists the files of a project within the requester's ownership
// scope. A listing failure degrades to an empty slice.
func (s *ProjectService) GetFiles(ctx context.Context, r authz.Requester, projectId uint) ([]model.ProjectFile, error) {
	if _, err := s.getScoped(ctx, r, projectId); err != nil {
		return nil, apperror.NotFound("Project not found")
	}

	files, err := s.files.ListByProject(ctx, nil, projectId)
	if err != nil {
		s.logger.Errorf("Failed to list files of project %d: %v", projectId, err)
		return []model.ProjectFile{}, nil
	}

	return files, nil
}

// GetFilesForController re-validates the controller's assignment before
// listing, for callers that hold a controller id rather than a requester.
func (s *ProjectService) GetFilesForController(ctx context.Context, controllerId, projectId uint) ([]model.ProjectFile, error) {
	return s.GetFiles(ctx, authz.Requester{ID: controllerId, Role: constant.UserRoleController}, projectId)
}

// DeleteFile removes the metadata row first, then the object. A failed object
// removal is logged and not surfaced since the row is already gone.
func (s *ProjectService) DeleteFile(ctx context.Context, r authz.Requester, projectId, fileId uint) error {
	project, err := s.projects.GetById(ctx, nil, projectId)
	if err != nil {
		return apperror.NotFound("Project not found")
	}

	file, err := s.files.GetById(ctx, nil, fileId)
	if err != nil || file.ProjectID != projectId {
		return apperror.NotFound("Project file not found")
	}

	if err := authz.CanDeleteProjectFile(r, project, file); err != nil {
		return err
	}

	rows, err := s.files.Delete(ctx, nil, fileId)
	if err != nil {
		return err
	}

	if rows > 0 {
		if removeErr := s.storage.Remove(ctx, file.FilePath); removeErr != nil {
			s.logger.Errorf("Failed to remove object %s of deleted file %d: %v", file.FilePath, fileId, removeErr)
		}
	}

	return nil
}

// getScoped picks the lookup variant that matches the requester's role so
// out-of-scope projects are indistinguishable from missing ones.
func (s *ProjectService) getScoped(ctx context.Context, r authz.Requester, projectId uint) (*model.Project, error) {
	switch {
	case r.IsAdmin():
		return s.projects.GetById(ctx, nil, projectId)
	case r.IsClient():
		return s.projects.GetByIdForClient(ctx, nil, projectId, r.ID)
	case r.IsController():
		return s.projects.GetByIdForController(ctx, nil, projectId, r.ID)
	}
	return nil, apperror.NotFound("Project not found")
}

// fanOut notifies the three stakeholder groups of a project event. Dispatch
// is best-effort, so a notification failure never fails the operation.
func (s *ProjectService) fanOut(ctx context.Context, p *model.Project, title, message string, ntype constant.NotificationType) {
	s.notifier.Dispatch(ctx, AdminsSpec(), title, message, ntype)
	s.notifier.Dispatch(ctx, UserSpec(p.ClientID), title, message, ntype)
	if p.ControllerID != nil {
		s.notifier.Dispatch(ctx, UserSpec(*p.ControllerID), title, message, ntype)
	}
}
