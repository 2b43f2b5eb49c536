package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sopheak-dev/agencyflow/internal/apperror"
	"github.com/sopheak-dev/agencyflow/internal/authz"
	"github.com/sopheak-dev/agencyflow/internal/constant"
	"github.com/sopheak-dev/agencyflow/internal/model"
	"github.com/sopheak-dev/agencyflow/internal/repository"
)

func repositoryFilter() repository.ListFilter {
	return repository.ListFilter{Page: 1, PageSize: 10}
}

func newProjectService(projects *MockProjectStore, files *MockProjectFileStore, storage *MockObjectStorage, notifier *recordingNotifier) *ProjectService {
	return NewProjectService(projects, files, storage, notifier, zap.NewNop().Sugar())
}

func uintPtr(v uint) *uint { return &v }

func strPtr(v string) *string { return &v }

func intPtr(v int) *int { return &v }

func projectFixture(id, clientId uint, controllerId *uint) *model.Project {
	p := &model.Project{
		Title:        "Website Redesign",
		ClientID:     clientId,
		ControllerID: controllerId,
		Status:       constant.ProjectStatusPlanning,
		Progress:     10,
	}
	p.ID = id
	return p
}

func TestProjectService_Create_ForcesClientOwnership(t *testing.T) {
	mockProjects := new(MockProjectStore)
	notifier := &recordingNotifier{}
	service := newProjectService(mockProjects, new(MockProjectFileStore), new(MockObjectStorage), notifier)

	mockProjects.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.Project")).
		Run(func(args mock.Arguments) {
			p := args.Get(2).(*model.Project)
			p.ID = 1
		}).
		Return(projectFixture(1, 7, nil), nil)

	// Client 7 tries to create a project owned by client 99.
	created, err := service.Create(context.Background(), authz.Requester{ID: 7, Role: constant.UserRoleClient}, ProjectCreate{
		Title:    "Website Redesign",
		ClientID: 99,
	})

	assert.NoError(t, err)
	assert.NotNil(t, created)

	inserted := mockProjects.Calls[0].Arguments.Get(2).(*model.Project)
	assert.Equal(t, uint(7), inserted.ClientID)
	assert.Equal(t, constant.ProjectStatusPending, inserted.Status)
	mockProjects.AssertExpectations(t)
}

func TestProjectService_Create_ControllerSelfAssigns(t *testing.T) {
	mockProjects := new(MockProjectStore)
	notifier := &recordingNotifier{}
	service := newProjectService(mockProjects, new(MockProjectFileStore), new(MockObjectStorage), notifier)

	mockProjects.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.Project")).
		Return(projectFixture(1, 7, uintPtr(3)), nil)

	_, err := service.Create(context.Background(), authz.Requester{ID: 3, Role: constant.UserRoleController}, ProjectCreate{
		Title:        "Website Redesign",
		ClientID:     7,
		ControllerID: uintPtr(42),
	})

	assert.NoError(t, err)
	inserted := mockProjects.Calls[0].Arguments.Get(2).(*model.Project)
	assert.NotNil(t, inserted.ControllerID)
	assert.Equal(t, uint(3), *inserted.ControllerID)
}

func TestProjectService_Create_RequiresClient(t *testing.T) {
	service := newProjectService(new(MockProjectStore), new(MockProjectFileStore), new(MockObjectStorage), &recordingNotifier{})

	_, err := service.Create(context.Background(), authz.Requester{ID: 1, Role: constant.UserRoleAdmin}, ProjectCreate{
		Title: "Website Redesign",
	})

	assert.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestProjectService_Create_FansOutToAllThreeGroups(t *testing.T) {
	mockProjects := new(MockProjectStore)
	notifier := &recordingNotifier{}
	service := newProjectService(mockProjects, new(MockProjectFileStore), new(MockObjectStorage), notifier)

	mockProjects.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.Project")).
		Return(projectFixture(1, 7, uintPtr(3)), nil)

	_, err := service.Create(context.Background(), authz.Requester{ID: 1, Role: constant.UserRoleAdmin}, ProjectCreate{
		Title:        "Website Redesign",
		ClientID:     7,
		ControllerID: uintPtr(3),
	})

	assert.NoError(t, err)
	assert.Len(t, notifier.dispatches, 3)
	assert.Equal(t, RecipientAdmins, notifier.dispatches[0].Spec.Kind)
	assert.Equal(t, UserSpec(7), notifier.dispatches[1].Spec)
	assert.Equal(t, UserSpec(3), notifier.dispatches[2].Spec)
}

func TestProjectService_Update_ClientWhitelist(t *testing.T) {
	tests := []struct {
		name      string
		patch     ProjectPatch
		forbidden bool
	}{
		{
			name:  "allowed fields pass",
			patch: ProjectPatch{Title: strPtr("New Title"), Description: strPtr("desc"), Amount: float64Ptr(100), AmountDescription: strPtr("deposit")},
		},
		{
			name:      "status is rejected",
			patch:     ProjectPatch{Status: strPtr(constant.ProjectStatusCompleted)},
			forbidden: true,
		},
		{
			name:      "one disallowed field fails the whole patch",
			patch:     ProjectPatch{Title: strPtr("New Title"), Progress: intPtr(50)},
			forbidden: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProjects := new(MockProjectStore)
			notifier := &recordingNotifier{}
			service := newProjectService(mockProjects, new(MockProjectFileStore), new(MockObjectStorage), notifier)

			project := projectFixture(1, 7, uintPtr(3))
			mockProjects.On("GetById", mock.Anything, mock.Anything, uint(1)).Return(project, nil)
			if !tt.forbidden {
				mockProjects.On("UpdateFields", mock.Anything, mock.Anything, uint(1), mock.Anything).Return(project, nil)
			}

			_, err := service.Update(context.Background(), authz.Requester{ID: 7, Role: constant.UserRoleClient}, 1, tt.patch)

			if tt.forbidden {
				assert.Error(t, err)
				assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
				mockProjects.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func float64Ptr(v float64) *float64 { return &v }

func TestProjectService_Update_ControllerScopedToAssignment(t *testing.T) {
	mockProjects := new(MockProjectStore)
	service := newProjectService(mockProjects, new(MockProjectFileStore), new(MockObjectStorage), &recordingNotifier{})

	// Project 1 is assigned to controller 3; controller 4 tries to update it.
	mockProjects.On("GetById", mock.Anything, mock.Anything, uint(1)).Return(projectFixture(1, 7, uintPtr(3)), nil)

	_, err := service.Update(context.Background(), authz.Requester{ID: 4, Role: constant.UserRoleController}, 1, ProjectPatch{
		Status: strPtr(constant.ProjectStatusTesting),
	})

	assert.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
}

func TestProjectService_Update_NoopWritesNothingAndNotifiesNoOne(t *testing.T) {
	mockProjects := new(MockProjectStore)
	notifier := &recordingNotifier{}
	service := newProjectService(mockProjects, new(MockProjectFileStore), new(MockObjectStorage), notifier)

	project := projectFixture(1, 7, uintPtr(3))
	mockProjects.On("GetById", mock.Anything, mock.Anything, uint(1)).Return(project, nil)

	// Every supplied value equals the stored one.
	updated, err := service.Update(context.Background(), authz.Requester{ID: 1, Role: constant.UserRoleAdmin}, 1, ProjectPatch{
		Title:    strPtr(project.Title),
		Status:   strPtr(project.Status),
		Progress: intPtr(project.Progress),
	})

	assert.NoError(t, err)
	assert.Equal(t, project, updated)
	assert.Empty(t, notifier.dispatches)
	mockProjects.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectService_Update_NotifiesOnlyOnStatusOrProgressChange(t *testing.T) {
	mockProjects := new(MockProjectStore)
	notifier := &recordingNotifier{}
	service := newProjectService(mockProjects, new(MockProjectFileStore), new(MockObjectStorage), notifier)

	project := projectFixture(1, 7, uintPtr(3))
	mockProjects.On("GetById", mock.Anything, mock.Anything, uint(1)).Return(project, nil)
	mockProjects.On("UpdateFields", mock.Anything, mock.Anything, uint(1), mock.Anything).Return(project, nil)

	_, err := service.Update(context.Background(), authz.Requester{ID: 1, Role: constant.UserRoleAdmin}, 1, ProjectPatch{
		Description: strPtr("Refined scope"),
	})

	assert.NoError(t, err)
	assert.Empty(t, notifier.dispatches)
}

func TestProjectService_AddProgress_FansOut(t *testing.T) {
	mockProjects := new(MockProjectStore)
	notifier := &recordingNotifier{}
	service := newProjectService(mockProjects, new(MockProjectFileStore), new(MockObjectStorage), notifier)

	project := projectFixture(1, 7, uintPtr(3))
	updated := projectFixture(1, 7, uintPtr(3))
	updated.Status = constant.ProjectStatusTesting
	updated.Progress = 80

	mockProjects.On("GetById", mock.Anything, mock.Anything, uint(1)).Return(project, nil)
	mockProjects.On("UpdateFields", mock.Anything, mock.Anything, uint(1), map[string]any{
		"status":   constant.ProjectStatusTesting,
		"progress": 80,
	}).Return(updated, nil)

	result, err := service.AddProgress(context.Background(), authz.Requester{ID: 3, Role: constant.UserRoleController}, 1, ProgressPatch{
		Status:   strPtr(constant.ProjectStatusTesting),
		Progress: intPtr(80),
	})

	assert.NoError(t, err)
	assert.Equal(t, 80, result.Progress)
	assert.Len(t, notifier.dispatches, 3)
	mockProjects.AssertExpectations(t)
}

func TestProjectService_AddProgress_ClientForbidden(t *testing.T) {
	mockProjects := new(MockProjectStore)
	service := newProjectService(mockProjects, new(MockProjectFileStore), new(MockObjectStorage), &recordingNotifier{})

	mockProjects.On("GetById", mock.Anything, mock.Anything, uint(1)).Return(projectFixture(1, 7, uintPtr(3)), nil)

	_, err := service.AddProgress(context.Background(), authz.Requester{ID: 7, Role: constant.UserRoleClient}, 1, ProgressPatch{
		Progress: intPtr(100),
	})

	assert.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
}

func TestProjectService_Update_RejectsOutOfRangeProgress(t *testing.T) {
	mockProjects := new(MockProjectStore)
	service := newProjectService(mockProjects, new(MockProjectFileStore), new(MockObjectStorage), &recordingNotifier{})

	mockProjects.On("GetById", mock.Anything, mock.Anything, uint(1)).Return(projectFixture(1, 7, uintPtr(3)), nil)

	_, err := service.Update(context.Background(), authz.Requester{ID: 1, Role: constant.UserRoleAdmin}, 1, ProjectPatch{
		Progress: intPtr(120),
	})

	assert.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	mockProjects.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectService_AddProgress_RejectsOutOfRange(t *testing.T) {
	mockProjects := new(MockProjectStore)
	service := newProjectService(mockProjects, new(MockProjectFileStore), new(MockObjectStorage), &recordingNotifier{})

	mockProjects.On("GetById", mock.Anything, mock.Anything, uint(1)).Return(projectFixture(1, 7, uintPtr(3)), nil)

	_, err := service.AddProgress(context.Background(), authz.Requester{ID: 1, Role: constant.UserRoleAdmin}, 1, ProgressPatch{
		Progress: intPtr(120),
	})

	assert.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestProjectService_Remove_IsIdempotent(t *testing.T) {
	mockProjects := new(MockProjectStore)
	notifier := &recordingNotifier{}
	service := newProjectService(mockProjects, new(MockProjectFileStore), new(MockObjectStorage), notifier)

	mockProjects.On("GetById", mock.Anything, mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

	result, err := service.Remove(context.Background(), authz.Requester{ID: 1, Role: constant.UserRoleAdmin}, 404)

	assert.NoError(t, err)
	assert.False(t, result.Deleted)
	assert.Empty(t, notifier.dispatches)
}

func TestProjectService_Remove_DeletesAndFansOut(t *testing.T) {
	mockProjects := new(MockProjectStore)
	mockFiles := new(MockProjectFileStore)
	notifier := &recordingNotifier{}
	service := newProjectService(mockProjects, mockFiles, new(MockObjectStorage), notifier)

	mockProjects.On("GetById", mock.Anything, mock.Anything, uint(1)).Return(projectFixture(1, 7, uintPtr(3)), nil)
	mockFiles.On("ListByProject", mock.Anything, mock.Anything, uint(1)).Return([]model.ProjectFile{}, nil)
	mockProjects.On("Delete", mock.Anything, mock.Anything, uint(1)).Return(int64(1), nil)

	result, err := service.Remove(context.Background(), authz.Requester{ID: 3, Role: constant.UserRoleController}, 1)

	assert.NoError(t, err)
	assert.True(t, result.Deleted)
	assert.Len(t, notifier.dispatches, 3)
}

func TestProjectService_Remove_CleansUpStoredObjects(t *testing.T) {
	mockProjects := new(MockProjectStore)
	mockFiles := new(MockProjectFileStore)
	mockStorage := new(MockObjectStorage)
	notifier := &recordingNotifier{}
	service := newProjectService(mockProjects, mockFiles, mockStorage, notifier)

	project := projectFixture(1, 7, uintPtr(3))
	project.RequirementsPdf = strPtr("projects/1/abc-requirements.pdf")

	mockProjects.On("GetById", mock.Anything, mock.Anything, uint(1)).Return(project, nil)
	mockFiles.On("ListByProject", mock.Anything, mock.Anything, uint(1)).Return([]model.ProjectFile{
		{ProjectID: 1, FilePath: "projects/1/abc-spec.docx"},
		{ProjectID: 1, FilePath: "projects/1/def-mockup.png"},
	}, nil)
	mockProjects.On("Delete", mock.Anything, mock.Anything, uint(1)).Return(int64(1), nil)
	mockStorage.On("Remove", mock.Anything, "projects/1/abc-spec.docx").Return(nil)
	mockStorage.On("Remove", mock.Anything, "projects/1/def-mockup.png").Return(nil)
	mockStorage.On("Remove", mock.Anything, "projects/1/abc-requirements.pdf").Return(nil)

	result, err := service.Remove(context.Background(), authz.Requester{ID: 1, Role: constant.UserRoleAdmin}, 1)

	assert.NoError(t, err)
	assert.True(t, result.Deleted)
	assert.Len(t, notifier.dispatches, 3)
	mockStorage.AssertExpectations(t)
}

func TestProjectService_Remove_ObjectCleanupFailureIsNonFatal(t *testing.T) {
	mockProjects := new(MockProjectStore)
	mockFiles := new(MockProjectFileStore)
	mockStorage := new(MockObjectStorage)
	notifier := &recordingNotifier{}
	service := newProjectService(mockProjects, mockFiles, mockStorage, notifier)

	mockProjects.On("GetById", mock.Anything, mock.Anything, uint(1)).Return(projectFixture(1, 7, uintPtr(3)), nil)
	mockFiles.On("ListByProject", mock.Anything, mock.Anything, uint(1)).Return([]model.ProjectFile{
		{ProjectID: 1, FilePath: "projects/1/abc-spec.docx"},
	}, nil)
	mockProjects.On("Delete", mock.Anything, mock.Anything, uint(1)).Return(int64(1), nil)
	mockStorage.On("Remove", mock.Anything, "projects/1/abc-spec.docx").Return(errors.New("connection refused"))

	result, err := service.Remove(context.Background(), authz.Requester{ID: 1, Role: constant.UserRoleAdmin}, 1)

	assert.NoError(t, err)
	assert.True(t, result.Deleted)
	assert.Len(t, notifier.dispatches, 3)
}

func TestProjectService_Remove_ClientForbidden(t *testing.T) {
	mockProjects := new(MockProjectStore)
	service := newProjectService(mockProjects, new(MockProjectFileStore), new(MockObjectStorage), &recordingNotifier{})

	mockProjects.On("GetById", mock.Anything, mock.Anything, uint(1)).Return(projectFixture(1, 7, uintPtr(3)), nil)

	_, err := service.Remove(context.Background(), authz.Requester{ID: 7, Role: constant.UserRoleClient}, 1)

	assert.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
}

func TestProjectService_GetByID_HidesOutOfScopeProjects(t *testing.T) {
	mockProjects := new(MockProjectStore)
	service := newProjectService(mockProjects, new(MockProjectFileStore), new(MockObjectStorage), &recordingNotifier{})

	// The scoped lookup misses because the project belongs to someone else.
	mockProjects.On("GetByIdForClient", mock.Anything, mock.Anything, uint(1), uint(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.GetByID(context.Background(), authz.Requester{ID: 99, Role: constant.UserRoleClient}, 1)

	assert.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestProjectService_List_DegradesToEmptyOnStorageFailure(t *testing.T) {
	mockProjects := new(MockProjectStore)
	service := newProjectService(mockProjects, new(MockProjectFileStore), new(MockObjectStorage), &recordingNotifier{})

	mockProjects.On("ListForController", mock.Anything, mock.Anything, uint(3), mock.Anything).
		Return(nil, int64(0), errors.New("connection refused"))

	projects, total, err := service.List(context.Background(), authz.Requester{ID: 3, Role: constant.UserRoleController}, repositoryFilter())

	assert.NoError(t, err)
	assert.Empty(t, projects)
	assert.Zero(t, total)
}

func TestProjectService_UploadFile_CleansUpOrphanOnRowFailure(t *testing.T) {
	mockProjects := new(MockProjectStore)
	mockFiles := new(MockProjectFileStore)
	mockStorage := new(MockObjectStorage)
	notifier := &recordingNotifier{}
	service := newProjectService(mockProjects, mockFiles, mockStorage, notifier)

	mockProjects.On("GetById", mock.Anything, mock.Anything, uint(1)).Return(projectFixture(1, 7, uintPtr(3)), nil)
	mockStorage.On("Upload", mock.Anything, "projects/1", mock.Anything).Return("projects/1/abc-spec.docx", nil)
	mockFiles.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.ProjectFile")).
		Return(nil, errors.New("insert failed"))
	mockStorage.On("Remove", mock.Anything, "projects/1/abc-spec.docx").Return(nil)

	_, err := service.UploadFile(context.Background(), authz.Requester{ID: 1, Role: constant.UserRoleAdmin}, 1, FileUpload{
		FileName:    "spec.docx",
		ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Size:        1024,
		Reader:      strings.NewReader("content"),
	})

	assert.Error(t, err)
	assert.Empty(t, notifier.dispatches)
	mockStorage.AssertExpectations(t)
}

func TestProjectService_UploadFile_FansOut(t *testing.T) {
	mockProjects := new(MockProjectStore)
	mockFiles := new(MockProjectFileStore)
	mockStorage := new(MockObjectStorage)
	notifier := &recordingNotifier{}
	service := newProjectService(mockProjects, mockFiles, mockStorage, notifier)

	mockProjects.On("GetById", mock.Anything, mock.Anything, uint(1)).Return(projectFixture(1, 7, uintPtr(3)), nil)
	mockStorage.On("Upload", mock.Anything, "projects/1", mock.Anything).Return("projects/1/abc-spec.docx", nil)
	mockFiles.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.ProjectFile")).
		Return(&model.ProjectFile{ProjectID: 1, FileName: "spec.docx"}, nil)

	result, err := service.UploadFile(context.Background(), authz.Requester{ID: 7, Role: constant.UserRoleClient}, 1, FileUpload{
		FileName:    "spec.docx",
		ContentType: "application/octet-stream",
		Size:        1024,
		Reader:      strings.NewReader("content"),
	})

	assert.NoError(t, err)
	assert.NotNil(t, result.File)
	assert.Len(t, notifier.dispatches, 3)
}

func TestProjectService_UpdateRequirementPdf_RejectsNonPdfBeforeStorage(t *testing.T) {
	mockProjects := new(MockProjectStore)
	mockStorage := new(MockObjectStorage)
	service := newProjectService(mockProjects, new(MockProjectFileStore), mockStorage, &recordingNotifier{})

	mockProjects.On("GetById", mock.Anything, mock.Anything, uint(1)).Return(projectFixture(1, 7, uintPtr(3)), nil)

	_, err := service.UpdateRequirementPdf(context.Background(), authz.Requester{ID: 1, Role: constant.UserRoleAdmin}, 1, FileUpload{
		FileName:    "requirements.docx",
		ContentType: "application/msword",
		Size:        1024,
		Reader:      strings.NewReader("content"),
	})

	assert.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	mockStorage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectService_UpdateRequirementPdf_ReplacesOldObject(t *testing.T) {
	mockProjects := new(MockProjectStore)
	mockStorage := new(MockObjectStorage)
	notifier := &recordingNotifier{}
	service := newProjectService(mockProjects, new(MockProjectFileStore), mockStorage, notifier)

	project := projectFixture(1, 7, uintPtr(3))
	project.RequirementsPdf = strPtr("projects/1/old-requirements.pdf")
	updated := projectFixture(1, 7, uintPtr(3))
	updated.RequirementsPdf = strPtr("projects/1/new-requirements.pdf")

	mockProjects.On("GetById", mock.Anything, mock.Anything, uint(1)).Return(project, nil)
	mockStorage.On("Upload", mock.Anything, "projects/1", mock.Anything).Return("projects/1/new-requirements.pdf", nil)
	mockProjects.On("UpdateFields", mock.Anything, mock.Anything, uint(1), map[string]any{
		"requirements_pdf": "projects/1/new-requirements.pdf",
	}).Return(updated, nil)
	mockStorage.On("Remove", mock.Anything, "projects/1/old-requirements.pdf").Return(nil)

	result, err := service.UpdateRequirementPdf(context.Background(), authz.Requester{ID: 3, Role: constant.UserRoleController}, 1, FileUpload{
		FileName:    "requirements.pdf",
		ContentType: "application/pdf",
		Size:        2048,
		Reader:      strings.NewReader("%PDF-1.7"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "projects/1/new-requirements.pdf", *result.RequirementsPdf)
	assert.Len(t, notifier.dispatches, 3)
	mockStorage.AssertExpectations(t)
}

func TestProjectService_GetFiles_DegradesToEmptyOnListFailure(t *testing.T) {
	mockProjects := new(MockProjectStore)
	mockFiles := new(MockProjectFileStore)
	service := newProjectService(mockProjects, mockFiles, new(MockObjectStorage), &recordingNotifier{})

	mockProjects.On("GetById", mock.Anything, mock.Anything, uint(1)).Return(projectFixture(1, 7, uintPtr(3)), nil)
	mockFiles.On("ListByProject", mock.Anything, mock.Anything, uint(1)).Return(nil, errors.New("connection refused"))

	files, err := service.GetFiles(context.Background(), authz.Requester{ID: 1, Role: constant.UserRoleAdmin}, 1)

	assert.NoError(t, err)
	assert.Empty(t, files)
}

func TestProjectService_DeleteFile_AuthzMatrix(t *testing.T) {
	tests := []struct {
		name      string
		requester authz.Requester
		forbidden bool
	}{
		{name: "admin can delete", requester: authz.Requester{ID: 1, Role: constant.UserRoleAdmin}},
		{name: "assigned controller can delete", requester: authz.Requester{ID: 3, Role: constant.UserRoleController}},
		{name: "uploader can delete", requester: authz.Requester{ID: 7, Role: constant.UserRoleClient}},
		{name: "unrelated controller cannot", requester: authz.Requester{ID: 4, Role: constant.UserRoleController}, forbidden: true},
		{name: "other client cannot", requester: authz.Requester{ID: 8, Role: constant.UserRoleClient}, forbidden: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProjects := new(MockProjectStore)
			mockFiles := new(MockProjectFileStore)
			mockStorage := new(MockObjectStorage)
			service := newProjectService(mockProjects, mockFiles, mockStorage, &recordingNotifier{})

			file := &model.ProjectFile{ProjectID: 1, FilePath: "projects/1/abc-spec.pdf", UploadedBy: 7}
			file.ID = 5

			mockProjects.On("GetById", mock.Anything, mock.Anything, uint(1)).Return(projectFixture(1, 7, uintPtr(3)), nil)
			mockFiles.On("GetById", mock.Anything, mock.Anything, uint(5)).Return(file, nil)
			if !tt.forbidden {
				mockFiles.On("Delete", mock.Anything, mock.Anything, uint(5)).Return(int64(1), nil)
				mockStorage.On("Remove", mock.Anything, "projects/1/abc-spec.pdf").Return(nil)
			}

			err := service.DeleteFile(context.Background(), tt.requester, 1, 5)

			if tt.forbidden {
				assert.Error(t, err)
				assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProjectService_DeleteFile_RejectsFileFromAnotherProject(t *testing.T) {
	mockProjects := new(MockProjectStore)
	mockFiles := new(MockProjectFileStore)
	service := newProjectService(mockProjects, mockFiles, new(MockObjectStorage), &recordingNotifier{})

	file := &model.ProjectFile{ProjectID: 2, FilePath: "projects/2/abc.pdf", UploadedBy: 7}
	file.ID = 5

	mockProjects.On("GetById", mock.Anything, mock.Anything, uint(1)).Return(projectFixture(1, 7, uintPtr(3)), nil)
	mockFiles.On("GetById", mock.Anything, mock.Anything, uint(5)).Return(file, nil)

	err := service.DeleteFile(context.Background(), authz.Requester{ID: 1, Role: constant.UserRoleAdmin}, 1, 5)

	assert.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
