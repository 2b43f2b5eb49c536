package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/sopheak-dev/agencyflow/internal/constant"
	filestorage "github.com/sopheak-dev/agencyflow/internal/file_storage"
	"github.com/sopheak-dev/agencyflow/internal/model"
	"github.com/sopheak-dev/agencyflow/internal/repository"
)

// MockProjectStore is a mock implementation of ProjectStore.
type MockProjectStore struct {
	mock.Mock
}

func (m *MockProjectStore) Create(ctx context.Context, tx *gorm.DB, project *model.Project) (*model.Project, error) {
	args := m.Called(ctx, tx, project)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectStore) GetById(ctx context.Context, tx *gorm.DB, projectId uint) (*model.Project, error) {
	args := m.Called(ctx, tx, projectId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectStore) GetByIdForClient(ctx context.Context, tx *gorm.DB, projectId, clientId uint) (*model.Project, error) {
	args := m.Called(ctx, tx, projectId, clientId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectStore) GetByIdForController(ctx context.Context, tx *gorm.DB, projectId, controllerId uint) (*model.Project, error) {
	args := m.Called(ctx, tx, projectId, controllerId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectStore) ListAll(ctx context.Context, tx *gorm.DB, filter repository.ListFilter) ([]model.Project, int64, error) {
	args := m.Called(ctx, tx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Project), args.Get(1).(int64), args.Error(2)
}

func (m *MockProjectStore) ListForClient(ctx context.Context, tx *gorm.DB, clientId uint, filter repository.ListFilter) ([]model.Project, int64, error) {
	args := m.Called(ctx, tx, clientId, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Project), args.Get(1).(int64), args.Error(2)
}

func (m *MockProjectStore) ListForController(ctx context.Context, tx *gorm.DB, controllerId uint, filter repository.ListFilter) ([]model.Project, int64, error) {
	args := m.Called(ctx, tx, controllerId, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Project), args.Get(1).(int64), args.Error(2)
}

func (m *MockProjectStore) ListByClient(ctx context.Context, tx *gorm.DB, clientId uint) ([]model.Project, error) {
	args := m.Called(ctx, tx, clientId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectStore) UpdateFields(ctx context.Context, tx *gorm.DB, projectId uint, fields map[string]any) (*model.Project, error) {
	args := m.Called(ctx, tx, projectId, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectStore) Delete(ctx context.Context, tx *gorm.DB, projectId uint) (int64, error) {
	args := m.Called(ctx, tx, projectId)
	return args.Get(0).(int64), args.Error(1)
}

// MockProjectFileStore is a mock implementation of ProjectFileStore.
type MockProjectFileStore struct {
	mock.Mock
}

func (m *MockProjectFileStore) Create(ctx context.Context, tx *gorm.DB, file *model.ProjectFile) (*model.ProjectFile, error) {
	args := m.Called(ctx, tx, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectFile), args.Error(1)
}

func (m *MockProjectFileStore) GetById(ctx context.Context, tx *gorm.DB, fileId uint) (*model.ProjectFile, error) {
	args := m.Called(ctx, tx, fileId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectFile), args.Error(1)
}

func (m *MockProjectFileStore) ListByProject(ctx context.Context, tx *gorm.DB, projectId uint) ([]model.ProjectFile, error) {
	args := m.Called(ctx, tx, projectId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProjectFile), args.Error(1)
}

func (m *MockProjectFileStore) Delete(ctx context.Context, tx *gorm.DB, fileId uint) (int64, error) {
	args := m.Called(ctx, tx, fileId)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserStore is a mock implementation of UserStore.
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetById(ctx context.Context, tx *gorm.DB, userId uint) (*model.User, error) {
	args := m.Called(ctx, tx, userId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserStore) GetAdmins(ctx context.Context, tx *gorm.DB) ([]model.User, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserStore) GetActive(ctx context.Context, tx *gorm.DB) ([]model.User, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockNotificationStore is a mock implementation of NotificationStore.
type MockNotificationStore struct {
	mock.Mock
}

func (m *MockNotificationStore) Create(ctx context.Context, tx *gorm.DB, notification *model.Notification) (*model.Notification, error) {
	args := m.Called(ctx, tx, notification)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationStore) GetById(ctx context.Context, tx *gorm.DB, notificationId uint) (*model.Notification, error) {
	args := m.Called(ctx, tx, notificationId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationStore) ListByUser(ctx context.Context, tx *gorm.DB, userId uint, page, pageSize uint) ([]model.Notification, int64, error) {
	args := m.Called(ctx, tx, userId, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationStore) UnreadCount(ctx context.Context, tx *gorm.DB, userId uint) (int64, error) {
	args := m.Called(ctx, tx, userId)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationStore) MarkAsRead(ctx context.Context, tx *gorm.DB, notificationId uint) (int64, error) {
	args := m.Called(ctx, tx, notificationId)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationStore) MarkAllAsRead(ctx context.Context, tx *gorm.DB, userId uint) error {
	args := m.Called(ctx, tx, userId)
	return args.Error(0)
}

func (m *MockNotificationStore) Delete(ctx context.Context, tx *gorm.DB, notificationId uint) (int64, error) {
	args := m.Called(ctx, tx, notificationId)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationStore) DeleteAllForUser(ctx context.Context, tx *gorm.DB, userId uint) error {
	args := m.Called(ctx, tx, userId)
	return args.Error(0)
}

func (m *MockNotificationStore) DeleteReadBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, tx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockObjectStorage is a mock implementation of ObjectStorage.
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, directory string, obj filestorage.Object) (string, error) {
	args := m.Called(ctx, directory, obj)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStorage) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockRelationChecker is a mock implementation of authz.RelationChecker.
type MockRelationChecker struct {
	mock.Mock
}

func (m *MockRelationChecker) IsRelated(ctx context.Context, userID, controllerID uint) bool {
	args := m.Called(ctx, userID, controllerID)
	return args.Bool(0)
}

// recordedDispatch is one fan-out call captured by recordingNotifier.
type recordedDispatch struct {
	Spec    RecipientSpec
	Title   string
	Message string
	Type    constant.NotificationType
}

// recordingNotifier captures every Dispatch so tests can assert on the
// fan-out without a real dispatcher.
type recordingNotifier struct {
	dispatches []recordedDispatch
}

func (n *recordingNotifier) Dispatch(ctx context.Context, spec RecipientSpec, title, message string, ntype constant.NotificationType) {
	n.dispatches = append(n.dispatches, recordedDispatch{Spec: spec, Title: title, Message: message, Type: ntype})
}

func (n *recordingNotifier) recipients() []RecipientSpec {
	specs := make([]RecipientSpec, 0, len(n.dispatches))
	for _, d := range n.dispatches {
		specs = append(specs, d.Spec)
	}
	return specs
}
