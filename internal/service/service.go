package service

import (
	"context"
	"time"

	"github.com/sopheak-dev/agencyflow/internal/model"
	"github.com/sopheak-dev/agencyflow/internal/repository"
	"gorm.io/gorm"
)

// The service layer talks to storage through narrow interfaces so the
// lifecycle and dispatch logic can be exercised without a database. The
// gorm-backed repositories in internal/repository satisfy them.

type ProjectStore interface {
	Create(ctx context.Context, tx *gorm.DB, project *model.Project) (*model.Project, error)
	GetById(ctx context.Context, tx *gorm.DB, projectId uint) (*model.Project, error)
	GetByIdForClient(ctx context.Context, tx *gorm.DB, projectId, clientId uint) (*model.Project, error)
	GetByIdForController(ctx context.Context, tx *gorm.DB, projectId, controllerId uint) (*model.Project, error)
	ListAll(ctx context.Context, tx *gorm.DB, filter repository.ListFilter) ([]model.Project, int64, error)
	ListForClient(ctx context.Context, tx *gorm.DB, clientId uint, filter repository.ListFilter) ([]model.Project, int64, error)
	ListForController(ctx context.Context, tx *gorm.DB, controllerId uint, filter repository.ListFilter) ([]model.Project, int64, error)
	ListByClient(ctx context.Context, tx *gorm.DB, clientId uint) ([]model.Project, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, projectId uint, fields map[string]any) (*model.Project, error)
	Delete(ctx context.Context, tx *gorm.DB, projectId uint) (int64, error)
}

type ProjectFileStore interface {
	Create(ctx context.Context, tx *gorm.DB, file *model.ProjectFile) (*model.ProjectFile, error)
	GetById(ctx context.Context, tx *gorm.DB, fileId uint) (*model.ProjectFile, error)
	ListByProject(ctx context.Context, tx *gorm.DB, projectId uint) ([]model.ProjectFile, error)
	Delete(ctx context.Context, tx *gorm.DB, fileId uint) (int64, error)
}

type UserStore interface {
	GetById(ctx context.Context, tx *gorm.DB, userId uint) (*model.User, error)
	GetAdmins(ctx context.Context, tx *gorm.DB) ([]model.User, error)
	GetActive(ctx context.Context, tx *gorm.DB) ([]model.User, error)
}

type NotificationStore interface {
	Create(ctx context.Context, tx *gorm.DB, notification *model.Notification) (*model.Notification, error)
	GetById(ctx context.Context, tx *gorm.DB, notificationId uint) (*model.Notification, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userId uint, page, pageSize uint) ([]model.Notification, int64, error)
	UnreadCount(ctx context.Context, tx *gorm.DB, userId uint) (int64, error)
	MarkAsRead(ctx context.Context, tx *gorm.DB, notificationId uint) (int64, error)
	MarkAllAsRead(ctx context.Context, tx *gorm.DB, userId uint) error
	Delete(ctx context.Context, tx *gorm.DB, notificationId uint) (int64, error)
	DeleteAllForUser(ctx context.Context, tx *gorm.DB, userId uint) error
	DeleteReadBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}
