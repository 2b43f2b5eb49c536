package repository

import (
	"context"
	"time"

	constant "github.com/sopheak-dev/agencyflow/internal/constant"
	"github.com/sopheak-dev/agencyflow/internal/model"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	*baseRepository
}

func (pr ProjectRepository) Create(ctx context.Context, tx *gorm.DB, project *model.Project) (*model.Project, error) {
	pr.logger.Debugf("Create project with data: %v \n", project)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.Project{}).Create(project).Error; err != nil {
		return project, err
	}

	return project, nil
}

func (pr ProjectRepository) GetById(ctx context.Context, tx *gorm.DB, projectId uint) (*model.Project, error) {
	pr.logger.Debugf("Get project by id: %d \n", projectId)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var project model.Project
	if err := db.WithContext(ctx).Model(&model.Project{}).
		Preload("Client").Preload("Controller").
		Where("id = ?", projectId).First(&project).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// GetByIdForClient looks the project up by (id, owner) pair so an
// unauthorized client sees not-found instead of forbidden.
func (pr ProjectRepository) GetByIdForClient(ctx context.Context, tx *gorm.DB, projectId, clientId uint) (*model.Project, error) {
	pr.logger.Debugf("Get project %d for client %d \n", projectId, clientId)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var project model.Project
	if err := db.WithContext(ctx).Model(&model.Project{}).
		Preload("Controller").
		Where("id = ? AND client_id = ?", projectId, clientId).First(&project).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

func (pr ProjectRepository) GetByIdForController(ctx context.Context, tx *gorm.DB, projectId, controllerId uint) (*model.Project, error) {
	pr.logger.Debugf("Get project %d for controller %d \n", projectId, controllerId)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var project model.Project
	if err := db.WithContext(ctx).Model(&model.Project{}).
		Preload("Client").
		Where("id = ? AND controller_id = ?", projectId, controllerId).First(&project).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// ListFilter narrows List queries; the ownership column is chosen by the
// caller picking the right query variant, not by post-filtering.
type ListFilter struct {
	Search   string
	Status   []constant.ProjectStatus
	Page     uint
	PageSize uint
}

func (pr ProjectRepository) listQuery(db *gorm.DB, filter ListFilter) *gorm.DB {
	query := db.Model(&model.Project{})

	if len(filter.Status) > 0 {
		query = query.Where("projects.status IN (?)", filter.Status)
	}

	if filter.Search != "" {
		query = query.Where("projects.title ILIKE ?", "%"+filter.Search+"%")
	}

	return query
}

func (pr ProjectRepository) list(ctx context.Context, tx *gorm.DB, filter ListFilter, ownerQuery string, ownerArgs ...any) ([]model.Project, int64, error) {
	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := pr.listQuery(db.WithContext(ctx), filter)
	if ownerQuery != "" {
		query = query.Where(ownerQuery, ownerArgs...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []model.Project
	if err := query.Preload("Client").Preload("Controller").
		Order("projects.created_at DESC").
		Offset(int((filter.Page - 1) * filter.PageSize)).Limit(int(filter.PageSize)).
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func (pr ProjectRepository) ListAll(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]model.Project, int64, error) {
	pr.logger.Debugf("List all projects with filter: %+v \n", filter)

	return pr.list(ctx, tx, filter, "")
}

func (pr ProjectRepository) ListForClient(ctx context.Context, tx *gorm.DB, clientId uint, filter ListFilter) ([]model.Project, int64, error) {
	pr.logger.Debugf("List projects for client %d with filter: %+v \n", clientId, filter)

	return pr.list(ctx, tx, filter, "projects.client_id = ?", clientId)
}

func (pr ProjectRepository) ListForController(ctx context.Context, tx *gorm.DB, controllerId uint, filter ListFilter) ([]model.Project, int64, error) {
	pr.logger.Debugf("List projects for controller %d with filter: %+v \n", controllerId, filter)

	return pr.list(ctx, tx, filter, "projects.controller_id = ?", controllerId)
}

// ListByClient returns every project owned by the client, unpaginated. Used
// by the relationship resolver.
func (pr ProjectRepository) ListByClient(ctx context.Context, tx *gorm.DB, clientId uint) ([]model.Project, error) {
	pr.logger.Debugf("List projects owned by client %d \n", clientId)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var projects []model.Project
	if err := db.WithContext(ctx).Model(&model.Project{}).
		Where("client_id = ?", clientId).Find(&projects).Error; err != nil {
		return nil, err
	}

	return projects, nil
}

// UpdateFields applies a sparse patch and reloads the row inside a single
// transaction so two concurrent updates cannot interleave the read-back.
func (pr ProjectRepository) UpdateFields(ctx context.Context, tx *gorm.DB, projectId uint, fields map[string]any) (*model.Project, error) {
	pr.logger.Debugf("Update project %d fields: %v \n", projectId, fields)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if _, ok := fields["updated_at"]; !ok {
		fields["updated_at"] = time.Now()
	}

	var updated model.Project
	err := pr.withTx(db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Model(&model.Project{}).Where("id = ?", projectId).Updates(fields).Error; err != nil {
			return err
		}

		return tx.Model(&model.Project{}).
			Preload("Client").Preload("Controller").
			Where("id = ?", projectId).First(&updated).Error
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete physically removes the project and reports affected rows so the
// caller can distinguish an already-deleted id without treating it as error.
func (pr ProjectRepository) Delete(ctx context.Context, tx *gorm.DB, projectId uint) (int64, error) {
	pr.logger.Debugf("Delete project with id: %d \n", projectId)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	res := db.WithContext(ctx).Where("id = ?", projectId).Delete(&model.Project{})
	if res.Error != nil {
		return 0, res.Error
	}

	return res.RowsAffected, nil
}
