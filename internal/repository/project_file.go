package repository

import (
	"context"

	constant "github.com/sopheak-dev/agencyflow/internal/constant"
	"github.com/sopheak-dev/agencyflow/internal/model"
	"gorm.io/gorm"
)

type ProjectFileRepository struct {
	*baseRepository
}

func (pfr ProjectFileRepository) Create(ctx context.Context, tx *gorm.DB, file *model.ProjectFile) (*model.ProjectFile, error) {
	pfr.logger.Debugf("Create project file with data: %v \n", file)

	db := pfr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.ProjectFile{}).Create(file).Error; err != nil {
		return file, err
	}

	return file, nil
}

func (pfr ProjectFileRepository) GetById(ctx context.Context, tx *gorm.DB, fileId uint) (*model.ProjectFile, error) {
	pfr.logger.Debugf("Get project file by id: %d \n", fileId)

	db := pfr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var file model.ProjectFile
	if err := db.WithContext(ctx).Model(&model.ProjectFile{}).Where("id = ?", fileId).First(&file).Error; err != nil {
		return nil, err
	}

	return &file, nil
}

func (pfr ProjectFileRepository) ListByProject(ctx context.Context, tx *gorm.DB, projectId uint) ([]model.ProjectFile, error) {
	pfr.logger.Debugf("List files of project: %d \n", projectId)

	db := pfr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var files []model.ProjectFile
	if err := db.WithContext(ctx).Model(&model.ProjectFile{}).
		Where("project_id = ?", projectId).Order("created_at DESC").Find(&files).Error; err != nil {
		return nil, err
	}

	return files, nil
}

func (pfr ProjectFileRepository) Delete(ctx context.Context, tx *gorm.DB, fileId uint) (int64, error) {
	pfr.logger.Debugf("Delete project file with id: %d \n", fileId)

	db := pfr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	res := db.WithContext(ctx).Where("id = ?", fileId).Delete(&model.ProjectFile{})
	if res.Error != nil {
		return 0, res.Error
	}

	return res.RowsAffected, nil
}
