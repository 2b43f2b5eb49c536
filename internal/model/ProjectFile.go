package model

type ProjectFile struct {
	BaseModel
	ProjectID uint     `gorm:"not null;index" json:"projectId" form:"projectId"`
	Project   *Project `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-" form:"-"`

	FileName string `gorm:"type:text;not null" json:"fileName" form:"fileName" binding:"required"`
	// FilePath is the object key inside the bucket, unique per upload.
	FilePath string `gorm:"type:text;not null;uniqueIndex" json:"filePath" form:"filePath"`
	FileType string `gorm:"type:varchar(255)" json:"fileType" form:"fileType"`
	FileSize int64  `gorm:"type:bigint;not null" json:"fileSize" form:"fileSize"`

	UploadedBy uint `gorm:"not null" json:"uploadedBy" form:"uploadedBy"`
}

func (pf ProjectFile) TableName() string {
	return "project_files"
}
