package model

import "github.com/sopheak-dev/agencyflow/internal/constant"

type User struct {
	BaseModel
	Email     string            `gorm:"unique;not null;type:citext" json:"email" form:"email" binding:"required"`
	FirstName string            `gorm:"type:varchar(30);not null;" json:"firstName" form:"firstName" binding:"required"`
	LastName  string            `gorm:"type:varchar(30);not null;" json:"lastName" form:"lastName" binding:"required"`
	Role      constant.UserRole `gorm:"type:varchar(20);not null;default:'client'" json:"role" form:"role"`
	IsActive  bool              `gorm:"type:boolean;not null;default:true" json:"isActive" form:"isActive"`
}

func (u User) TableName() string {
	return "users"
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
