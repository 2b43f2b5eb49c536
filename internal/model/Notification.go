package model

import "github.com/sopheak-dev/agencyflow/internal/constant"

type Notification struct {
	BaseModel
	UserID uint  `gorm:"not null;index" json:"userId" form:"userId"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-" form:"-"`

	Title   string                    `gorm:"type:varchar(255);not null" json:"title" form:"title"`
	Message string                    `gorm:"type:text;not null" json:"message" form:"message"`
	Type    constant.NotificationType `gorm:"type:varchar(50);not null;default:'system'" json:"type" form:"type"`
	IsRead  bool                      `gorm:"type:boolean;not null;default:false" json:"isRead" form:"isRead"`
}

func (n Notification) TableName() string {
	return "notifications"
}
