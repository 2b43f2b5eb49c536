package model

import (
	"time"

	"github.com/sopheak-dev/agencyflow/internal/constant"
)

type Project struct {
	BaseModel
	Title       string `gorm:"type:varchar(100);not null;" json:"title" form:"title" binding:"required"`
	Description string `gorm:"type:text" json:"description" form:"description"`
	ServiceID   *uint  `gorm:"type:bigint" json:"serviceId" form:"serviceId"`

	// ClientID is the owning client and never changes after creation.
	ClientID uint  `gorm:"not null" json:"clientId" form:"clientId"`
	Client   *User `json:"client,omitempty" form:"-"`

	// ControllerID is the controller-of-record; nullable until assignment.
	ControllerID *uint `json:"controllerId" form:"controllerId"`
	Controller   *User `json:"controller,omitempty" form:"-"`

	Status            constant.ProjectStatus `gorm:"type:varchar(50);not null;default:'pending'" json:"status" form:"status"`
	Progress          int                    `gorm:"type:int;not null;default:0" json:"progress" form:"progress"`
	Amount            *float64               `gorm:"type:numeric" json:"amount" form:"amount"`
	AmountDescription *string                `gorm:"type:text" json:"amountDescription" form:"amountDescription"`
	RequirementsPdf   *string                `gorm:"type:text" json:"requirementsPdf" form:"requirementsPdf"`
	StartDate         *time.Time             `gorm:"type:timestamptz" json:"startDate" form:"startDate"`
	EndDate           *time.Time             `gorm:"type:timestamptz" json:"endDate" form:"endDate"`
}

func (p Project) TableName() string {
	return "projects"
}
