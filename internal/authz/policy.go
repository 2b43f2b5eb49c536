package authz

import (
	"context"
	"fmt"

	"github.com/sopheak-dev/agencyflow/internal/apperror"
	"github.com/sopheak-dev/agencyflow/internal/constant"
	"github.com/sopheak-dev/agencyflow/internal/model"
)

// Requester is the identity the auth middleware attaches to every call.
type Requester struct {
	ID   uint              `json:"id"`
	Role constant.UserRole `json:"role"`
}

func (r Requester) IsAdmin() bool {
	return r.Role == constant.UserRoleAdmin
}

func (r Requester) IsController() bool {
	return r.Role == constant.UserRoleController
}

func (r Requester) IsClient() bool {
	return r.Role == constant.UserRoleClient
}

// IsControllerOf reports whether the requester is the controller-of-record.
func (r Requester) IsControllerOf(p *model.Project) bool {
	return r.IsController() && p.ControllerID != nil && *p.ControllerID == r.ID
}

func (r Requester) IsClientOf(p *model.Project) bool {
	return r.IsClient() && p.ClientID == r.ID
}

// RelationChecker decides whether a client user is reachable by a controller
// through a shared project assignment. Implemented by service.RelationService.
type RelationChecker interface {
	IsRelated(ctx context.Context, userID, controllerID uint) bool
}

// clientUpdatableFields is the only set of project fields a client may touch.
var clientUpdatableFields = map[string]bool{
	"title":             true,
	"description":       true,
	"amount":            true,
	"amountDescription": true,
}

func CanCreateProject(r Requester) error {
	switch r.Role {
	case constant.UserRoleAdmin, constant.UserRoleController, constant.UserRoleClient:
		return nil
	}
	return apperror.Forbidden("Only admins, controllers and clients can create projects")
}

// ApplyCreateOwnership forces ownership fields so a client cannot create a
// project for someone else and a controller always self-assigns.
func ApplyCreateOwnership(r Requester, p *model.Project) {
	switch r.Role {
	case constant.UserRoleClient:
		p.ClientID = r.ID
	case constant.UserRoleController:
		id := r.ID
		p.ControllerID = &id
	}
}

func CanUpdateProject(r Requester, p *model.Project) error {
	switch {
	case r.IsAdmin():
		return nil
	case r.IsController():
		if !r.IsControllerOf(p) {
			return apperror.Forbidden("Controllers can only update projects assigned to them")
		}
		return nil
	case r.IsClient():
		if !r.IsClientOf(p) {
			return apperror.Forbidden("Clients can only update their own projects")
		}
		return nil
	}
	return apperror.Forbidden("You do not have permission to update this project")
}

// CheckClientFields rejects a client patch that touches anything outside the
// whitelist. All-or-nothing: one disallowed field fails the whole update.
func CheckClientFields(r Requester, fields []string) error {
	if !r.IsClient() {
		return nil
	}
	for _, field := range fields {
		if !clientUpdatableFields[field] {
			return apperror.Forbidden(fmt.Sprintf("Clients cannot update the %s field", field))
		}
	}
	return nil
}

func CanAddProgress(r Requester, p *model.Project) error {
	switch {
	case r.IsAdmin():
		return nil
	case r.IsController():
		if !r.IsControllerOf(p) {
			return apperror.Forbidden("Controllers can only update progress of projects assigned to them")
		}
		return nil
	}
	return apperror.Forbidden("Only admins and the assigned controller can update project progress")
}

func CanDeleteProject(r Requester, p *model.Project) error {
	switch {
	case r.IsAdmin():
		return nil
	case r.IsController():
		if !r.IsControllerOf(p) {
			return apperror.Forbidden("Controllers can only delete projects assigned to them")
		}
		return nil
	}
	return apperror.Forbidden("Clients cannot delete projects")
}

func CanUploadProjectFile(r Requester, p *model.Project) error {
	switch {
	case r.IsAdmin():
		return nil
	case r.IsController():
		if !r.IsControllerOf(p) {
			return apperror.Forbidden("Controllers can only upload files to projects assigned to them")
		}
		return nil
	case r.IsClient():
		if !r.IsClientOf(p) {
			return apperror.Forbidden("Clients can only upload files to their own projects")
		}
		return nil
	}
	return apperror.Forbidden("You do not have permission to upload files to this project")
}

// CanDeleteProjectFile permits the admin, the controller-of-record, or the
// original uploader. A controller who is not assigned to the owning project
// cannot delete its files even if they uploaded nothing else.
func CanDeleteProjectFile(r Requester, p *model.Project, f *model.ProjectFile) error {
	if r.IsAdmin() || r.IsControllerOf(p) || f.UploadedBy == r.ID {
		return nil
	}
	return apperror.Forbidden("Only admins, the assigned controller or the uploader can delete project files")
}

// CanManageNotifications gates consumer-facing notification reads and
// mutations: admin acts on anyone, a controller on themselves or a related
// user, a client only on themselves.
func CanManageNotifications(ctx context.Context, r Requester, targetUserID uint, rel RelationChecker) error {
	switch {
	case r.IsAdmin():
		return nil
	case r.ID == targetUserID:
		return nil
	case r.IsController():
		if rel != nil && rel.IsRelated(ctx, targetUserID, r.ID) {
			return nil
		}
		return apperror.Forbidden("Controllers can only manage notifications of users related to them")
	}
	return apperror.Forbidden("You can only manage your own notifications")
}

func CanSendNotification(r Requester) error {
	switch r.Role {
	case constant.UserRoleAdmin, constant.UserRoleController:
		return nil
	case constant.UserRoleClient:
		return apperror.Forbidden("Clients cannot send notifications")
	}
	return apperror.Forbidden("You do not have permission to send notifications")
}
