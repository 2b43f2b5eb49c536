package controller

import (
	"encoding/json"
	"errors"
	"fmt"

	appcontext "github.com/sopheak-dev/agencyflow/internal/app_context"
	"github.com/sopheak-dev/agencyflow/internal/auth"
	"github.com/sopheak-dev/agencyflow/internal/authz"
	"github.com/gin-gonic/gin"
)

type baseController struct {
	app *appcontext.Application
}

type Controller struct {
	Index        *IndexController
	Project      *ProjectController
	Notification *NotificationController
}

func newBaseController(app *appcontext.Application) *baseController {
	return &baseController{app: app}
}

func NewController(app *appcontext.Application) *Controller {
	bc := newBaseController(app)

	return &Controller{
		Index:        &IndexController{baseController: bc},
		Project:      &ProjectController{baseController: bc},
		Notification: &NotificationController{baseController: bc},
	}
}

func (b *baseController) getAuthUser(ctx *gin.Context) (*auth.JWTPayload, error) {
	user, exists := ctx.Get("user")
	if !exists {
		return nil, errors.New("user not found in context")
	}

	jsonUser, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}

	var authUser *auth.JWTPayload
	err = json.Unmarshal(jsonUser, &authUser)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return authUser, nil
}

// getRequester converts the authenticated JWT payload into the identity the
// service layer gates on.
func (b *baseController) getRequester(ctx *gin.Context) (authz.Requester, error) {
	user, err := b.getAuthUser(ctx)
	if err != nil {
		return authz.Requester{}, err
	}

	return authz.Requester{ID: user.ID, Role: user.Role}, nil
}
