package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sopheak-dev/agencyflow/internal/constant"
	"github.com/sopheak-dev/agencyflow/internal/util"
)

type NotificationController struct {
	*baseController
}

const ErrNotificationIdRequired = "notification id is required"

// readTargetUserId resolves the optional userId query param, defaulting to
// the requester themselves. Authorization happens in the service layer.
func (nc NotificationController) readTargetUserId(ctx *gin.Context, selfId uint) uint {
	raw := ctx.Query("userId")
	if raw == "" {
		return selfId
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return selfId
	}

	return uint(id)
}

func (nc NotificationController) readNotificationId(ctx *gin.Context) (uint, error) {
	raw := ctx.Param("notificationId")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.New(ErrNotificationIdRequired)
	}

	return uint(id), nil
}

func (nc NotificationController) ListNotifications(ctx *gin.Context) {
	type Request struct {
		Page     uint `form:"page,default=1"`
		PageSize uint `form:"pageSize,default=10"`
	}
	var params Request

	requester, err := nc.getRequester(ctx)
	if err != nil {
		nc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := ctx.ShouldBindQuery(&params); err != nil {
		nc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid query", util.GenerateErrorMessages(err), nil)
		return
	}

	targetUserId := nc.readTargetUserId(ctx, requester.ID)

	notifications, total, err := nc.app.NotificationService.ListForUser(ctx, requester, targetUserId, params.Page, params.PageSize)
	if err != nil {
		util.ResponseError(ctx, "Failed to list notifications", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"notifications": notifications,
		"total":         total,
		"page":          params.Page,
		"totalPage":     util.CalculateTotalPage(total, params.PageSize),
	})
}

func (nc NotificationController) GetUnreadCount(ctx *gin.Context) {
	requester, err := nc.getRequester(ctx)
	if err != nil {
		nc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	targetUserId := nc.readTargetUserId(ctx, requester.ID)

	count, err := nc.app.NotificationService.UnreadCount(ctx, requester, targetUserId)
	if err != nil {
		util.ResponseError(ctx, "Failed to count unread notifications", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"unread": count,
	})
}

func (nc NotificationController) MarkAsRead(ctx *gin.Context) {
	requester, err := nc.getRequester(ctx)
	if err != nil {
		nc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	notificationId, err := nc.readNotificationId(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Notification ID is required", util.GenerateErrorMessages(err, "notificationId"), nil)
		return
	}

	if err := nc.app.NotificationService.MarkAsRead(ctx, requester, notificationId); err != nil {
		util.ResponseError(ctx, "Failed to mark notification as read", err)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

func (nc NotificationController) MarkAllAsRead(ctx *gin.Context) {
	requester, err := nc.getRequester(ctx)
	if err != nil {
		nc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	targetUserId := nc.readTargetUserId(ctx, requester.ID)

	if err := nc.app.NotificationService.MarkAllAsRead(ctx, requester, targetUserId); err != nil {
		util.ResponseError(ctx, "Failed to mark notifications as read", err)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

func (nc NotificationController) DeleteNotification(ctx *gin.Context) {
	requester, err := nc.getRequester(ctx)
	if err != nil {
		nc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	notificationId, err := nc.readNotificationId(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Notification ID is required", util.GenerateErrorMessages(err, "notificationId"), nil)
		return
	}

	if err := nc.app.NotificationService.Delete(ctx, requester, notificationId); err != nil {
		util.ResponseError(ctx, "Failed to delete notification", err)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

func (nc NotificationController) DeleteAllNotifications(ctx *gin.Context) {
	requester, err := nc.getRequester(ctx)
	if err != nil {
		nc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	targetUserId := nc.readTargetUserId(ctx, requester.ID)

	if err := nc.app.NotificationService.DeleteAllForUser(ctx, requester, targetUserId); err != nil {
		util.ResponseError(ctx, "Failed to delete notifications", err)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

func (nc NotificationController) SendNotification(ctx *gin.Context) {
	type Request struct {
		UserID  uint                      `json:"userId" form:"userId" binding:"required"`
		Title   string                    `json:"title" form:"title" binding:"required,strNotEmpty,min=1,max=100"`
		Message string                    `json:"message" form:"message" binding:"required,strNotEmpty"`
		Type    constant.NotificationType `json:"type" form:"type"`
	}
	var body Request

	requester, err := nc.getRequester(ctx)
	if err != nil {
		nc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		nc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	if body.Type == "" {
		body.Type = constant.NotificationTypeSystem
	}

	if err := nc.app.NotificationService.SendToUser(ctx, requester, body.UserID, body.Title, body.Message, body.Type); err != nil {
		util.ResponseError(ctx, "Failed to send notification", err)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

func (nc NotificationController) BroadcastNotification(ctx *gin.Context) {
	type Request struct {
		UserIDs []uint `json:"userIds" form:"userIds"`
		Title   string `json:"title" form:"title" binding:"required,strNotEmpty,min=1,max=100"`
		Message string `json:"message" form:"message" binding:"required,strNotEmpty"`
	}
	var body Request

	requester, err := nc.getRequester(ctx)
	if err != nil {
		nc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		nc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := nc.app.NotificationService.Broadcast(ctx, requester, body.UserIDs, body.Title, body.Message, constant.NotificationTypeSystem); err != nil {
		util.ResponseError(ctx, "Failed to broadcast notification", err)
		return
	}

	util.ResponseSuccess(ctx, nil)
}
