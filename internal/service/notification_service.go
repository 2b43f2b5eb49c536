package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sopheak-dev/agencyflow/internal/apperror"
	"github.com/sopheak-dev/agencyflow/internal/authz"
	"github.com/sopheak-dev/agencyflow/internal/cache"
	"github.com/sopheak-dev/agencyflow/internal/constant"
	"github.com/sopheak-dev/agencyflow/internal/mailer"
	"github.com/sopheak-dev/agencyflow/internal/model"
	"go.uber.org/zap"
)

const unreadCountTTL = time.Minute

type RecipientKind int

const (
	// RecipientAdmins fans out to every admin user.
	RecipientAdmins RecipientKind = iota
	// RecipientUser targets a single user id (a client or a controller).
	RecipientUser
	// RecipientBroadcast targets the listed users, or every active user
	// when the list is empty.
	RecipientBroadcast
)

type RecipientSpec struct {
	Kind        RecipientKind
	UserID      uint
	TargetUsers []uint
}

func AdminsSpec() RecipientSpec {
	return RecipientSpec{Kind: RecipientAdmins}
}

func UserSpec(userId uint) RecipientSpec {
	return RecipientSpec{Kind: RecipientUser, UserID: userId}
}

func BroadcastSpec(targetUsers []uint) RecipientSpec {
	return RecipientSpec{Kind: RecipientBroadcast, TargetUsers: targetUsers}
}

// Notifier is what the project lifecycle uses to fan out events.
type Notifier interface {
	Dispatch(ctx context.Context, spec RecipientSpec, title, message string, ntype constant.NotificationType)
}

// NotificationService resolves recipient specs into per-user notification
// rows and owns the consumer-facing notification CRUD.
type NotificationService struct {
	notifications NotificationStore
	users         UserStore
	relation      authz.RelationChecker
	cache         *cache.Client
	mailer        mailer.Client
	logger        *zap.SugaredLogger
}

// NewNotificationService builds the dispatcher. mailClient may be nil to
// disable best-effort email copies.
func NewNotificationService(
	notifications NotificationStore,
	users UserStore,
	relation authz.RelationChecker,
	cacheClient *cache.Client,
	mailClient mailer.Client,
	logger *zap.SugaredLogger,
) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		users:         users,
		relation:      relation,
		cache:         cacheClient,
		mailer:        mailClient,
		logger:        logger,
	}
}

func (s *NotificationService) unreadCacheKey(userId uint) string {
	return fmt.Sprintf("notifications:unread:%d", userId)
}

// Dispatch resolves the recipient spec and delivers one notification per
// recipient. Delivery is best-effort: a failure for one recipient is logged
// and never blocks the others, and nothing propagates to the caller of the
// triggering lifecycle operation.
func (s *NotificationService) Dispatch(ctx context.Context, spec RecipientSpec, title, message string, ntype constant.NotificationType) {
	for _, userId := range s.resolveRecipients(ctx, spec) {
		s.deliverOne(ctx, userId, title, message, ntype)
	}
}

func (s *NotificationService) resolveRecipients(ctx context.Context, spec RecipientSpec) []uint {
	switch spec.Kind {
	case RecipientAdmins:
		admins, err := s.users.GetAdmins(ctx, nil)
		if err != nil {
			s.logger.Errorf("Failed to resolve admin recipients: %v", err)
			return nil
		}
		ids := make([]uint, 0, len(admins))
		for _, admin := range admins {
			ids = append(ids, admin.ID)
		}
		return ids

	case RecipientUser:
		if spec.UserID == 0 {
			s.logger.Error("Notification dispatch skipped: no user id supplied")
			return nil
		}
		return []uint{spec.UserID}

	case RecipientBroadcast:
		if len(spec.TargetUsers) > 0 {
			return spec.TargetUsers
		}
		users, err := s.users.GetActive(ctx, nil)
		if err != nil {
			s.logger.Errorf("Failed to resolve broadcast recipients: %v", err)
			return nil
		}
		ids := make([]uint, 0, len(users))
		for _, user := range users {
			ids = append(ids, user.ID)
		}
		return ids
	}

	return nil
}

func (s *NotificationService) deliverOne(ctx context.Context, userId uint, title, message string, ntype constant.NotificationType) {
	if _, err := s.notifications.Create(ctx, nil, &model.Notification{
		UserID:  userId,
		Title:   title,
		Message: message,
		Type:    ntype,
	}); err != nil {
		s.logger.Errorf("Failed to create notification %q for user %d: %v", title, userId, err)
		return
	}

	s.logger.Infof("Notification %q delivered to user %d", title, userId)
	_ = s.cache.Delete(ctx, s.unreadCacheKey(userId))

	s.emailCopy(ctx, userId, title, message)
}

// emailCopy mails the notification to the recipient when a mailer is wired.
// Failures only cost the email, never the notification row.
func (s *NotificationService) emailCopy(ctx context.Context, userId uint, title, message string) {
	if s.mailer == nil {
		return
	}

	user, err := s.users.GetById(ctx, nil, userId)
	if err != nil {
		s.logger.Errorf("Failed to load user %d for notification email: %v", userId, err)
		return
	}

	data := struct {
		Title    string
		Username string
		Message  string
	}{Title: title, Username: user.FullName(), Message: message}

	if _, err := s.mailer.Send(mailer.NOTIFICATION_TEMPLATE, user.FullName(), user.Email, data); err != nil {
		s.logger.Errorf("Failed to email notification %q to user %d: %v", title, userId, err)
	}
}

// SendToUser is the consumer-facing targeted send. Admins can notify anyone;
// controllers only users related to them; clients cannot send at all.
func (s *NotificationService) SendToUser(ctx context.Context, r authz.Requester, targetUserId uint, title, message string, ntype constant.NotificationType) error {
	if err := authz.CanSendNotification(r); err != nil {
		return err
	}

	if targetUserId == 0 {
		return apperror.Validation("userId is required to send a notification")
	}

	if r.IsController() && targetUserId != r.ID && !s.relation.IsRelated(ctx, targetUserId, r.ID) {
		return apperror.Forbidden("Controllers can only send notifications to users related to them")
	}

	s.Dispatch(ctx, UserSpec(targetUserId), title, message, ntype)
	return nil
}

// Broadcast sends to the listed users, or to every active user when the list
// is empty. Admin only.
func (s *NotificationService) Broadcast(ctx context.Context, r authz.Requester, targetUsers []uint, title, message string, ntype constant.NotificationType) error {
	if err := authz.CanSendNotification(r); err != nil {
		return err
	}

	if !r.IsAdmin() {
		return apperror.Forbidden("Only admins can broadcast notifications")
	}

	s.Dispatch(ctx, BroadcastSpec(targetUsers), title, message, ntype)
	return nil
}

// ListForUser returns a page of the target user's notifications. A storage
// failure degrades to an empty page instead of surfacing to the UI.
func (s *NotificationService) ListForUser(ctx context.Context, r authz.Requester, targetUserId uint, page, pageSize uint) ([]model.Notification, int64, error) {
	if err := authz.CanManageNotifications(ctx, r, targetUserId, s.relation); err != nil {
		return nil, 0, err
	}

	if page == 0 {
		page = 1
	}
	if pageSize == 0 || pageSize > constant.MaxPageSize {
		pageSize = constant.DefaultPageSize
	}

	notifications, total, err := s.notifications.ListByUser(ctx, nil, targetUserId, page, pageSize)
	if err != nil {
		s.logger.Errorf("Failed to list notifications of user %d: %v", targetUserId, err)
		return []model.Notification{}, 0, nil
	}

	return notifications, total, nil
}

// UnreadCount is cached for a minute per user; a storage failure degrades to
// zero.
func (s *NotificationService) UnreadCount(ctx context.Context, r authz.Requester, targetUserId uint) (int64, error) {
	if err := authz.CanManageNotifications(ctx, r, targetUserId, s.relation); err != nil {
		return 0, err
	}

	key := s.unreadCacheKey(targetUserId)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		if cached, err := strconv.ParseInt(string(data), 10, 64); err == nil {
			return cached, nil
		}
	}

	count, err := s.notifications.UnreadCount(ctx, nil, targetUserId)
	if err != nil {
		s.logger.Errorf("Failed to count unread notifications of user %d: %v", targetUserId, err)
		return 0, nil
	}

	_ = s.cache.Set(ctx, key, []byte(strconv.FormatInt(count, 10)), unreadCountTTL)
	return count, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, r authz.Requester, notificationId uint) error {
	notification, err := s.getOwned(ctx, r, notificationId)
	if err != nil {
		return err
	}

	if _, err := s.notifications.MarkAsRead(ctx, nil, notificationId); err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, s.unreadCacheKey(notification.UserID))
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, r authz.Requester, targetUserId uint) error {
	if err := authz.CanManageNotifications(ctx, r, targetUserId, s.relation); err != nil {
		return err
	}

	if err := s.notifications.MarkAllAsRead(ctx, nil, targetUserId); err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, s.unreadCacheKey(targetUserId))
	return nil
}

func (s *NotificationService) Delete(ctx context.Context, r authz.Requester, notificationId uint) error {
	notification, err := s.getOwned(ctx, r, notificationId)
	if err != nil {
		return err
	}

	if _, err := s.notifications.Delete(ctx, nil, notificationId); err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, s.unreadCacheKey(notification.UserID))
	return nil
}

func (s *NotificationService) DeleteAllForUser(ctx context.Context, r authz.Requester, targetUserId uint) error {
	if err := authz.CanManageNotifications(ctx, r, targetUserId, s.relation); err != nil {
		return err
	}

	if err := s.notifications.DeleteAllForUser(ctx, nil, targetUserId); err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, s.unreadCacheKey(targetUserId))
	return nil
}

// PurgeRead removes read notifications older than retention. Used by the
// nightly scheduler.
func (s *NotificationService) PurgeRead(ctx context.Context, retention time.Duration) (int64, error) {
	return s.notifications.DeleteReadBefore(ctx, nil, time.Now().Add(-retention))
}

func (s *NotificationService) getOwned(ctx context.Context, r authz.Requester, notificationId uint) (*model.Notification, error) {
	notification, err := s.notifications.GetById(ctx, nil, notificationId)
	if err != nil {
		return nil, apperror.NotFound("Notification not found")
	}

	if err := authz.CanManageNotifications(ctx, r, notification.UserID, s.relation); err != nil {
		return nil, err
	}

	return notification, nil
}
