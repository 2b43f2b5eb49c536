package constant

type NotificationType string

const (
	NotificationTypeProjectCreated     NotificationType = "project_created"
	NotificationTypeProjectUpdated     NotificationType = "project_updated"
	NotificationTypeProjectDeleted     NotificationType = "project_deleted"
	NotificationTypeProjectFile        NotificationType = "project_file"
	NotificationTypeProjectRequirement NotificationType = "project_requirement"
	NotificationTypeSystem             NotificationType = "system"
)
