package constant

// ProjectStatus is intentionally an open string. The values below are the
// conventional lifecycle stages, but the API accepts any string so older
// clients that invented their own stages keep working.
type ProjectStatus = string

const (
	ProjectStatusPending     ProjectStatus = "pending"
	ProjectStatusPlanning    ProjectStatus = "planning"
	ProjectStatusDesigning   ProjectStatus = "designing"
	ProjectStatusDevelopment ProjectStatus = "development"
	ProjectStatusTesting     ProjectStatus = "testing"
	ProjectStatusDelivery    ProjectStatus = "delivery"
	ProjectStatusCompleted   ProjectStatus = "completed"
	ProjectStatusCancelled   ProjectStatus = "cancelled"
)
