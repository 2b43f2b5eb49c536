package constant

type UserRole string

const (
	UserRoleAdmin      UserRole = "admin"
	UserRoleController UserRole = "controller"
	UserRoleClient     UserRole = "client"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleController, UserRoleClient:
		return true
	}
	return false
}
