package models

type Role string

const (
	RoleTrainer Role = "trainer"
	RoleCompany Role = "company"
)

// Actor is the authenticated caller, threaded explicitly into every
// service operation instead of being looked up from ambient state.
type Actor struct {
	UserID string
	Role   Role
}
