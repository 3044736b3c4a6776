package models

// Role is an account role
type Role string

// Account roles
const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleManager || r == RoleAdmin
}

// User holds the structure for the users collection in mongo. Users are owned by the
// identity service, the dispute service only reads them.
type User struct {
	ID          string `json:"_id" bson:"_id"`
	FullName    string `json:"fullName" bson:"fullName"`
	Email       string `json:"email" bson:"email"`
	PhoneNumber string `json:"phoneNumber" bson:"phoneNumber"`
	NationalID  string `json:"nationalId,omitempty" bson:"nationalId,omitempty"`
	Role        Role   `json:"role" bson:"role"`
	AccountRole Role   `json:"accountRole,omitempty" bson:"accountRole,omitempty"`
	District    string `json:"district,omitempty" bson:"district,omitempty"`
}

// Actor is the authenticated caller of an operation, resolved once per request from
// the signed session. ActualRole is the account's real role; EffectiveRole is the role
// the session currently acts as (a manager may switch to the user view of their own
// account). Authorization and visibility always use EffectiveRole.
type Actor struct {
	ID            string
	Name          string
	Email         string
	ActualRole    Role
	EffectiveRole Role
	District      string
}

// Role returns the role used for authorization
func (a Actor) Role() Role {
	if a.EffectiveRole != "" {
		return a.EffectiveRole
	}
	return a.ActualRole
}
