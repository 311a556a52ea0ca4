package entities

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Profile is one employee record. UserID is the lowercase email and is the
// identity every other context refers to.
type Profile struct {
	UserID    string
	Name      string
	Phone     string
	Role      Role
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func IsSupportedRole(value Role) bool {
	switch value {
	case RoleAdmin, RoleEmployee:
		return true
	default:
		return false
	}
}

func NormalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// NormalizePhone keeps digits only; the original form accepts free-format
// numbers.
func NormalizePhone(value string) string {
	var digits strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return digits.String()
}

func (p Profile) Validate() bool {
	return NormalizeEmail(p.UserID) != "" &&
		strings.Contains(p.UserID, "@") &&
		strings.TrimSpace(p.Name) != "" &&
		IsSupportedRole(p.Role)
}
