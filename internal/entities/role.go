package entities

// Role - роль пользователя. Хранится строкой в колонке users.role.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleManager    Role = "MANAGER"
	RoleTechnician Role = "TECHNICIAN"
	RoleUser       Role = "USER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleTechnician, RoleUser:
		return true
	}
	return false
}

// AllowedAtRegistration - ADMIN и MANAGER при самостоятельной регистрации
// недоступны, такие роли назначает только администратор.
func (r Role) AllowedAtRegistration() bool {
	return r == RoleUser || r == RoleTechnician
}
