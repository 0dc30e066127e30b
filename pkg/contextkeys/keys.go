package contextkeys

type contextKey string

const (
	// AuthUserKey хранит *dto.AuthUser аутентифицированного пользователя.
	AuthUserKey contextKey = "AuthUser"
)
