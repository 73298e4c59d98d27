package session

// Storage keys for the persisted credential trio. The three values are
// always written or cleared as a unit; no partial session survives a
// lifecycle operation.
const (
	KeyAccessToken  = "admin_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "admin_user"
)

// User is the administrator profile returned by the backend on login and
// persisted alongside the tokens.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
	LastLogin string `json:"lastLogin,omitempty"`
}
