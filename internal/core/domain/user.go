package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")

// User is a backer account. Immutable after creation; accounts are
// provisioned by the seed tool, not through the API.
//
// Password is the stored secret compared verbatim on login. Plaintext
// comparison is inherited from the seeded data layout; see DESIGN.md.
type User struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Password    string `json:"-"`
	DisplayName string `json:"display_name"`
}
