package model

// Role values stored on a user.  RoleAdmin grants access to catalog
// mutations; everything else is treated as a regular user.
const (
	RoleAdmin = "administrator"
	RoleUser  = "user"
)

// User represents an account in the `usuarios` collection.
//
// Password holds the bcrypt hash, never plaintext.  The `json:"-"` tag
// keeps the hash out of every response payload; handlers that need a
// user summary serialize the struct directly and rely on this.
//
// Fields:
//  ID       – unique numeric identifier (usuarios._id).
//  Name     – display name.
//  Email    – lowercased, trimmed email address.
//  Password – bcrypt hash of the password.
//  Role     – RoleAdmin or RoleUser.
type User struct {
	ID       int64  `json:"id" bson:"_id"`
	Name     string `json:"name" bson:"name"`
	Email    string `json:"email" bson:"email"`
	Password string `json:"-" bson:"password"`
	Role     string `json:"role" bson:"role"`
}

// NormalizeRole maps an arbitrary role string onto one of the two known
// role values, defaulting to RoleUser.
func NormalizeRole(role string) string {
	if role == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}
