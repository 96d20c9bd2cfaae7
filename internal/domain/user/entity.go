package user

// User represents a user entity in the system.
// Identity is not part of the entity; it travels as the {id} path parameter.
type User struct {
	Name  string // Name is the full name of the user
	Email string // Email is the email address of the user
}

// Placeholder is the user returned by lookups until a real store exists.
func Placeholder() User {
	return User{Name: "foo", Email: "foo@bar.xyz"}
}
