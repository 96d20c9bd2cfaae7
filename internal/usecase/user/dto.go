package user

// CreateUserRequest represents the request payload for creating a new user.
type CreateUserRequest struct {
	Name  string
	Email string
}

// CreateUserResponse echoes the created user.
type CreateUserResponse struct {
	Name  string
	Email string
}

// UpdateUserRequest identifies the user to update.
type UpdateUserRequest struct {
	ID int64
}

// DeleteUserRequest identifies the user to delete.
type DeleteUserRequest struct {
	ID int64
}

// GetUserRequest identifies the user to retrieve.
type GetUserRequest struct {
	ID int64
}

// GetUserResponse represents the response payload for user details.
type GetUserResponse struct {
	Name  string
	Email string
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users []User
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	Name  string
	Email string
}
