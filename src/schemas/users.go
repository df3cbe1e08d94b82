package schemas

import (
	"encoding/json"
	"time"
)

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

// UpdateUserRequest changes one field of a user. NewValue is a JSON string or
// number.
type UpdateUserRequest struct {
	Param    string          `json:"param"`
	NewValue json.RawMessage `json:"new_value"`
}

type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"created_at"`
}
