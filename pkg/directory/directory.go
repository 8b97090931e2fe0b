package directory

import (
	"context"
	"errors"
)

var ErrUserNotFound = errors.New("directory: user not found")

type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Directory resolves users and their non-virtual group ids.
type Directory interface {
	User(ctx context.Context, id int64) (User, error)
	// Groups returns group ids in ascending order. Unknown users have none.
	Groups(ctx context.Context, userID int64) ([]int64, error)
}
