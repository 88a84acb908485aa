package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/docuvault/internal/result"
)

// Role is a user's system-wide role.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is an account holder. Password is an opaque hash; the entity
// never sees a plaintext password.
type User struct {
	ID        uuid.UUID
	Username  string
	Email     Email
	Password  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SerializedUser carries the email as a raw string; reconstruction
// re-parses it and fails if it no longer validates.
type SerializedUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UserPatch struct {
	Username *string
	Password *string
	Role     *Role
}

func (u User) GuardUsername() result.Result[User] {
	if u.Username == "" {
		return result.Err[User](ErrUsernameEmpty)
	}
	return result.Ok(u)
}

func (u User) GuardRole() result.Result[User] {
	if !u.Role.Valid() {
		return result.Err[User](ErrInvalidUserRole)
	}
	return result.Ok(u)
}

func (u User) Guard() result.Result[User] {
	return u.GuardUsername().Then(User.GuardRole)
}

func (u User) Update(patch UserPatch) result.Result[User] {
	next := u
	if patch.Username != nil {
		next.Username = *patch.Username
	}
	if patch.Password != nil {
		next.Password = *patch.Password
	}
	if patch.Role != nil {
		next.Role = *patch.Role
	}
	return next.Guard()
}

func (u User) Serialize() SerializedUser {
	return SerializedUser{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email.String(),
		Password:  u.Password,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserFromSerialized rebuilds the entity including the Email value
// object; an unparseable id or address fails the whole reconstruction.
func UserFromSerialized(s SerializedUser) result.Result[User] {
	id, err := uuid.Parse(s.ID)
	if err != nil {
		return result.Err[User](ErrUserNotFound(s.ID))
	}
	return result.Map(ParseEmail(s.Email), func(email Email) User {
		return User{
			ID:        id,
			Username:  s.Username,
			Email:     email,
			Password:  s.Password,
			Role:      s.Role,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		}
	})
}
