package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/docuvault/internal/auth"
	"github.com/lalith-99/docuvault/internal/domain"
	"github.com/lalith-99/docuvault/internal/repository"
	"github.com/lalith-99/docuvault/internal/result"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repos    repository.Repositories
	tx       repository.Transactor
	secret   string
	tokenTTL time.Duration
	logger   *zap.Logger
}

func NewUserService(repos repository.Repositories, tx repository.Transactor, secret string, tokenTTL time.Duration, logger *zap.Logger) *UserService {
	return &UserService{repos: repos, tx: tx, secret: secret, tokenTTL: tokenTTL, logger: logger}
}

type RegisterUserInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

type Token struct {
	Token string `json:"token"`
}

// RegisterUser hashes the password, constructs the entity (the email
// value object validates here), guards, and inserts.
func (s *UserService) RegisterUser(ctx context.Context, in RegisterUserInput) result.Result[domain.SerializedUser] {
	s.logger.Info("registering user", zap.String("username", in.Username))

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return result.Err[domain.SerializedUser](err)
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}

	created := domain.NewUser(in.Username, in.Email, string(hash), role).
		Then(domain.User.Guard)

	registered := result.AndThen(created, func(user domain.User) result.Result[domain.User] {
		return s.repos.Users.Insert(ctx, user)
	})
	return result.Map(registered, domain.User.Serialize)
}

// LoginUser verifies credentials and issues an identity token carrying
// id, username and role. A missing user and a wrong password both
// report IncorrectCredentials, so the caller cannot tell which.
func (s *UserService) LoginUser(ctx context.Context, username, password string) result.Result[Token] {
	s.logger.Info("logging in user", zap.String("username", username))

	fetched := s.repos.Users.FetchByUsername(ctx, username)
	if fetched.IsErr() {
		if domain.IsKind(fetched.Error(), domain.KindNotFound) {
			return result.Err[Token](domain.ErrIncorrectCredentials)
		}
		return result.Err[Token](fetched.Error())
	}

	user := fetched.Value()
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return result.Err[Token](domain.ErrIncorrectCredentials)
	}

	signed, err := auth.GenerateToken(user, s.secret, s.tokenTTL)
	if err != nil {
		return result.Err[Token](err)
	}
	return result.Ok(Token{Token: signed})
}

type UpdateUserInput struct {
	ID       uuid.UUID
	Username *string
	Password *string
	Role     *domain.Role
}

func (s *UserService) UpdateUser(ctx context.Context, in UpdateUserInput) result.Result[domain.SerializedUser] {
	patch := domain.UserPatch{Username: in.Username, Role: in.Role}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return result.Err[domain.SerializedUser](err)
		}
		hashed := string(hash)
		patch.Password = &hashed
	}

	updated := result.AndThen(s.repos.Users.FetchByID(ctx, in.ID), func(user domain.User) result.Result[domain.User] {
		return user.Update(patch)
	})
	persisted := result.AndThen(updated, func(user domain.User) result.Result[domain.User] {
		return s.repos.Users.Update(ctx, user)
	})
	return result.Map(persisted, domain.User.Serialize)
}

func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) result.Result[Success] {
	removed := result.AndThen(s.repos.Users.FetchByID(ctx, id), func(user domain.User) result.Result[domain.User] {
		return s.repos.Users.Remove(ctx, user.ID)
	})
	if removed.IsErr() {
		return result.Err[Success](removed.Error())
	}
	return result.Ok(Success{Success: true, Message: "User deleted successfully"})
}

func (s *UserService) ListUsers(ctx context.Context, opts repository.PaginationOptions) result.Result[repository.Paginated[domain.SerializedUser]] {
	var page result.Result[repository.Paginated[domain.User]]
	err := s.tx.WithinTx(ctx, func(r repository.Repositories) error {
		page = r.Users.FetchAllWithPagination(ctx, opts)
		return page.Error()
	})
	if err != nil {
		return result.Err[repository.Paginated[domain.SerializedUser]](err)
	}
	return result.Map(page, func(p repository.Paginated[domain.User]) repository.Paginated[domain.SerializedUser] {
		return repository.MapPage(p, domain.User.Serialize)
	})
}
