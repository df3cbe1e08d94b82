package services

import (
	"context"
	"fmt"
	"net/mail"
	"strconv"
	"strings"

	"cryptoportfolio/src/models"
	"cryptoportfolio/src/repositories"
	"cryptoportfolio/src/schemas"
	"cryptoportfolio/src/utils"
)

// Fields a user update may change.
const (
	UserFieldName  = "name"
	UserFieldEmail = "email"
	UserFieldAge   = "age"
)

type UserServiceI interface {
	Create(ctx context.Context, req schemas.CreateUserRequest) (*schemas.UserResponse, error)
	List(ctx context.Context) ([]schemas.UserResponse, error)
	GetByID(ctx context.Context, id int64) (*schemas.UserResponse, error)
	GetByName(ctx context.Context, name string) (*schemas.UserResponse, error)
	GetByEmail(ctx context.Context, email string) (*schemas.UserResponse, error)
	Update(ctx context.Context, id int64, param string, newValue string) (*schemas.UserResponse, error)
	Delete(ctx context.Context, id int64) error
}

type UserService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func toUserResponse(u *models.User) *schemas.UserResponse {
	return &schemas.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		CreatedAt: u.CreatedAt,
	}
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", utils.ErrInvalidArgument)
	}
	return name, nil
}

func validateEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: %q is not a valid email", utils.ErrInvalidArgument, email)
	}
	return email, nil
}

func validateAge(age int) error {
	if age < 0 {
		return fmt.Errorf("%w: age must not be negative", utils.ErrInvalidArgument)
	}
	return nil
}

func (s *UserService) Create(ctx context.Context, req schemas.CreateUserRequest) (*schemas.UserResponse, error) {
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}
	email, err := validateEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if err := validateAge(req.Age); err != nil {
		return nil, err
	}

	user := &models.User{Name: name, Email: email, Age: req.Age}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *UserService) List(ctx context.Context) ([]schemas.UserResponse, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	response := make([]schemas.UserResponse, len(users))
	for i := range users {
		response[i] = *toUserResponse(&users[i])
	}
	return response, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*schemas.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *UserService) GetByName(ctx context.Context, name string) (*schemas.UserResponse, error) {
	user, err := s.userRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*schemas.UserResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Update sets one field, named by param, of user id to newValue.
func (s *UserService) Update(ctx context.Context, id int64, param string, newValue string) (*schemas.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(strings.TrimSpace(param)) {
	case UserFieldName:
		if user.Name, err = validateName(newValue); err != nil {
			return nil, err
		}
	case UserFieldEmail:
		if user.Email, err = validateEmail(newValue); err != nil {
			return nil, err
		}
	case UserFieldAge:
		age, err := strconv.Atoi(strings.TrimSpace(newValue))
		if err != nil {
			return nil, fmt.Errorf("%w: age %q is not an integer", utils.ErrInvalidArgument, newValue)
		}
		if err := validateAge(age); err != nil {
			return nil, err
		}
		user.Age = age
	default:
		return nil, fmt.Errorf("%w: unknown field %q, expected one of %s, %s, %s",
			utils.ErrInvalidArgument, param, UserFieldName, UserFieldEmail, UserFieldAge)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.userRepo.Delete(ctx, id)
}
