package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vitatrack/vitatrack/internal/model"
	"github.com/vitatrack/vitatrack/internal/repository"
	"github.com/vitatrack/vitatrack/internal/validation"
)

type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) ByID(id string) (*model.User, error) {
	return s.users.ByID(id)
}

func (s *UserService) All() ([]*model.User, error) {
	return s.users.All()
}

// UserUpdateInput carries a partial update; nil fields are left unchanged.
type UserUpdateInput struct {
	Name          *string
	Email         *string
	ProfileImage  *string
	Height        *float64
	CurrentWeight *float64
	InitialWeight *float64
	WeightGoal    *float64
	Gender        *string
	Birthday      *string // validated YYYY-MM-DD
}

// Update applies a partial profile update and recomputes the BMI whenever
// height or current weight changed.
func (s *UserService) Update(id string, in UserUpdateInput) (*model.User, error) {
	user, err := s.users.ByID(id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*in.Email))
		if email != user.Email {
			err = validation.ValidateEmail(email)
			if err != nil {
				return nil, err
			}
			_, err = s.users.ByEmail(email)
			if err == nil {
				return nil, ErrEmailTaken
			}
			if !errors.Is(err, repository.ErrUserNotFound) {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			user.Email = email
		}
	}
	if in.ProfileImage != nil {
		user.ProfileImage = in.ProfileImage
	}
	if in.InitialWeight != nil {
		user.InitialWeight = in.InitialWeight
	}
	if in.WeightGoal != nil {
		user.WeightGoal = in.WeightGoal
	}
	if in.Gender != nil {
		user.Gender = in.Gender
	}
	if in.Birthday != nil {
		user.Birthday = in.Birthday
	}

	if in.Height != nil || in.CurrentWeight != nil {
		if in.Height != nil {
			user.Height = in.Height
		}
		if in.CurrentWeight != nil {
			user.CurrentWeight = in.CurrentWeight
		}
		user.RecalcBMI()
	}

	err = s.users.Update(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

// Delete removes the user; meals, workouts, metrics, achievements and the
// stats row go with it via cascade.
func (s *UserService) Delete(id string) error {
	return s.users.Delete(id)
}
