package service

import (
	"context"

	"pethealth/internal/models"
	"pethealth/internal/repository"
	"pethealth/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	UserID    uint
	FirstName string
	LastName  string
	Email     string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.FirstName != "" {
		if err := validation.ValidateName("first_name", in.FirstName); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		if err := validation.ValidateName("last_name", in.LastName); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.LastName = in.LastName
	}
	if in.Email != "" && in.Email != user.Email {
		if err := validation.ValidateEmail(in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = in.Email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}
