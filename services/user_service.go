package services

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cashflowx/cashflowx_backend/models"
	"github.com/cashflowx/cashflowx_backend/repositories"
	"github.com/cashflowx/cashflowx_backend/security"
	"github.com/cashflowx/cashflowx_backend/utils"
)

// ImageStore persists profile images.
type ImageStore interface {
	SaveProfileImage(file *multipart.FileHeader) (string, error)
	DeleteProfileImage(url string) error
}

type UserService struct {
	users   repositories.UserRepository
	images  ImageStore
	resolve URLResolver
}

func NewUserService(users repositories.UserRepository, images ImageStore, resolve URLResolver) *UserService {
	return &UserService{users: users, images: images, resolve: resolve}
}

// ProfileUpdate is the parsed multipart profile form. A nil Name means the
// field was not sent.
type ProfileUpdate struct {
	Name  *string
	Image *multipart.FileHeader
}

// Current loads the principal's account.
func (s *UserService) Current(ctx context.Context, principal primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, principal)
	if err != nil {
		return nil, storeErr(err, msgUserNotFound, "An error occurred while loading user")
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, principal primitive.ObjectID, update ProfileUpdate) (*models.UserProfile, error) {
	const failed = "An error occurred while updating profile"

	if (update.Name == nil || *update.Name == "") && update.Image == nil {
		return nil, InvalidInput("At least one field (name or profileImage) is required")
	}
	var name string
	if update.Name != nil {
		name = strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, InvalidInput("Name cannot be empty")
		}
		if len([]rune(name)) < 2 {
			return nil, InvalidInput("Name must be at least 2 characters")
		}
	}
	if update.Image != nil {
		if err := utils.ValidateImage(update.Image); err != nil {
			return nil, imageErr(err)
		}
		if s.images == nil {
			return nil, Internal(failed, errors.New("image storage is not configured"))
		}
	}

	user, err := s.users.FindByID(ctx, principal)
	if err != nil {
		return nil, storeErr(err, msgUserNotFound, failed)
	}

	previousImage := user.ProfileImageURL
	if update.Name != nil {
		user.Name = name
	}
	var savedImage string
	if update.Image != nil {
		if savedImage, err = s.images.SaveProfileImage(update.Image); err != nil {
			if errors.Is(err, utils.ErrUnsupportedImage) || errors.Is(err, utils.ErrImageTooLarge) {
				return nil, imageErr(err)
			}
			return nil, Internal(failed, err)
		}
		user.ProfileImageURL = savedImage
	}

	if err := s.users.Update(ctx, user); err != nil {
		if savedImage != "" {
			if rmErr := s.images.DeleteProfileImage(savedImage); rmErr != nil {
				log.Printf("Error removing unsaved profile image: %v", rmErr)
			}
		}
		return nil, storeErr(err, msgUserNotFound, failed)
	}
	if savedImage != "" && previousImage != "" && previousImage != savedImage {
		if err := s.images.DeleteProfileImage(previousImage); err != nil {
			log.Printf("Error deleting old profile image: %v", err)
		}
	}

	profile := user.Profile(s.resolve)
	return &profile, nil
}

func imageErr(err error) error {
	if errors.Is(err, utils.ErrImageTooLarge) {
		return InvalidInput("Image must be 5MB or smaller")
	}
	return InvalidInput("Only image files (jpg, jpeg, png, gif) are allowed")
}

func (s *UserService) ChangePassword(ctx context.Context, principal primitive.ObjectID, req models.ChangePasswordRequest) error {
	const failed = "An error occurred while changing password"

	if req.CurrentPassword == "" || req.NewPassword == "" || req.ConfirmPassword == "" {
		return InvalidInput("Current password, new password, and confirm password are required")
	}
	if req.NewPassword != req.ConfirmPassword {
		return InvalidInput("New password and confirm password do not match")
	}
	if len(req.NewPassword) < MinPasswordLength {
		return InvalidInput("New password must be at least 8 characters")
	}
	if req.NewPassword == req.CurrentPassword {
		return InvalidInput("New password must be different from current password")
	}

	user, err := s.users.FindByID(ctx, principal)
	if err != nil {
		return storeErr(err, msgUserNotFound, failed)
	}
	if !security.CheckPassword(user.Password, req.CurrentPassword) {
		return Unauthorized("Current password is incorrect")
	}

	hash, err := security.HashPassword(req.NewPassword)
	if err != nil {
		return Internal(failed, err)
	}
	user.Password = hash
	if err := s.users.Update(ctx, user); err != nil {
		return storeErr(err, msgUserNotFound, failed)
	}
	return nil
}
