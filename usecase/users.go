package usecase

import (
	"context"
	"errors"
	"time"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"
)

type UserService struct {
	Users *repository.UserRepo
}

// Register hashes the password and creates the user with a fresh user ID.
func (svc *UserService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	existing, err := svc.Users.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("username already exists")
	}

	hashed, err := services.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserID:    utils.GenerateUserID(),
		Username:  username,
		Email:     email,
		Password:  hashed,
		CreatedAt: time.Now(),
		IsActive:  true,
	}

	if err := svc.Users.AddUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user when the credentials match, nil otherwise.
func (svc *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := svc.Users.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	if !services.ComparePasswords(user.Password, password) {
		return nil, nil
	}
	return user, nil
}

// ChangePassword verifies the old password before storing the new hash.
func (svc *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := svc.Users.FindUser(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}

	if !services.ComparePasswords(user.Password, oldPassword) {
		return errors.New("current password is incorrect")
	}
	if oldPassword == newPassword {
		return errors.New("new password must be different from current password")
	}

	hashed, err := services.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return svc.Users.UpdateUserPassword(ctx, userID, hashed)
}
