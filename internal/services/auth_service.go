package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/symptomap/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCreateUserFailed   = errors.New("create user failed")
	ErrDeleteUserFailed   = errors.New("delete user failed")
)

type AuthUserRepository interface {
	ExistsByUsername(username string) (bool, error)
	ExistsByEmail(email string) (bool, error)
	FindByUsername(username string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	UpdateLocation(userID uint, latitude *float64, longitude *float64) error
	DeleteAccountAndRelatedData(userID uint) error
}

type AuthService struct {
	users AuthUserRepository
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	Latitude  *float64
	Longitude *float64
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

func (service *AuthService) Register(input RegisterInput) (models.User, error) {
	username, err := NormalizeUsername(input.Username)
	if err != nil {
		return models.User{}, err
	}
	email, err := NormalizeEmail(input.Email)
	if err != nil {
		return models.User{}, err
	}
	if err := ValidatePassword(input.Password); err != nil {
		return models.User{}, err
	}
	if err := ValidateCoordinates(input.Latitude, input.Longitude); err != nil {
		return models.User{}, err
	}

	if taken, err := service.users.ExistsByUsername(username); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrCreateUserFailed, err)
	} else if taken {
		return models.User{}, ErrUsernameTaken
	}
	if taken, err := service.users.ExistsByEmail(email); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrCreateUserFailed, err)
	} else if taken {
		return models.User{}, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrCreateUserFailed, err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(passwordHash),
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		CreatedAt:    time.Now().UTC(),
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrCreateUserFailed, err)
	}
	return user, nil
}

// Authenticate resolves username+password to a user. Unknown username and
// wrong password collapse into the same error; callers get no oracle.
func (service *AuthService) Authenticate(username string, password string) (models.User, error) {
	user, err := service.users.FindByUsername(username)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

func (service *AuthService) UpdateLocation(userID uint, latitude *float64, longitude *float64) error {
	if err := ValidateCoordinates(latitude, longitude); err != nil {
		return err
	}
	return service.users.UpdateLocation(userID, latitude, longitude)
}

func (service *AuthService) DeleteAccount(userID uint) error {
	if err := service.users.DeleteAccountAndRelatedData(userID); err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteUserFailed, err)
	}
	return nil
}
