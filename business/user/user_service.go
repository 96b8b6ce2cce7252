package user

import (
	"context"
	"errors"
	"strconv"
	"time"

	"ecoVoyage/domain"
	"ecoVoyage/pkg/logger"
	"ecoVoyage/pkg/utils"

	"github.com/go-playground/validator/v10"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint) error
}

// SessionStore contract interface; nil means stateless JWT-only auth
type SessionStore interface {
	StoreLogin(ctx context.Context, userID, role, token string, ttl time.Duration) error
	RevokeSession(ctx context.Context, userID string) error
}

const sessionTTL = 24 * time.Hour

type userService struct {
	userRepo UserRepository
	validate *validator.Validate
	sessions SessionStore
}

func NewUserService(userRepo UserRepository, validate *validator.Validate, sessions SessionStore) *userService {
	return &userService{
		userRepo: userRepo,
		validate: validate,
		sessions: sessions,
	}
}

const (
	RoleTraveler = "traveler"
	RoleAdmin    = "admin"
)

var validRoles = map[string]bool{
	RoleTraveler: true,
	RoleAdmin:    true,
}

const (
	minSustainabilityPreference = 0
	maxSustainabilityPreference = 10
)

func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("Invalid email format", "error", err)
		return domain.User{}, errors.New("invalid email format")
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Error("Invalid user password", "error", err)
		return domain.User{}, errors.New("password must be at least 6 characters")
	}

	if user.SustainabilityPreference < minSustainabilityPreference || user.SustainabilityPreference > maxSustainabilityPreference {
		return domain.User{}, errors.New("sustainability preference must be between 0 and 10")
	}

	// Check if email already exists
	existingUser, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existingUser.ID > 0 {
		logger.Error("Email already exists")
		return domain.User{}, errors.New("email already exists")
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		FullName:                 user.FullName,
		Email:                    user.Email,
		Password:                 string(passwordHash),
		Role:                     RoleTraveler,
		Interests:                user.Interests,
		SustainabilityPreference: user.SustainabilityPreference,
		BudgetLevel:              user.BudgetLevel,
		TravelStyle:              user.TravelStyle,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user")
		return domain.User{}, err
	}

	newUser.Password = ""
	return newUser, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("Invalid user credentials", "error", err)
		return "", domain.User{}, err
	}

	if err := utils.CheckPassword(user.Password, password); err != nil {
		logger.Error("User password incorrect")
		return "", domain.User{}, errors.New("incorrect password")
	}

	token, err := utils.GenerateJWT(user.ID, user.Role)
	if err != nil {
		logger.Error("Failed to generated token", "error", err)
		return "", domain.User{}, errors.New("failed to generate token")
	}

	if s.sessions != nil {
		userIdStr := strconv.FormatUint(uint64(user.ID), 10)
		if err := s.sessions.StoreLogin(ctx, userIdStr, user.Role, token, sessionTTL); err != nil {
			logger.Warn("Failed to store login session", "error", err)
		}
	}

	user.Password = ""
	return token, user, nil
}

// Logout revokes the user's server-side session. A no-op in stateless mode.
func (s *userService) Logout(ctx context.Context, userID uint) error {
	if s.sessions == nil {
		return nil
	}

	userIdStr := strconv.FormatUint(uint64(userID), 10)
	if err := s.sessions.RevokeSession(ctx, userIdStr); err != nil {
		logger.Error("Failed to revoke session", "error", err)
		return err
	}

	return nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get user by ID", "error", err)
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}

// GetAllUsers retrieves all users
func (s *userService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to get all users", "error", err)
		return nil, err
	}

	for i := range users {
		users[i].Password = ""
	}

	return users, nil
}

// UpdateUser updates account and traveler profile fields
func (s *userService) UpdateUser(ctx context.Context, id uint, updateData *domain.User) (domain.User, error) {
	existingUser, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("User not found for update", "error", err)
		return domain.User{}, err
	}

	if updateData.FullName != "" {
		existingUser.FullName = updateData.FullName
	}

	if updateData.Email != "" {
		if err := s.validate.Var(updateData.Email, "required,email"); err != nil {
			logger.Error("Invalid email format", "error", err)
			return domain.User{}, errors.New("invalid email format")
		}

		// Check if email already exists (excluding current user)
		userWithEmail, err := s.userRepo.FindByEmail(ctx, updateData.Email)
		if err == nil && userWithEmail.ID != id {
			logger.Error("Email already exists")
			return domain.User{}, errors.New("email already exists")
		}
		existingUser.Email = updateData.Email
	}

	if updateData.Password != "" {
		if err := s.validate.Var(updateData.Password, "required,min=6"); err != nil {
			logger.Error("Invalid password", "error", err)
			return domain.User{}, errors.New("password must be at least 6 characters")
		}

		passwordHash, err := utils.HashPassword(updateData.Password)
		if err != nil {
			logger.Error("Failed to hash password", "error", err)
			return domain.User{}, errors.New("failed to hash password")
		}
		existingUser.Password = string(passwordHash)
	}

	if updateData.Role != "" {
		if !validRoles[updateData.Role] {
			return domain.User{}, errors.New("invalid role")
		}
		existingUser.Role = updateData.Role
	}

	if updateData.SustainabilityPreference != 0 {
		if updateData.SustainabilityPreference < minSustainabilityPreference || updateData.SustainabilityPreference > maxSustainabilityPreference {
			return domain.User{}, errors.New("sustainability preference must be between 0 and 10")
		}
		existingUser.SustainabilityPreference = updateData.SustainabilityPreference
	}

	if updateData.Interests != nil {
		existingUser.Interests = updateData.Interests
	}
	if updateData.BudgetLevel != "" {
		existingUser.BudgetLevel = updateData.BudgetLevel
	}
	if updateData.TravelStyle != "" {
		existingUser.TravelStyle = updateData.TravelStyle
	}

	if err := s.userRepo.Update(ctx, &existingUser); err != nil {
		logger.Error("Failed to update user", "error", err)
		return domain.User{}, err
	}

	existingUser.Password = ""
	return existingUser, nil
}

// DeleteUser soft deletes a user
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	_, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("User not found for deletion", "error", err)
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete user", "error", err)
		return err
	}

	return nil
}
