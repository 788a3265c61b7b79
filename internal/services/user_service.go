package services

import (
	"errors"
	"fmt"

	"shopledger_backend/internal/models"
	"shopledger_backend/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors ---
var (
	ErrUsernameTaken = errors.New("username already taken")
	ErrInvalidRole   = errors.New("role must be 'admin' or 'employee'")
	ErrLastAdmin     = errors.New("cannot remove the last admin account")
	ErrSelfDelete    = errors.New("cannot delete your own account")
)

// --- Data Transfer Objects (DTOs) ---

// CreateUserRequest DTO
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// ResetPasswordRequest DTO
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdateRoleRequest DTO
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// --- UserService Interface ---
type UserService interface {
	GetUsers() ([]models.User, error)
	CreateUser(req CreateUserRequest) (*models.User, error)
	ResetPassword(userID int64, req ResetPasswordRequest) error
	UpdateRole(userID int64, req UpdateRoleRequest) error
	DeleteUser(actorID, userID int64) error
}

// --- userService Implementation ---
type userService struct {
	db       repositories.DB
	userRepo repositories.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(db repositories.DB, userRepo repositories.UserRepository) UserService {
	return &userService{db: db, userRepo: userRepo}
}

func validRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleEmployee
}

// GetUsers lists all accounts.
func (s *userService) GetUsers() ([]models.User, error) {
	return s.userRepo.GetUsers()
}

// CreateUser adds an account with a hashed password.
func (s *userService) CreateUser(req CreateUserRequest) (*models.User, error) {
	if req.Username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if len(req.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	}
	if !validRole(req.Role) {
		return nil, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{Username: req.Username, Role: req.Role}
	userID, err := s.userRepo.CreateUser(s.db, user, string(hash))
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = userID
	return user, nil
}

// ResetPassword sets a new password for any account. Admin operation; the
// current password is not required.
func (s *userService) ResetPassword(userID int64, req ResetPasswordRequest) error {
	if len(req.NewPassword) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	err = s.userRepo.UpdatePassword(s.db, userID, string(hash))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to reset password: %w", err)
	}
	return nil
}

// UpdateRole changes an account's role. Demoting the sole remaining admin is
// rejected; the role check and the write share a transaction with a row lock
// so two concurrent demotions cannot both pass the count.
func (s *userService) UpdateRole(userID int64, req UpdateRoleRequest) error {
	if !validRole(req.Role) {
		return ErrInvalidRole
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for role update: %v", err)
	}
	defer tx.Rollback()

	currentRole, err := s.userRepo.GetRoleForUpdate(tx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to lock user for role update: %w", err)
	}

	if currentRole == models.RoleAdmin && req.Role != models.RoleAdmin {
		adminCount, err := s.userRepo.CountAdmins(tx)
		if err != nil {
			return fmt.Errorf("failed to count admins: %w", err)
		}
		if adminCount <= 1 {
			return ErrLastAdmin
		}
	}

	if err := s.userRepo.UpdateRole(tx, userID, req.Role); err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	return tx.Commit()
}

// DeleteUser removes an account. Self-deletion and deleting the sole
// remaining admin are rejected; the guard runs under the same transaction as
// the delete.
func (s *userService) DeleteUser(actorID, userID int64) error {
	if actorID == userID {
		return ErrSelfDelete
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for user delete: %v", err)
	}
	defer tx.Rollback()

	role, err := s.userRepo.GetRoleForUpdate(tx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to lock user for delete: %w", err)
	}

	if role == models.RoleAdmin {
		adminCount, err := s.userRepo.CountAdmins(tx)
		if err != nil {
			return fmt.Errorf("failed to count admins: %w", err)
		}
		if adminCount <= 1 {
			return ErrLastAdmin
		}
	}

	if err := s.userRepo.DeleteUser(tx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return tx.Commit()
}
