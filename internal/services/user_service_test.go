package services

import (
	"testing"

	"shopledger_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateUser(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(nil, repo)

	user, err := svc.CreateUser(CreateUserRequest{Username: "cashier", Password: "secret1", Role: models.RoleEmployee})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, models.RoleEmployee, user.Role)

	// The password must be stored hashed, never verbatim.
	stored := repo.passwords[user.ID]
	assert.NotEqual(t, "secret1", stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("secret1")))
}

func TestCreateUserValidation(t *testing.T) {
	svc := NewUserService(nil, &fakeUserRepo{})

	_, err := svc.CreateUser(CreateUserRequest{Username: "", Password: "secret1", Role: models.RoleAdmin})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateUser(CreateUserRequest{Username: "x", Password: "short", Role: models.RoleAdmin})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateUser(CreateUserRequest{Username: "x", Password: "secret1", Role: "superuser"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	repo := &fakeUserRepo{users: []models.User{{ID: 1, Username: "admin", Role: models.RoleAdmin}}}
	svc := NewUserService(nil, repo)

	_, err := svc.CreateUser(CreateUserRequest{Username: "admin", Password: "secret1", Role: models.RoleAdmin})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestResetPassword(t *testing.T) {
	repo := &fakeUserRepo{
		users:     []models.User{{ID: 1, Username: "cashier", Role: models.RoleEmployee}},
		passwords: map[int64]string{1: "old-hash"},
	}
	svc := NewUserService(nil, repo)

	require.NoError(t, svc.ResetPassword(1, ResetPasswordRequest{NewPassword: "freshpass"}))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.passwords[1]), []byte("freshpass")))

	assert.ErrorIs(t, svc.ResetPassword(1, ResetPasswordRequest{NewPassword: "tiny"}), ErrValidation)
	assert.ErrorIs(t, svc.ResetPassword(42, ResetPasswordRequest{NewPassword: "freshpass"}), ErrUserNotFound)
}

func TestUpdateRoleRejectsUnknownRole(t *testing.T) {
	svc := NewUserService(nil, &fakeUserRepo{})

	err := svc.UpdateRole(1, UpdateRoleRequest{Role: "owner"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestDeleteUserRejectsSelf(t *testing.T) {
	svc := NewUserService(nil, &fakeUserRepo{})

	err := svc.DeleteUser(7, 7)
	assert.ErrorIs(t, err, ErrSelfDelete)
}

func TestDeleteUserRejectsLastAdmin(t *testing.T) {
	repo := &fakeUserRepo{
		users: []models.User{
			{ID: 1, Username: "admin", Role: models.RoleAdmin},
			{ID: 2, Username: "cashier", Role: models.RoleEmployee},
		},
		adminCount: 1,
	}
	db := &fakeDB{}
	svc := NewUserService(db, repo)

	err := svc.DeleteUser(2, 1)
	assert.ErrorIs(t, err, ErrLastAdmin)

	// Nothing was deleted and the transaction never committed.
	assert.Len(t, repo.users, 2)
	require.NotNil(t, db.lastTx)
	assert.False(t, db.lastTx.committed)
	assert.True(t, db.lastTx.rolledBack)
}

func TestDeleteUserWithAnotherAdminRemaining(t *testing.T) {
	repo := &fakeUserRepo{
		users: []models.User{
			{ID: 1, Username: "admin", Role: models.RoleAdmin},
			{ID: 2, Username: "backup", Role: models.RoleAdmin},
		},
		adminCount: 2,
	}
	db := &fakeDB{}
	svc := NewUserService(db, repo)

	require.NoError(t, svc.DeleteUser(2, 1))
	assert.Len(t, repo.users, 1)
	require.NotNil(t, db.lastTx)
	assert.True(t, db.lastTx.committed)
}

func TestUpdateRoleRejectsDemotingLastAdmin(t *testing.T) {
	repo := &fakeUserRepo{
		users:      []models.User{{ID: 1, Username: "admin", Role: models.RoleAdmin}},
		adminCount: 1,
	}
	db := &fakeDB{}
	svc := NewUserService(db, repo)

	err := svc.UpdateRole(1, UpdateRoleRequest{Role: models.RoleEmployee})
	assert.ErrorIs(t, err, ErrLastAdmin)

	assert.Equal(t, models.RoleAdmin, repo.users[0].Role)
	require.NotNil(t, db.lastTx)
	assert.False(t, db.lastTx.committed)
	assert.True(t, db.lastTx.rolledBack)
}

func TestUpdateRoleDemotesWithAnotherAdminRemaining(t *testing.T) {
	repo := &fakeUserRepo{
		users: []models.User{
			{ID: 1, Username: "admin", Role: models.RoleAdmin},
			{ID: 2, Username: "backup", Role: models.RoleAdmin},
		},
		adminCount: 2,
	}
	db := &fakeDB{}
	svc := NewUserService(db, repo)

	require.NoError(t, svc.UpdateRole(1, UpdateRoleRequest{Role: models.RoleEmployee}))
	assert.Equal(t, models.RoleEmployee, repo.users[0].Role)
	require.NotNil(t, db.lastTx)
	assert.True(t, db.lastTx.committed)
}

func TestUpdateRolePromotionSkipsAdminCount(t *testing.T) {
	// Promoting an employee never reduces the admin count, so it must succeed
	// even when only one admin exists.
	repo := &fakeUserRepo{
		users: []models.User{
			{ID: 1, Username: "admin", Role: models.RoleAdmin},
			{ID: 2, Username: "cashier", Role: models.RoleEmployee},
		},
		adminCount: 1,
	}
	svc := NewUserService(&fakeDB{}, repo)

	require.NoError(t, svc.UpdateRole(2, UpdateRoleRequest{Role: models.RoleAdmin}))
	assert.Equal(t, models.RoleAdmin, repo.users[1].Role)
}
