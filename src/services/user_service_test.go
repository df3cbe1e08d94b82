package services_test

import (
	"context"
	"testing"

	"cryptoportfolio/src/schemas"
	"cryptoportfolio/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	alice := s.createUser(t, "alice")
	assert.Equal(t, "alice@example.com", alice.Email)

	t.Run("create validation", func(t *testing.T) {
		_, err := s.users.Create(ctx, schemas.CreateUserRequest{Name: " ", Email: "x@example.com"})
		assert.ErrorIs(t, err, utils.ErrInvalidArgument)

		_, err = s.users.Create(ctx, schemas.CreateUserRequest{Name: "x", Email: "not-an-email"})
		assert.ErrorIs(t, err, utils.ErrInvalidArgument)

		_, err = s.users.Create(ctx, schemas.CreateUserRequest{Name: "x", Email: "x@example.com", Age: -1})
		assert.ErrorIs(t, err, utils.ErrInvalidArgument)
	})

	t.Run("duplicates conflict", func(t *testing.T) {
		_, err := s.users.Create(ctx, schemas.CreateUserRequest{Name: "alice", Email: "other@example.com"})
		assert.ErrorIs(t, err, utils.ErrConflict)
	})

	t.Run("lookups", func(t *testing.T) {
		got, err := s.users.GetByName(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)

		got, err = s.users.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)

		_, err = s.users.GetByID(ctx, 999)
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})

	t.Run("field updates", func(t *testing.T) {
		got, err := s.users.Update(ctx, alice.ID, "age", "31")
		require.NoError(t, err)
		assert.Equal(t, 31, got.Age)

		got, err = s.users.Update(ctx, alice.ID, "Email", "alice@example.org")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.org", got.Email)

		got, err = s.users.Update(ctx, alice.ID, "name", "alice b")
		require.NoError(t, err)
		assert.Equal(t, "alice b", got.Name)

		stored, err := s.users.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, 31, stored.Age)
		assert.Equal(t, "alice b", stored.Name)
	})

	t.Run("invalid updates", func(t *testing.T) {
		_, err := s.users.Update(ctx, alice.ID, "password", "x")
		assert.ErrorIs(t, err, utils.ErrInvalidArgument)

		_, err = s.users.Update(ctx, alice.ID, "age", "old")
		assert.ErrorIs(t, err, utils.ErrInvalidArgument)

		_, err = s.users.Update(ctx, 999, "age", "3")
		assert.ErrorIs(t, err, utils.ErrNotFound)

		bob := s.createUser(t, "bob")
		_, err = s.users.Update(ctx, bob.ID, "email", "alice@example.org")
		assert.ErrorIs(t, err, utils.ErrConflict)
	})

	t.Run("list and delete", func(t *testing.T) {
		users, err := s.users.List(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 2)

		require.NoError(t, s.users.Delete(ctx, alice.ID))
		assert.ErrorIs(t, s.users.Delete(ctx, alice.ID), utils.ErrNotFound)

		users, err = s.users.List(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})
}
