package repository_test

import (
	"context"
	"fmt"
	"testing"

	"buddylist/backend/internal/models"
	"buddylist/backend/internal/repository"
	"buddylist/backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_CreateRejectsDuplicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewGormUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}))

	err := repo.Create(ctx, &models.User{Username: "alice", Email: "other@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, repository.ErrDuplicateUser)

	usernameTaken, emailTaken, err := repo.ExistsByUsernameOrEmail(ctx, "alice", "new@example.com")
	require.NoError(t, err)
	assert.True(t, usernameTaken)
	assert.False(t, emailTaken)

	usernameTaken, emailTaken, err = repo.ExistsByUsernameOrEmail(ctx, "someone", "alice@example.com")
	require.NoError(t, err)
	assert.False(t, usernameTaken)
	assert.True(t, emailTaken)
}

func TestUserRepo_Lookups(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewGormUserRepository(db)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, byEmail.ID)

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	exists, err := repo.UserExists(ctx, bob.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.UserExists(ctx, 999)
	require.NoError(t, err)
	assert.False(t, exists)

	name, err := repo.DisplayName(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", name)

	users, err := repo.FindByIDs(ctx, []uint{alice.ID, bob.ID, 999})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "alice", users[alice.ID].Username)
}

func TestUserRepo_Search(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewGormUserRepository(db)
	ctx := context.Background()
	me := testutil.CreateUser(t, db, "samwise")
	testutil.CreateUser(t, db, "Samantha")
	testutil.CreateUser(t, db, "sammy")
	testutil.CreateUser(t, db, "frodo")
	testutil.CreateUser(t, db, "sa_m")

	t.Run("case insensitive and excludes caller", func(t *testing.T) {
		page, err := repo.Search(ctx, "SAM", me.ID, 1, 20)
		require.NoError(t, err)
		names := make([]string, 0, len(page.Items))
		for _, u := range page.Items {
			names = append(names, u.Username)
		}
		assert.Equal(t, []string{"Samantha", "sammy"}, names)
		assert.EqualValues(t, 2, page.Meta.TotalItems)
	})

	t.Run("wildcards match literally", func(t *testing.T) {
		page, err := repo.Search(ctx, "a_m", me.ID, 1, 20)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "sa_m", page.Items[0].Username)
	})

	t.Run("matches email", func(t *testing.T) {
		page, err := repo.Search(ctx, "frodo@example", me.ID, 1, 20)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
	})

	t.Run("respects limit", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			testutil.CreateUser(t, db, fmt.Sprintf("pippin%d", i))
		}
		page, err := repo.Search(ctx, "pippin", me.ID, 1, 3)
		require.NoError(t, err)
		assert.Len(t, page.Items, 3)
		assert.EqualValues(t, 5, page.Meta.TotalItems)
		assert.Equal(t, 2, page.Meta.TotalPages)
	})
}
