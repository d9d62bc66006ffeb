package service

import (
	"sync"
	"testing"
	"time"

	"buddylist/backend/internal/models"
	"buddylist/backend/internal/repository"
	"buddylist/backend/internal/testutil"
	"buddylist/backend/pkg/idgen"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testEnv struct {
	db          *gorm.DB
	clock       *fakeClock
	friendRepo  repository.FriendshipRepository
	statusRepo  repository.StatusRepository
	userRepo    repository.UserRepository
	friendships *friendshipService
	presence    *presenceService
	users       *userService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	clock := newFakeClock()
	fr := repository.NewGormFriendshipRepository(db)
	sr := repository.NewGormStatusRepository(db)
	ur := repository.NewGormUserRepository(db)

	ids, err := idgen.New(1)
	require.NoError(t, err)

	presence := NewPresenceService(fr, sr, ur, ids).(*presenceService)
	presence.now = clock.Now

	friendships := NewFriendshipService(fr, ur, presence).(*friendshipService)
	friendships.now = clock.Now

	users := NewUserService(ur, presence).(*userService)
	users.hashCost = bcrypt.MinCost

	return &testEnv{
		db:          db,
		clock:       clock,
		friendRepo:  fr,
		statusRepo:  sr,
		userRepo:    ur,
		friendships: friendships,
		presence:    presence,
		users:       users,
	}
}

func (e *testEnv) user(t *testing.T, username string) *models.User {
	t.Helper()
	return testutil.CreateUser(t, e.db, username)
}

func (e *testEnv) edgeCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&models.Friendship{}).Count(&n).Error)
	return n
}
