package policy

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"sharingbox-backend/internal/db"
	"sharingbox-backend/internal/model"
)

// stubRights is a RightsLookup with a fixed answer.
type stubRights struct {
	granted bool
	err     error
}

func (s stubRights) HasSpecialAccess(ctx context.Context, userID, equipmentID int64) (bool, error) {
	return s.granted, s.err
}

func TestRankAllows(t *testing.T) {
	testCases := []struct {
		have, need int
		want       bool
	}{
		{have: 0, need: 0, want: true},
		{have: 1, need: 1, want: true},
		{have: 2, need: 1, want: true},
		{have: 0, need: 2, want: false},
		{have: 3, need: 4, want: false},
		{have: 4, need: 0, want: true},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, RankAllows(tc.have, tc.need), "have=%d need=%d", tc.have, tc.need)
	}
}

func TestCanRent(t *testing.T) {
	user := func(rank int) *model.User {
		return &model.User{ID: 1, AccessGroup: model.AccessGroup{Rank: rank}}
	}
	equipment := func(rank int) *model.EquipmentInstance {
		return &model.EquipmentInstance{ID: 10, AccessGroup: model.AccessGroup{Rank: rank}}
	}

	testCases := []struct {
		name    string
		rights  stubRights
		user    *model.User
		eq      *model.EquipmentInstance
		allowed bool
		reason  string
	}{
		{
			name:    "equal rank allows",
			user:    user(1),
			eq:      equipment(1),
			allowed: true,
		},
		{
			name:    "higher rank allows",
			user:    user(4),
			eq:      equipment(2),
			allowed: true,
		},
		{
			name:   "lower rank denies",
			user:   user(0),
			eq:     equipment(2),
			reason: "insufficient access group",
		},
		{
			name:    "special right overrides rank",
			rights:  stubRights{granted: true},
			user:    user(0),
			eq:      equipment(4),
			allowed: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			engine := NewEngine(tc.rights)
			decision, err := engine.CanRent(context.Background(), tc.user, tc.eq)
			require.NoError(t, err)
			assert.Equal(t, tc.allowed, decision.Allowed)
			assert.Equal(t, tc.reason, decision.Reason)
		})
	}
}

func TestCanRentLookupFailure(t *testing.T) {
	engine := NewEngine(stubRights{err: fmt.Errorf("storage down")})
	_, err := engine.CanRent(context.Background(),
		&model.User{ID: 1}, &model.EquipmentInstance{ID: 10})
	assert.Error(t, err)
}

func TestGormRights(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()
	require.NoError(t, db.Migrate(gdb))

	require.NoError(t, gdb.Create(&model.SpecialAccessRight{
		UserID: 1, EquipmentID: 10, GrantedAt: time.Now().UTC(),
	}).Error)

	rights := NewGormRights(gdb)
	ctx := context.Background()

	granted, err := rights.HasSpecialAccess(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, granted)

	// The right is per user AND per equipment instance.
	granted, err = rights.HasSpecialAccess(ctx, 1, 11)
	require.NoError(t, err)
	assert.False(t, granted)

	granted, err = rights.HasSpecialAccess(ctx, 2, 10)
	require.NoError(t, err)
	assert.False(t, granted)
}
