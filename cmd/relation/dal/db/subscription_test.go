package db

import (
	"context"
	"testing"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/database/dbtest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUsers(t *testing.T, gdb *gorm.DB, names ...string) []int64 {
	ids := dbtest.IDs(t)
	out := make([]int64, 0, len(names))
	for _, name := range names {
		u := &model.User{ID: ids.GenerateID(), Username: name, Email: name + "@example.com"}
		require.NoError(t, gdb.Create(u).Error)
		out = append(out, u.ID)
	}
	return out
}

func TestToggleSubscription(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.New(t)
	dao := NewSubscriptionDao(gdb, dbtest.IDs(t))
	users := seedUsers(t, gdb, "alice", "bob", "carol")
	alice, bob, carol := users[0], users[1], users[2]

	on, err := dao.ToggleSubscription(ctx, bob, alice)
	require.NoError(t, err)
	assert.True(t, on)
	on, err = dao.ToggleSubscription(ctx, carol, alice)
	require.NoError(t, err)
	assert.True(t, on)

	count, err := dao.CountSubscribers(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	ok, err := dao.IsSubscribed(ctx, bob, alice)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = dao.IsSubscribed(ctx, alice, bob)
	require.NoError(t, err)
	assert.False(t, ok)

	on, err = dao.ToggleSubscription(ctx, bob, alice)
	require.NoError(t, err)
	assert.False(t, on)
	count, err = dao.CountSubscribers(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestToggleSubscriptionUnknownChannel(t *testing.T) {
	gdb := dbtest.New(t)
	dao := NewSubscriptionDao(gdb, dbtest.IDs(t))
	bob := seedUsers(t, gdb, "bob")[0]

	_, err := dao.ToggleSubscription(context.Background(), bob, 404)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestSubscribedChannelIds(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.New(t)
	dao := NewSubscriptionDao(gdb, dbtest.IDs(t))
	users := seedUsers(t, gdb, "alice", "bob", "carol")

	_, err := dao.ToggleSubscription(ctx, users[2], users[0])
	require.NoError(t, err)
	_, err = dao.ToggleSubscription(ctx, users[2], users[1])
	require.NoError(t, err)

	ids, err := dao.SubscribedChannelIds(ctx, users[2])
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{users[0], users[1]}, ids)

	ids, err = dao.SubscribedChannelIds(ctx, users[0])
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestToggleSubscriptionLosesInsertRace(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.New(t)
	ids := dbtest.IDs(t)
	dao := NewSubscriptionDao(gdb, ids)
	users := seedUsers(t, gdb, "alice", "bob")
	alice, bob := users[0], users[1]

	fired := false
	err := gdb.Callback().Create().Before("gorm:create").Register("test:compete:subscriptions", func(tx *gorm.DB) {
		if fired || tx.Statement.Table != constants.SubscriptionTableName {
			return
		}
		fired = true
		tx.AddError(tx.Session(&gorm.Session{NewDB: true}).Create(&model.Subscription{
			ID: ids.GenerateID(), SubscriberId: bob, SubscribedToId: alice,
		}).Error)
	})
	require.NoError(t, err)

	// the concurrent subscribe won the insert, so this toggle reads as its undo
	on, err := dao.ToggleSubscription(ctx, bob, alice)
	require.NoError(t, err)
	assert.True(t, fired)
	assert.False(t, on)

	var edges int64
	require.NoError(t, gdb.Model(&model.Subscription{}).
		Where("subscriber_id = ? AND subscribed_to_id = ?", bob, alice).Count(&edges).Error)
	assert.Zero(t, edges)
}
