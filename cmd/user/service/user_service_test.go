package service

import (
	"context"
	"testing"
	"time"

	interactiondb "VidTube.com/cmd/interaction/dal/db"
	"VidTube.com/cmd/model"
	relationdb "VidTube.com/cmd/relation/dal/db"
	userdb "VidTube.com/cmd/user/dal/db"
	videodb "VidTube.com/cmd/video/dal/db"
	videoservice "VidTube.com/cmd/video/service"
	"VidTube.com/pkg/database/dbtest"
	"VidTube.com/pkg/errno"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	users     *UserService
	videos    *videodb.VideoDao
	views     *videodb.ViewDao
	reactions *interactiondb.ReactionDao
	subs      *relationdb.SubscriptionDao
}

func newFixture(t *testing.T) *fixture {
	gdb := dbtest.New(t)
	ids := dbtest.IDs(t)
	f := &fixture{
		videos:    videodb.NewVideoDao(gdb, ids),
		views:     videodb.NewViewDao(gdb, ids),
		reactions: interactiondb.NewReactionDao(gdb, ids),
		subs:      relationdb.NewSubscriptionDao(gdb, ids),
	}
	comments := interactiondb.NewCommentDao(gdb, ids)
	engagement := videoservice.NewEngagementService(f.videos, f.views, f.reactions, f.subs, comments)
	feeds := videoservice.NewFeedService(f.videos, engagement)
	f.users = NewUserService(userdb.NewUserDao(gdb, ids), f.subs, f.reactions, f.views, feeds)
	return f
}

func (f *fixture) login(t *testing.T, name string) *model.User {
	u, err := f.users.Login(context.Background(), name, name+"@example.com")
	require.NoError(t, err)
	return u
}

func (f *fixture) publish(t *testing.T, owner int64, title string, createdAt time.Time) int64 {
	v := &model.Video{UserId: owner, Title: title, Url: "https://cdn/" + title, CreatedAt: createdAt}
	require.NoError(t, f.videos.InsertVideo(context.Background(), v))
	return v.ID
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.users.Login(ctx, "Alice", " Alice@Example.com ")
	require.NoError(t, err)
	again, err := f.users.Login(ctx, "", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Alice", again.Username)

	anon, err := f.users.Login(ctx, "", "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "bob", anon.Username)

	_, err = f.users.Login(ctx, "x", "not-an-email")
	assert.True(t, errors.Is(err, errno.BadRequestErr))
}

func TestMeListsSubscribedChannels(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice, bob, carol := f.login(t, "alice"), f.login(t, "bob"), f.login(t, "carol")
	_, err := f.subs.ToggleSubscription(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = f.subs.ToggleSubscription(ctx, alice.ID, carol.ID)
	require.NoError(t, err)

	me, err := f.users.Me(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, me.ID)
	require.Len(t, me.Channels, 2)

	_, err = f.users.Me(ctx, 1)
	assert.True(t, errors.Is(err, errno.NotFoundErr))
}

func TestChannel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice, bob := f.login(t, "alice"), f.login(t, "bob")
	now := time.Now()
	older := f.publish(t, alice.ID, "older", now.Add(-time.Hour))
	f.publish(t, alice.ID, "newer", now)
	require.NoError(t, f.views.RecordView(ctx, older, nil))
	_, err := f.subs.ToggleSubscription(ctx, bob.ID, alice.ID)
	require.NoError(t, err)

	page, err := f.users.Channel(ctx, alice.ID, &bob.ID)
	require.NoError(t, err)
	require.Len(t, page.Videos, 2)
	assert.Equal(t, "newer", page.Videos[0].Title)
	assert.Equal(t, int64(1), page.Videos[1].ViewCount)
	assert.Equal(t, int64(1), page.SubscriberCount)
	assert.True(t, page.IsSubscribed)
	assert.False(t, page.IsMe)

	page, err = f.users.Channel(ctx, alice.ID, nil)
	require.NoError(t, err)
	assert.False(t, page.IsSubscribed)
	assert.False(t, page.IsMe)

	page, err = f.users.Channel(ctx, alice.ID, &alice.ID)
	require.NoError(t, err)
	assert.True(t, page.IsMe)
}

func TestLikedVideosAndHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice, bob := f.login(t, "alice"), f.login(t, "bob")
	a := f.publish(t, alice.ID, "a", time.Now())
	b := f.publish(t, alice.ID, "b", time.Now())

	_, err := f.reactions.ToggleReaction(ctx, bob.ID, a, model.PolarityLike)
	require.NoError(t, err)
	liked, err := f.users.LikedVideos(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, a, liked[0].ID)

	require.NoError(t, f.views.RecordView(ctx, a, &bob.ID))
	require.NoError(t, f.views.RecordView(ctx, b, &bob.ID))
	history, err := f.users.History(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, b, history[0].ID)
	assert.Equal(t, a, history[1].ID)
}

func TestSubscriptionFeed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice, bob, carol := f.login(t, "alice"), f.login(t, "bob"), f.login(t, "carol")
	f.publish(t, bob.ID, "from bob", time.Now())
	f.publish(t, carol.ID, "from carol", time.Now())
	_, err := f.subs.ToggleSubscription(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	feed, err := f.users.SubscriptionFeed(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "from bob", feed[0].Title)

	empty, err := f.users.SubscriptionFeed(ctx, carol.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	alice := f.login(t, "alice")
	updated, err := f.users.UpdateProfile(context.Background(), alice.ID, &model.User{About: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", updated.About)

	_, err = f.users.UpdateProfile(context.Background(), 1, &model.User{About: "hi"})
	assert.True(t, errors.Is(err, errno.NotFoundErr))
}
