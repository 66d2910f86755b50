package db

import (
	"context"
	"sync"
	"testing"
	"time"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/database/dbtest"
	"VidTube.com/pkg/utils"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	ids       utils.IDGenerator
	reactions *ReactionDao
	comments  *CommentDao
}

func newFixture(t *testing.T) *fixture {
	gdb := dbtest.New(t)
	ids := dbtest.IDs(t)
	return &fixture{db: gdb, ids: ids, reactions: NewReactionDao(gdb, ids), comments: NewCommentDao(gdb, ids)}
}

func (f *fixture) user(t *testing.T, name string) int64 {
	u := &model.User{ID: f.ids.GenerateID(), Username: name, Email: name + "@example.com"}
	require.NoError(t, f.db.Create(u).Error)
	return u.ID
}

func (f *fixture) video(t *testing.T, owner int64) int64 {
	v := &model.Video{ID: f.ids.GenerateID(), UserId: owner, Title: "clip", Url: "https://cdn/clip"}
	require.NoError(t, f.db.Omit("User").Create(v).Error)
	return v.ID
}

func (f *fixture) rows(t *testing.T, userId, videoId int64) int64 {
	var n int64
	require.NoError(t, f.db.Model(&model.VideoLike{}).Where("user_id = ? AND video_id = ?", userId, videoId).Count(&n).Error)
	return n
}

func TestNextPolarity(t *testing.T) {
	cases := []struct {
		current, requested, want model.Polarity
	}{
		{model.PolarityNone, model.PolarityLike, model.PolarityLike},
		{model.PolarityLike, model.PolarityLike, model.PolarityNone},
		{model.PolarityDislike, model.PolarityLike, model.PolarityLike},
		{model.PolarityNone, model.PolarityDislike, model.PolarityDislike},
		{model.PolarityDislike, model.PolarityDislike, model.PolarityNone},
		{model.PolarityLike, model.PolarityDislike, model.PolarityDislike},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NextPolarity(c.current, c.requested), "%s + %s", c.current, c.requested)
	}
}

func TestToggleReactionSequence(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.user(t, "alice")
	viewer := f.user(t, "bob")
	video := f.video(t, owner)

	steps := []struct {
		requested model.Polarity
		want      model.Polarity
		likes     int64
		dislikes  int64
	}{
		{model.PolarityLike, model.PolarityLike, 1, 0},
		{model.PolarityDislike, model.PolarityDislike, 0, 1},
		{model.PolarityDislike, model.PolarityNone, 0, 0},
		{model.PolarityDislike, model.PolarityDislike, 0, 1},
		{model.PolarityLike, model.PolarityLike, 1, 0},
		{model.PolarityLike, model.PolarityNone, 0, 0},
	}
	for i, s := range steps {
		got, err := f.reactions.ToggleReaction(ctx, viewer, video, s.requested)
		require.NoError(t, err, "step %d", i)
		assert.Equal(t, s.want, got, "step %d", i)

		stored, err := f.reactions.GetReaction(ctx, viewer, video)
		require.NoError(t, err)
		assert.Equal(t, s.want, stored, "step %d", i)

		likes, dislikes, err := f.reactions.CountReactions(ctx, video)
		require.NoError(t, err)
		assert.Equal(t, s.likes, likes, "step %d", i)
		assert.Equal(t, s.dislikes, dislikes, "step %d", i)
		assert.LessOrEqual(t, f.rows(t, viewer, video), int64(1))
	}
}

func TestToggleReactionUnknownVideo(t *testing.T) {
	f := newFixture(t)
	viewer := f.user(t, "bob")

	_, err := f.reactions.ToggleReaction(context.Background(), viewer, 42, model.PolarityLike)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.Zero(t, f.rows(t, viewer, 42))
}

func TestToggleReactionRejectsNone(t *testing.T) {
	f := newFixture(t)
	video := f.video(t, f.user(t, "alice"))

	_, err := f.reactions.ToggleReaction(context.Background(), 1, video, model.PolarityNone)
	assert.Error(t, err)
}

func TestToggleReactionConcurrent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.user(t, "alice")
	viewer := f.user(t, "bob")
	video := f.video(t, owner)

	const workers = 9
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.reactions.ToggleReaction(ctx, viewer, video, model.PolarityLike)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	// an odd number of likes leaves the video liked, with exactly one row
	assert.Equal(t, int64(1), f.rows(t, viewer, video))
	state, err := f.reactions.GetReaction(ctx, viewer, video)
	require.NoError(t, err)
	assert.Equal(t, model.PolarityLike, state)
}

func TestReactionsAreIndependentPerUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.user(t, "alice")
	bob := f.user(t, "bob")
	carol := f.user(t, "carol")
	video := f.video(t, owner)

	_, err := f.reactions.ToggleReaction(ctx, bob, video, model.PolarityLike)
	require.NoError(t, err)
	_, err = f.reactions.ToggleReaction(ctx, carol, video, model.PolarityLike)
	require.NoError(t, err)
	_, err = f.reactions.ToggleReaction(ctx, owner, video, model.PolarityDislike)
	require.NoError(t, err)

	likes, dislikes, err := f.reactions.CountReactions(ctx, video)
	require.NoError(t, err)
	assert.Equal(t, int64(2), likes)
	assert.Equal(t, int64(1), dislikes)

	state, err := f.reactions.GetReaction(ctx, owner, video)
	require.NoError(t, err)
	assert.Equal(t, model.PolarityDislike, state)
}

func TestLikedVideoIds(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.user(t, "alice")
	viewer := f.user(t, "bob")
	first := f.video(t, owner)
	second := f.video(t, owner)
	disliked := f.video(t, owner)

	_, err := f.reactions.ToggleReaction(ctx, viewer, first, model.PolarityLike)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = f.reactions.ToggleReaction(ctx, viewer, second, model.PolarityLike)
	require.NoError(t, err)
	_, err = f.reactions.ToggleReaction(ctx, viewer, disliked, model.PolarityDislike)
	require.NoError(t, err)

	ids, err := f.reactions.LikedVideoIds(ctx, viewer)
	require.NoError(t, err)
	assert.Equal(t, []int64{second, first}, ids)
}

// competeOnInsert makes the next insert into table run after a competing row has been written
// inside the same transaction, the interleaving a concurrent toggle produces on a real store.
func competeOnInsert(t *testing.T, gdb *gorm.DB, table string, competitor interface{}) *bool {
	fired := false
	err := gdb.Callback().Create().Before("gorm:create").Register("test:compete:"+table, func(tx *gorm.DB) {
		if fired || tx.Statement.Table != table {
			return
		}
		fired = true
		if err := tx.Session(&gorm.Session{NewDB: true}).Create(competitor).Error; err != nil {
			tx.AddError(err)
		}
	})
	require.NoError(t, err)
	return &fired
}

func TestToggleReactionLosesInsertRace(t *testing.T) {
	cases := []struct {
		name      string
		competing model.Polarity
		want      model.Polarity
		wantRows  int64
	}{
		// like + like serializes to NONE, never to two rows
		{"same polarity", model.PolarityLike, model.PolarityNone, 0},
		{"opposite polarity", model.PolarityDislike, model.PolarityLike, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t)
			viewer := f.user(t, "bob")
			video := f.video(t, f.user(t, "alice"))
			fired := competeOnInsert(t, f.db, constants.VideoLikeTableName, &model.VideoLike{
				ID: f.ids.GenerateID(), UserId: viewer, VideoId: video, Polarity: c.competing,
			})

			state, err := f.reactions.ToggleReaction(ctx, viewer, video, model.PolarityLike)
			require.NoError(t, err)
			assert.True(t, *fired)
			assert.Equal(t, c.want, state)
			assert.Equal(t, c.wantRows, f.rows(t, viewer, video))

			stored, err := f.reactions.GetReaction(ctx, viewer, video)
			require.NoError(t, err)
			assert.Equal(t, c.want, stored)
		})
	}
}

func TestToggleReactionLocksTheVideoRow(t *testing.T) {
	f := newFixture(t)
	viewer := f.user(t, "bob")
	video := f.video(t, f.user(t, "alice"))
	locks := dbtest.Locks(t, f.db, constants.VideoTableName)

	_, err := f.reactions.ToggleReaction(context.Background(), viewer, video, model.PolarityDislike)
	require.NoError(t, err)
	assert.Equal(t, []string{"SHARE"}, locks())
}
