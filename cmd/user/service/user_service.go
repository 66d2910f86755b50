package service

import (
	"context"
	"strings"

	"VidTube.com/cmd/model"
	videoservice "VidTube.com/cmd/video/service"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type UserStore interface {
	FindOrCreateByEmail(ctx context.Context, username, email string) (*model.User, bool, error)
	FindUser(ctx context.Context, userId int64) (*model.User, error)
	ListByIds(ctx context.Context, ids []int64) ([]*model.User, error)
	UpdateProfile(ctx context.Context, userId int64, changes *model.User) (*model.User, error)
}

type SubscriptionReader interface {
	CountSubscribers(ctx context.Context, channelId int64) (int64, error)
	IsSubscribed(ctx context.Context, subscriberId, channelId int64) (bool, error)
	SubscribedChannelIds(ctx context.Context, subscriberId int64) ([]int64, error)
}

type LikeReader interface {
	LikedVideoIds(ctx context.Context, userId int64) ([]int64, error)
}

type HistoryReader interface {
	ViewedVideoIds(ctx context.Context, userId int64) ([]int64, error)
}

// Me is the signed-in user with the channels they subscribe to.
type Me struct {
	*model.User
	Channels []*model.User `json:"channels"`
}

// Channel is a user's public page.
type Channel struct {
	*model.User
	Videos          []*videoservice.VideoCard `json:"videos"`
	SubscriberCount int64                     `json:"subscribers_count"`
	IsSubscribed    bool                      `json:"is_subscribed"`
	IsMe            bool                      `json:"is_me"`
}

type UserService struct {
	users   UserStore
	subs    SubscriptionReader
	likes   LikeReader
	history HistoryReader
	feeds   *videoservice.FeedService
}

func NewUserService(users UserStore, subs SubscriptionReader, likes LikeReader, history HistoryReader,
	feeds *videoservice.FeedService) *UserService {
	return &UserService{users: users, subs: subs, likes: likes, history: history, feeds: feeds}
}

// Login finds the account registered under email, creating it on first sign-in.
func (s *UserService) Login(ctx context.Context, username, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)
	if !utils.IsEmail(email) {
		return nil, errno.BadRequestErr.WithMessage("A valid email is required")
	}
	if username == "" {
		username = email[:strings.IndexByte(email, '@')]
	}
	user, created, err := s.users.FindOrCreateByEmail(ctx, username, email)
	if err != nil {
		hlog.CtxErrorf(ctx, "Login: find or create %s failed: %v", email, err)
		return nil, err
	}
	if created {
		hlog.CtxInfof(ctx, "created user %d for %s", user.ID, email)
	}
	return user, nil
}

func (s *UserService) Me(ctx context.Context, userId int64) (*Me, error) {
	user, err := s.findUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	ids, err := s.subs.SubscribedChannelIds(ctx, userId)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.SubscribedChannelIds failed")
	}
	channels, err := s.users.ListByIds(ctx, ids)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.ListByIds failed")
	}
	return &Me{User: user, Channels: channels}, nil
}

// Channel builds the profile page of channelId as seen by viewer, which may be nil.
func (s *UserService) Channel(ctx context.Context, channelId int64, viewer *int64) (*Channel, error) {
	user, err := s.findUser(ctx, channelId)
	if err != nil {
		return nil, err
	}
	channel := &Channel{User: user}
	if channel.SubscriberCount, err = s.subs.CountSubscribers(ctx, channelId); err != nil {
		return nil, errors.WithMessage(err, "dao.CountSubscribers failed")
	}
	if channel.Videos, err = s.feeds.FromChannels(ctx, []int64{channelId}); err != nil {
		return nil, err
	}
	if viewer != nil {
		channel.IsMe = *viewer == channelId
		if channel.IsSubscribed, err = s.subs.IsSubscribed(ctx, *viewer, channelId); err != nil {
			return nil, errors.WithMessage(err, "dao.IsSubscribed failed")
		}
	}
	return channel, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userId int64, changes *model.User) (*model.User, error) {
	user, err := s.users.UpdateProfile(ctx, userId, changes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("No user found")
		}
		return nil, err
	}
	return user, nil
}

// SubscriptionFeed lists the videos of every channel userId subscribes to, newest first.
func (s *UserService) SubscriptionFeed(ctx context.Context, userId int64) ([]*videoservice.VideoCard, error) {
	ids, err := s.subs.SubscribedChannelIds(ctx, userId)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.SubscribedChannelIds failed")
	}
	return s.feeds.FromChannels(ctx, ids)
}

// LikedVideos lists the videos userId currently likes, most recently liked first.
func (s *UserService) LikedVideos(ctx context.Context, userId int64) ([]*videoservice.VideoCard, error) {
	ids, err := s.likes.LikedVideoIds(ctx, userId)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.LikedVideoIds failed")
	}
	return s.feeds.ByIds(ctx, ids)
}

// History lists the videos userId watched, most recently watched first.
func (s *UserService) History(ctx context.Context, userId int64) ([]*videoservice.VideoCard, error) {
	ids, err := s.history.ViewedVideoIds(ctx, userId)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.ViewedVideoIds failed")
	}
	return s.feeds.ByIds(ctx, ids)
}

func (s *UserService) findUser(ctx context.Context, userId int64) (*model.User, error) {
	user, err := s.users.FindUser(ctx, userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("No user found")
		}
		hlog.CtxErrorf(ctx, "find user %d failed: %v", userId, err)
		return nil, err
	}
	return user, nil
}
