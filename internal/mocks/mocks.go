package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"swap-service/internal/matching"
	"swap-service/internal/models"
	"swap-service/internal/notify"
	"swap-service/internal/repositories"
)

// MatcherMock mocks matching.Matcher.
type MatcherMock struct {
	mock.Mock
}

var _ matching.Matcher = (*MatcherMock)(nil)

func (m *MatcherMock) LikeItem(ctx context.Context, itemID int, likerID int) (matching.LikeOutcome, error) {
	args := m.Called(ctx, itemID, likerID)
	return args.Get(0).(matching.LikeOutcome), args.Error(1)
}

func (m *MatcherMock) ListMatches(ctx context.Context, userID int) ([]models.MatchGroup, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MatchGroup), args.Error(1)
}

func (m *MatcherMock) DeleteChatAndRelatedData(ctx context.Context, chatID int, userID int) error {
	args := m.Called(ctx, chatID, userID)
	return args.Error(0)
}

// ChatRepositoryMock mocks repositories.ChatRepository.
type ChatRepositoryMock struct {
	mock.Mock
}

var _ repositories.ChatRepository = (*ChatRepositoryMock)(nil)

func (m *ChatRepositoryMock) GetChat(ctx context.Context, chatID int) (models.Chat, error) {
	args := m.Called(ctx, chatID)
	return args.Get(0).(models.Chat), args.Error(1)
}

func (m *ChatRepositoryMock) IsParticipant(ctx context.Context, chatID int, userID int) (bool, error) {
	args := m.Called(ctx, chatID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *ChatRepositoryMock) ListChats(ctx context.Context, userID int) ([]models.ChatSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatSummary), args.Error(1)
}

// MessageRepositoryMock mocks repositories.MessageRepository.
type MessageRepositoryMock struct {
	mock.Mock
}

var _ repositories.MessageRepository = (*MessageRepositoryMock)(nil)

func (m *MessageRepositoryMock) CreateMessage(ctx context.Context, chatID int, senderID int, text string) (models.Message, error) {
	args := m.Called(ctx, chatID, senderID, text)
	return args.Get(0).(models.Message), args.Error(1)
}

func (m *MessageRepositoryMock) ListByChat(ctx context.Context, chatID int) ([]models.Message, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

// ItemRepositoryMock mocks repositories.ItemRepository.
type ItemRepositoryMock struct {
	mock.Mock
}

var _ repositories.ItemRepository = (*ItemRepositoryMock)(nil)

func (m *ItemRepositoryMock) Create(ctx context.Context, item models.Item) (models.Item, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(models.Item), args.Error(1)
}

func (m *ItemRepositoryMock) Get(ctx context.Context, itemID int) (models.Item, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(models.Item), args.Error(1)
}

func (m *ItemRepositoryMock) Update(ctx context.Context, item models.Item) (models.Item, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(models.Item), args.Error(1)
}

func (m *ItemRepositoryMock) Delete(ctx context.Context, itemID int) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *ItemRepositoryMock) IsMatched(ctx context.Context, itemID int) (bool, error) {
	args := m.Called(ctx, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *ItemRepositoryMock) ListBrowse(ctx context.Context, viewerID int, categoryID int) ([]models.Item, error) {
	args := m.Called(ctx, viewerID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *ItemRepositoryMock) ListByOwner(ctx context.Context, ownerID int) ([]models.Item, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *ItemRepositoryMock) ListImages(ctx context.Context, itemID int) ([]models.ItemImage, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ItemImage), args.Error(1)
}

func (m *ItemRepositoryMock) AddImage(ctx context.Context, itemID int, url string) (models.ItemImage, error) {
	args := m.Called(ctx, itemID, url)
	return args.Get(0).(models.ItemImage), args.Error(1)
}

func (m *ItemRepositoryMock) GetImage(ctx context.Context, imageID int) (models.ItemImage, error) {
	args := m.Called(ctx, imageID)
	return args.Get(0).(models.ItemImage), args.Error(1)
}

func (m *ItemRepositoryMock) DeleteImage(ctx context.Context, imageID int) error {
	args := m.Called(ctx, imageID)
	return args.Error(0)
}

func (m *ItemRepositoryMock) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

// LikeRepositoryMock mocks repositories.LikeRepository.
type LikeRepositoryMock struct {
	mock.Mock
}

var _ repositories.LikeRepository = (*LikeRepositoryMock)(nil)

func (m *LikeRepositoryMock) ListForLiker(ctx context.Context, likerID int) ([]models.LikedItem, error) {
	args := m.Called(ctx, likerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LikedItem), args.Error(1)
}

func (m *LikeRepositoryMock) CountsByItemForOwner(ctx context.Context, ownerID int) ([]models.ItemLikeCount, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ItemLikeCount), args.Error(1)
}

// RatingRepositoryMock mocks repositories.RatingRepository.
type RatingRepositoryMock struct {
	mock.Mock
}

var _ repositories.RatingRepository = (*RatingRepositoryMock)(nil)

func (m *RatingRepositoryMock) Upsert(ctx context.Context, ratedUserID int, ratingUserID int, rating int) (models.Rating, error) {
	args := m.Called(ctx, ratedUserID, ratingUserID, rating)
	return args.Get(0).(models.Rating), args.Error(1)
}

func (m *RatingRepositoryMock) Summary(ctx context.Context, ratedUserID int) (models.RatingSummary, error) {
	args := m.Called(ctx, ratedUserID)
	return args.Get(0).(models.RatingSummary), args.Error(1)
}

func (m *RatingRepositoryMock) HasMatchBetween(ctx context.Context, userID int, otherID int) (bool, error) {
	args := m.Called(ctx, userID, otherID)
	return args.Bool(0), args.Error(1)
}

// UserRepositoryMock mocks repositories.UserRepository.
type UserRepositoryMock struct {
	mock.Mock
}

var _ repositories.UserRepository = (*UserRepositoryMock)(nil)

func (m *UserRepositoryMock) Get(ctx context.Context, userID int) (models.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.User), args.Error(1)
}

// NotifierMock mocks notify.Notifier.
type NotifierMock struct {
	mock.Mock
}

var _ notify.Notifier = (*NotifierMock)(nil)

func (m *NotifierMock) MatchCreated(ctx context.Context, event notify.MatchEvent) {
	m.Called(ctx, event)
}
