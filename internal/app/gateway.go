package app

import (
	"context"

	"blogql/internal/model"
)

// Gateways abstract the datastore CRUD the services depend on. The concrete
// implementations live in internal/repository; tests substitute fakes.

type UserGateway interface {
	Create(user *model.User) error
	GetByEmail(email string) (*model.User, error)
	GetByID(id uint) (*model.User, error)
	AppendPost(userID, postID uint) error
}

type PostGateway interface {
	Create(post *model.Post) error
	GetByID(id uint, withCreator bool) (*model.Post, error)
	Count() (int64, error)
	List(offset, limit int, newestFirst, withCreator bool) ([]model.Post, error)
	Update(post *model.Post) error
}

// FeedCache is the optional read-through cache in front of the post listing.
type FeedCache interface {
	GetPage(ctx context.Context, page int) (*model.PostPage, bool, error)
	SetPage(ctx context.Context, page int, data *model.PostPage) error
}
