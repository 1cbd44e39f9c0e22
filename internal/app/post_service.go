package app

import (
	"context"
	"log"

	"blogql/internal/events"
	"blogql/internal/model"
	"blogql/internal/pkg/apperr"
	"blogql/internal/pkg/validate"
)

// imageUnchanged is the sentinel clients send when the image should stay as
// it is; it must never be stored as a literal path.
const imageUnchanged = "undefined"

type PostService struct {
	users     UserGateway
	posts     PostGateway
	feed      FeedCache
	publisher events.Publisher
	pageSize  int
}

type PostInput struct {
	Title    string
	Content  string
	ImageURL string
}

func NewPostService(users UserGateway, posts PostGateway, feed FeedCache, publisher events.Publisher, pageSize int) *PostService {
	if pageSize <= 0 {
		pageSize = 2
	}
	return &PostService{
		users:     users,
		posts:     posts,
		feed:      feed,
		publisher: publisher,
		pageSize:  pageSize,
	}
}

// CreatePost inserts a post owned by the authenticated caller, then links it
// into the owner's post list as a second write.
func (s *PostService) CreatePost(ctx context.Context, input PostInput) (*model.Post, error) {
	ident, ok := IdentityFrom(ctx)
	if !ok {
		return nil, apperr.NewUnauthenticated("Not authenticated!")
	}

	title := validate.Trim(input.Title)
	content := validate.Trim(input.Content)
	if violations := validate.PostInput(title, content); len(violations) > 0 {
		return nil, apperr.NewValidation(violations)
	}

	// The token is trusted for identity, not for existence; the account may
	// have gone away since it was issued.
	user, err := s.users.GetByID(ident.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NewUnauthenticated("Invalid user.")
	}

	post := &model.Post{
		Title:    title,
		Content:  content,
		ImageURL: input.ImageURL,
		UserID:   user.ID,
	}
	if err := s.posts.Create(post); err != nil {
		return nil, err
	}
	if err := s.users.AppendPost(user.ID, post.ID); err != nil {
		return nil, err
	}
	post.Creator = *user

	s.publish(ctx, events.ActionCreate, post)
	return post, nil
}

// Posts returns one fixed-size page of the feed, newest first, with creators
// populated, plus the overall post count.
func (s *PostService) Posts(ctx context.Context, page int) (*model.PostPage, error) {
	if _, ok := IdentityFrom(ctx); !ok {
		return nil, apperr.NewUnauthenticated("Not authenticated!")
	}
	if page < 1 {
		page = 1
	}

	if s.feed != nil {
		cached, hit, err := s.feed.GetPage(ctx, page)
		if err != nil {
			log.Printf("feed cache read failed: %v", err)
		} else if hit {
			return cached, nil
		}
	}

	total, err := s.posts.Count()
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.List((page-1)*s.pageSize, s.pageSize, true, true)
	if err != nil {
		return nil, err
	}

	result := &model.PostPage{Posts: posts, TotalPosts: total}
	if s.feed != nil {
		if err := s.feed.SetPage(ctx, page, result); err != nil {
			log.Printf("feed cache write failed: %v", err)
		}
	}
	return result, nil
}

func (s *PostService) Post(ctx context.Context, id uint) (*model.Post, error) {
	if _, ok := IdentityFrom(ctx); !ok {
		return nil, apperr.NewUnauthenticated("Not authenticated!")
	}

	post, err := s.posts.GetByID(id, true)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperr.NewNotFound("No post found!")
	}
	return post, nil
}

// UpdatePost rewrites title and content; the image only changes when the
// caller supplied a real value. Only the creator may update.
func (s *PostService) UpdatePost(ctx context.Context, id uint, input PostInput) (*model.Post, error) {
	ident, ok := IdentityFrom(ctx)
	if !ok {
		return nil, apperr.NewUnauthenticated("Not authenticated!")
	}

	title := validate.Trim(input.Title)
	content := validate.Trim(input.Content)
	if violations := validate.PostInput(title, content); len(violations) > 0 {
		return nil, apperr.NewValidation(violations)
	}

	post, err := s.posts.GetByID(id, true)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperr.NewNotFound("No post found!")
	}
	if post.UserID != ident.UserID {
		return nil, apperr.NewForbidden("Not authorized!")
	}

	post.Title = title
	post.Content = content
	if input.ImageURL != "" && input.ImageURL != imageUnchanged {
		post.ImageURL = input.ImageURL
	}
	if err := s.posts.Update(post); err != nil {
		return nil, err
	}

	s.publish(ctx, events.ActionUpdate, post)
	return post, nil
}

func (s *PostService) publish(ctx context.Context, action string, post *model.Post) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishPostEvent(ctx, events.PostEvent{Action: action, Post: *post}); err != nil {
		log.Printf("publish post event failed: %v", err)
	}
}
