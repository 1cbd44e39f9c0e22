package app

import (
	"context"
	"sort"
	"time"

	"blogql/internal/events"
	"blogql/internal/model"
)

type fakeUsers struct {
	users       []*model.User
	nextID      uint
	appendCalls [][2]uint
}

func (f *fakeUsers) Create(user *model.User) error {
	f.nextID++
	user.ID = f.nextID
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUsers) GetByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) GetByID(id uint) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) AppendPost(userID, postID uint) error {
	f.appendCalls = append(f.appendCalls, [2]uint{userID, postID})
	return nil
}

type fakePosts struct {
	users      *fakeUsers
	posts      []*model.Post
	nextID     uint
	listCalls  int
	countCalls int
	clock      time.Time
}

func (f *fakePosts) Create(post *model.Post) error {
	f.nextID++
	post.ID = f.nextID
	f.clock = f.clock.Add(time.Second)
	post.CreatedAt = f.clock
	post.UpdatedAt = f.clock
	stored := *post
	f.posts = append(f.posts, &stored)
	return nil
}

func (f *fakePosts) GetByID(id uint, withCreator bool) (*model.Post, error) {
	for _, p := range f.posts {
		if p.ID == id {
			found := *p
			if withCreator && f.users != nil {
				if creator, _ := f.users.GetByID(found.UserID); creator != nil {
					found.Creator = *creator
				}
			}
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakePosts) Count() (int64, error) {
	f.countCalls++
	return int64(len(f.posts)), nil
}

func (f *fakePosts) List(offset, limit int, newestFirst, withCreator bool) ([]model.Post, error) {
	f.listCalls++

	sorted := make([]*model.Post, len(f.posts))
	copy(sorted, f.posts)
	if newestFirst {
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	}

	var out []model.Post
	for i := offset; i < len(sorted) && len(out) < limit; i++ {
		item := *sorted[i]
		if withCreator && f.users != nil {
			if creator, _ := f.users.GetByID(item.UserID); creator != nil {
				item.Creator = *creator
			}
		}
		out = append(out, item)
	}
	return out, nil
}

// Update mirrors the gorm repository: the stored row and the caller's struct
// both receive a fresh UpdatedAt.
func (f *fakePosts) Update(post *model.Post) error {
	for _, p := range f.posts {
		if p.ID == post.ID {
			f.clock = f.clock.Add(time.Second)
			p.Title = post.Title
			p.Content = post.Content
			p.ImageURL = post.ImageURL
			p.UpdatedAt = f.clock
			post.UpdatedAt = f.clock
			return nil
		}
	}
	return nil
}

type fakeFeedCache struct {
	pages map[int]*model.PostPage
	sets  int
}

func (f *fakeFeedCache) GetPage(_ context.Context, page int) (*model.PostPage, bool, error) {
	if f.pages == nil {
		return nil, false, nil
	}
	data, ok := f.pages[page]
	return data, ok, nil
}

func (f *fakeFeedCache) SetPage(_ context.Context, page int, data *model.PostPage) error {
	if f.pages == nil {
		f.pages = make(map[int]*model.PostPage)
	}
	f.pages[page] = data
	f.sets++
	return nil
}

type recordingPublisher struct {
	published []events.PostEvent
}

func (p *recordingPublisher) PublishPostEvent(_ context.Context, event events.PostEvent) error {
	p.published = append(p.published, event)
	return nil
}
