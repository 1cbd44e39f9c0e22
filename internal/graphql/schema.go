// Package graphql exposes the blog operations as a graphql-go schema. The
// resolvers adapt untyped argument bags into typed service inputs and unwrap
// service errors so status and details reach the transport as extensions.
package graphql

import (
	"strconv"
	"time"

	"github.com/graphql-go/graphql"

	"blogql/internal/app"
	"blogql/internal/model"
	"blogql/internal/pkg/apperr"
)

type Resolver struct {
	auth  *app.AuthService
	posts *app.PostService
}

func NewSchema(auth *app.AuthService, posts *app.PostService) (graphql.Schema, error) {
	r := &Resolver{auth: auth, posts: posts}

	postType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"_id": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.ID),
				Resolve: resolvePost(func(p *model.Post) (interface{}, error) { return formatID(p.ID), nil }),
			},
			"title": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: resolvePost(func(p *model.Post) (interface{}, error) { return p.Title, nil }),
			},
			"content": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: resolvePost(func(p *model.Post) (interface{}, error) { return p.Content, nil }),
			},
			"imageUrl": &graphql.Field{
				Type:    graphql.String,
				Resolve: resolvePost(func(p *model.Post) (interface{}, error) { return p.ImageURL, nil }),
			},
			"createdAt": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: resolvePost(func(p *model.Post) (interface{}, error) { return p.CreatedAt.Format(time.RFC3339), nil }),
			},
			"updatedAt": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: resolvePost(func(p *model.Post) (interface{}, error) { return p.UpdatedAt.Format(time.RFC3339), nil }),
			},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"_id": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.ID),
				Resolve: resolveUser(func(u *model.User) (interface{}, error) { return formatID(u.ID), nil }),
			},
			"name": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: resolveUser(func(u *model.User) (interface{}, error) { return u.Name, nil }),
			},
			"email": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: resolveUser(func(u *model.User) (interface{}, error) { return u.Email, nil }),
			},
			"status": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: resolveUser(func(u *model.User) (interface{}, error) { return u.Status, nil }),
			},
		},
	})

	// creator/posts are mutually recursive, so they attach after both types exist.
	postType.AddFieldConfig("creator", &graphql.Field{
		Type:    graphql.NewNonNull(userType),
		Resolve: resolvePost(func(p *model.Post) (interface{}, error) { return p.Creator, nil }),
	})
	userType.AddFieldConfig("posts", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(postType))),
		Resolve: resolveUser(func(u *model.User) (interface{}, error) {
			if u.Posts == nil {
				return []model.Post{}, nil
			}
			return u.Posts, nil
		}),
	})

	authDataType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthData",
		Fields: graphql.Fields{
			"token": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					result, _ := p.Source.(*app.LoginResult)
					if result == nil {
						return nil, nil
					}
					return result.Token, nil
				},
			},
			"userId": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					result, _ := p.Source.(*app.LoginResult)
					if result == nil {
						return nil, nil
					}
					return formatID(result.UserID), nil
				},
			},
		},
	})

	postDataType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PostData",
		Fields: graphql.Fields{
			"posts": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(postType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					page, _ := p.Source.(*model.PostPage)
					if page == nil {
						return nil, nil
					}
					return page.Posts, nil
				},
			},
			"totalPosts": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					page, _ := p.Source.(*model.PostPage)
					if page == nil {
						return nil, nil
					}
					return int(page.TotalPosts), nil
				},
			},
		},
	})

	userInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserInputData",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	postInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "PostInputData",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"content":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"imageUrl": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"login": &graphql.Field{
				Type: graphql.NewNonNull(authDataType),
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.login,
			},
			"posts": &graphql.Field{
				Type: graphql.NewNonNull(postDataType),
				Args: graphql.FieldConfigArgument{
					"page": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
				},
				Resolve: r.listPosts,
			},
			"post": &graphql.Field{
				Type: graphql.NewNonNull(postType),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.getPost,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootMutation",
		Fields: graphql.Fields{
			"createUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"userInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userInputType)},
				},
				Resolve: r.createUser,
			},
			"createPost": &graphql.Field{
				Type: graphql.NewNonNull(postType),
				Args: graphql.FieldConfigArgument{
					"postInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(postInputType)},
				},
				Resolve: r.createPost,
			},
			"updatePost": &graphql.Field{
				Type: graphql.NewNonNull(postType),
				Args: graphql.FieldConfigArgument{
					"id":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"postInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(postInputType)},
				},
				Resolve: r.updatePost,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func (r *Resolver) login(p graphql.ResolveParams) (interface{}, error) {
	result, err := r.auth.Login(app.LoginInput{
		Email:    stringArg(p.Args, "email"),
		Password: stringArg(p.Args, "password"),
	})
	if err != nil {
		return nil, fail(p.Context, err)
	}
	return result, nil
}

func (r *Resolver) listPosts(p graphql.ResolveParams) (interface{}, error) {
	page, err := r.posts.Posts(p.Context, intArg(p.Args, "page", 1))
	if err != nil {
		return nil, fail(p.Context, err)
	}
	return page, nil
}

func (r *Resolver) getPost(p graphql.ResolveParams) (interface{}, error) {
	id, err := parseID(stringArg(p.Args, "id"))
	if err != nil {
		return nil, fail(p.Context, apperr.NewNotFound("No post found!"))
	}
	post, err := r.posts.Post(p.Context, id)
	if err != nil {
		return nil, fail(p.Context, err)
	}
	return post, nil
}

func (r *Resolver) createUser(p graphql.ResolveParams) (interface{}, error) {
	input, _ := p.Args["userInput"].(map[string]interface{})
	user, err := r.auth.CreateUser(app.SignupInput{
		Email:    stringArg(input, "email"),
		Name:     stringArg(input, "name"),
		Password: stringArg(input, "password"),
	})
	if err != nil {
		return nil, fail(p.Context, err)
	}
	return user, nil
}

func (r *Resolver) createPost(p graphql.ResolveParams) (interface{}, error) {
	input, _ := p.Args["postInput"].(map[string]interface{})
	post, err := r.posts.CreatePost(p.Context, app.PostInput{
		Title:    stringArg(input, "title"),
		Content:  stringArg(input, "content"),
		ImageURL: stringArg(input, "imageUrl"),
	})
	if err != nil {
		return nil, fail(p.Context, err)
	}
	return post, nil
}

func (r *Resolver) updatePost(p graphql.ResolveParams) (interface{}, error) {
	id, err := parseID(stringArg(p.Args, "id"))
	if err != nil {
		return nil, fail(p.Context, apperr.NewNotFound("No post found!"))
	}
	input, _ := p.Args["postInput"].(map[string]interface{})
	post, err := r.posts.UpdatePost(p.Context, id, app.PostInput{
		Title:    stringArg(input, "title"),
		Content:  stringArg(input, "content"),
		ImageURL: stringArg(input, "imageUrl"),
	})
	if err != nil {
		return nil, fail(p.Context, err)
	}
	return post, nil
}

func resolvePost(fn func(*model.Post) (interface{}, error)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		switch src := p.Source.(type) {
		case *model.Post:
			return fn(src)
		case model.Post:
			return fn(&src)
		default:
			return nil, nil
		}
	}
}

func resolveUser(fn func(*model.User) (interface{}, error)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		switch src := p.Source.(type) {
		case *model.User:
			return fn(src)
		case model.User:
			return fn(&src)
		default:
			return nil, nil
		}
	}
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func stringArg(args map[string]interface{}, key string) string {
	if args == nil {
		return ""
	}
	value, _ := args[key].(string)
	return value
}

func intArg(args map[string]interface{}, key string, fallback int) int {
	if args == nil {
		return fallback
	}
	if value, ok := args[key].(int); ok {
		return value
	}
	return fallback
}
