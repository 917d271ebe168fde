// Command example runs a small portage app:
// a home page, a blog read through convention routes and one explicit
// route, and a JSON endpoint, all backed by Postgres when configured.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/portageworks/portage"
	"github.com/portageworks/portage/http/controller"
	"github.com/portageworks/portage/http/resp"
	"github.com/portageworks/portage/porter"
	"github.com/portageworks/portage/postgres"
	"gorm.io/gorm"
)

// A Post is one blog entry.
type Post struct {
	portage.Model

	Title string `db:"title" json:"title"`
	Body  string `db:"body" json:"body"`
}

var migrations = []postgres.Migration{
	{
		Key: "2026-01-05-create-posts",
		Executor: func(tx *gorm.DB) error {
			return tx.Exec(`
				CREATE TABLE posts (
					id SERIAL PRIMARY KEY,
					created_at timestamptz,
					updated_at timestamptz,
					deleted_at timestamptz,
					title text NOT NULL,
					body text NOT NULL DEFAULT ''
				)
			`).Error
		},
	},
}

type HomeController struct{ controller.Base }

func (c *HomeController) Index() (resp.Response, error) {
	return c.HTML(map[string]any{"greeting": "Welcome aboard"}), nil
}

type BlogController struct {
	controller.Base

	db *postgres.DB
}

func (c *BlogController) Actions() map[string]controller.Action {
	return map[string]controller.Action{
		"list":    c.List,
		"show":    c.Show,
		"destroy": c.Destroy,
	}
}

// Authorize keeps destructive actions behind a login.
func (c *BlogController) Authorize(action string) bool {
	if action != "destroy" {
		return true
	}

	return c.Request().Context().Value(portage.CurrentUserKey) != nil
}

func (c *BlogController) Index() (resp.Response, error) { return c.List() }

func (c *BlogController) List() (resp.Response, error) {
	var posts []Post
	if c.db != nil {
		if err := c.db.Order("created_at DESC").Find(&posts); err != nil {
			return nil, err
		}
	}

	return c.HTML(map[string]any{"posts": posts}, "list"), nil
}

func (c *BlogController) Show() (resp.Response, error) {
	id := c.Route().Param("id")
	if id == "" {
		id = c.Route().Param("0")
	}

	var post Post
	if c.db != nil {
		if err := c.db.Where("id = ?", id).First(&post); err != nil {
			return nil, err
		}
	} else {
		post = Post{Title: "Hello, portage", Body: "No database configured; this is a sample post."}
	}

	return c.HTML(map[string]any{"post": post}), nil
}

func (c *BlogController) Destroy() (resp.Response, error) {
	if c.db == nil {
		return nil, fmt.Errorf("%w: no database configured", portage.ErrBadConfig)
	}

	id := c.Route().Param("id")
	if err := c.db.Where("id = ?", id).Delete(new(Post)); err != nil {
		return nil, err
	}

	return c.Redirect("/blog/list"), nil
}

// APIController serves JSON clients.
type APIController struct {
	controller.Base

	db *postgres.DB
}

func (c *APIController) Index() (resp.Response, error) {
	return c.JSON(map[string]any{"status": "ok"}), nil
}

func (c *APIController) Actions() map[string]controller.Action {
	return map[string]controller.Action{"posts": c.Posts}
}

func (c *APIController) Posts() (resp.Response, error) {
	var posts []Post
	if c.db != nil {
		if err := c.db.Find(&posts); err != nil {
			return nil, err
		}
	}

	return c.JSON(posts), nil
}

func main() {
	p, err := porter.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var db *postgres.DB
	if os.Getenv("DATABASE_NAME") != "" || os.Getenv("DATABASE_URL") != "" {
		db, err = porter.DefaultDB(p.Env(), migrations)
		if err != nil {
			p.Logger().Fatal(err.Error(), nil)
			os.Exit(1)
		}
	}

	err = p.Register(
		func() controller.Controller { return new(HomeController) },
		func() controller.Controller { return &BlogController{db: db} },
		func() controller.Controller { return &APIController{db: db} },
	)
	if err != nil {
		p.Logger().Fatal(err.Error(), nil)
		os.Exit(1)
	}

	if err := p.Handle(http.MethodGet, "/posts/{id}", "Blog", "show"); err != nil {
		p.Logger().Fatal(err.Error(), nil)
		os.Exit(1)
	}

	if err := p.Guide(); err != nil {
		p.Logger().Fatal(err.Error(), nil)
		os.Exit(1)
	}
}
