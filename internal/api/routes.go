package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes bundles the handlers and per-route middleware mounted by
// RegisterRoutes. LoginLimit may be nil to disable login throttling.
type Routes struct {
	Index *IndexHandler
	Auth  *AuthHandler
	Users *UserHandler
	Items *ItemHandler

	Authenticate func(http.Handler) http.Handler
	Session      func(http.Handler) http.Handler
	LoginLimit   func(http.Handler) http.Handler
}

// RegisterRoutes mounts the API on r. Paths are registered without trailing
// slashes; the router is expected to strip them from requests.
//
// Authentication runs before a session handle is leased so rejected
// requests never touch the database.
func RegisterRoutes(r chi.Router, rt Routes) {
	r.Get("/", rt.Index.Index)
	r.Get("/health", rt.Index.Health)

	r.Group(func(r chi.Router) {
		if rt.LoginLimit != nil {
			r.Use(rt.LoginLimit)
		}
		r.Use(rt.Session)
		r.Post("/login", rt.Auth.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(rt.Session)
		r.Post("/users", rt.Users.CreateUser)
	})

	r.Group(func(r chi.Router) {
		r.Use(rt.Authenticate)
		r.Use(rt.Session)

		r.Get("/users", rt.Users.ListUsers)
		r.Get("/users/{id}", rt.Users.GetUser)
		r.Get("/user", rt.Users.GetCurrentUser)

		r.Post("/user/{id}/item", rt.Items.CreateItem)
		r.Get("/user/item/{id}", rt.Items.GetItem)
		r.Put("/user/item/{id}", rt.Items.UpdateItem)
		r.Delete("/user/item/{id}", rt.Items.DeleteItem)

		r.Get("/items", rt.Items.ListItems)
	})
}
