// Package service contains the application use cases: registering and
// reading users, item CRUD, and login. Every operation runs against the
// caller's session handle (a store.DBTX) and obtains stores bound to it
// from a store.Factory, so a request never touches more than one handle.
//
// Services return store, domain and auth sentinel errors wrapped with
// context; the API layer maps them to HTTP status codes.
package service
