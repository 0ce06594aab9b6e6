// Package api handles incoming HTTP requests: routing, request decoding and
// validation, and response formatting. Handlers translate HTTP concerns into
// service calls made with the request's session handle and map service
// errors to status codes in one place (errors.go).
package api
