// Package domain contains the core business entities of the application:
// users and the items they own. It is independent of any storage or
// delivery mechanism.
package domain
