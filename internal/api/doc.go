// Package api exposes the review, session, pet, shop and promo operations
// over HTTP. Handlers validate requests, call the services, and map
// sentinel errors onto stable status codes and sanitized messages.
package api
