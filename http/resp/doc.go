// Package resp defines the Response types a controller action produces
// and the Responder that generates them:
// JSON bodies, redirects, and views composed into a root layout.
package resp
