// Package auth verifies the credentials a request presents.
//
// Two schemes are supported: JWTs minted and signed by the application
// itself, and Google OAuth2 tokens exchanged for the account they
// belong to. Both resolve into an identity a handler can act on.
package auth
