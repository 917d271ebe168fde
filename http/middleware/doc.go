// Package middleware composes http.Handlers with reusable request
// processing, each exposed as an Adapter chained through Chain.
package middleware
