// Package logger provides leveled logging for a portage app,
// with an optional Sentry backend for shipping errors off-site.
package logger
