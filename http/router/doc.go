// Package router resolves incoming request paths into Routes,
// the controller-action-parameters triples the dispatcher acts on.
package router
