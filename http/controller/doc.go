// Package controller defines the Controller contract the dispatcher
// drives and the Base type concrete controllers embed for response
// helpers and per-request state.
package controller
