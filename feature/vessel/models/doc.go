// Package models defines the persisted vessel tables and the request and
// response shapes of the vessel feature.
package models
