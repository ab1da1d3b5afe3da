// Package internalcheck holds static policy tests over the module's source.
//
// The checks load packages with golang.org/x/tools/go/packages and inspect
// their syntax. They enforce that cgo stays confined to the backend package
// and that native objects are never released from a finalizer.
//
// # Internal Use Only
//
// This package exports nothing and is not meant to be imported.
package internalcheck
