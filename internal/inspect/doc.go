// Package inspect implements the read-only operations run against a single
// store instance: the bounded key scan, type-dispatched value retrieval,
// batched type resolution and the metadata lookups built on single commands.
//
// Every function takes the store.Client of an already resolved connection and
// issues no writes. Store failures come back as errors.StoreError; local
// validation failures as errors.ValidationError.
package inspect
