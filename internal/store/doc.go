// Package store defines the persistence contract of the application.
//
// Data is kept in named collections, each a single JSON document (usually an
// array of records). Backends in internal/platform implement CollectionStore;
// the typed List and Document helpers layer record semantics on top so that
// services never handle raw bytes.
//
// Every mutation goes through CollectionStore.Update, which serializes
// read-modify-write cycles per collection. Concurrent writers therefore never
// lose each other's records.
package store
