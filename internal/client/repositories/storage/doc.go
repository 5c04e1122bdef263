// Package storage is the client's local key-value store: the terminal
// counterpart of the browser's origin-scoped local storage.
//
// Every value lives under (origin, key). A Repository is bound to one origin
// at construction, so sessions for different API hosts never collide.
// InitDatabase opens the SQLite file and applies the embedded goose
// migrations.
package storage
