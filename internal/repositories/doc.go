// Package repositories implements SQLite persistence for client-side state.
//
// Each repository implements models.Repository[T] for a specific entity type.
//
// Key Implementations:
//   - [SessionRepository] : key-value session entries (token, plan, cached user)
//
// Session entries replace browser local storage: they outlive a single command
// invocation so `auth login` and a later `dashboard` share the same token.
package repositories
