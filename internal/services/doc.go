// Package services defines the [Client] interface for the remote movie API and implements it over HTTP.
//
// # Client Interface
//
// View controllers depend on [Client] only, so tests substitute an in-memory double.
//
// # HTTP Implementation
//
// [MovieAPI] talks JSON to the API under /api/v1:
//   - Bearer tokens are attached by an [oauth2.Transport] whose source reads the session on every request
//   - Outgoing calls share a [rate.Limiter] sized from the api config section
//   - Every request carries an X-Request-ID header for correlating client and server logs
//
// # Error Handling
//
// Non-2xx responses map to typed errors from the shared package:
//   - [shared.ErrNotAuthenticated] : 401, or no token in the session
//   - [shared.ErrForbidden] : 403
//   - [shared.ErrServiceUnavailable] : 502, 503, 504
//   - [shared.ErrAPIRequest] : any other status >= 400
//
// # Raw Requests
//
// [APIService] issues unparsed GET/POST calls for the `api` debugging commands.
package services
