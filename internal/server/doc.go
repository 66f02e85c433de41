// Package server provides HTTP routing and middleware for the push webhook.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
// [BasicRouter] uses [http.ServeMux] method patterns; [Middleware] registered first wraps outermost.
//
// # Handlers
//
// Custom handlers implement [Handler], which adds Routes to the stdlib interface so a handler
// can register its own patterns. [PushHandler] accepts POST /push with a
// {"notification": {"title", "body", "image"}} payload and hands it on for display.
//
// [Serve] runs a handler until its context ends, then shuts down gracefully.
package server
