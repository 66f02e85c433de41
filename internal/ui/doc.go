// Package ui implements the interactive terminal interface using bubbletea's Elm architecture.
//
// [App] routes between three screens, each wrapping a controller from the views package:
//  1. Movies (route "/"): a grid of movie cards, see [PosterCard] and [BrowseCard]
//  2. Dashboard: account details, plan progress ring and the cancel-subscription dialog
//  3. WishList: a filterable list of saved movies
//
// Controllers announce state changes on a channel; App waits on it with a command per activation
// and rebuilds the screen on each update. Routes with no terminal screen (movie pages, the admin
// panel, subscription checkout) are handed to an [Opener], usually the web browser.
//
// Push messages that arrive while the terminal has focus are delivered with [PushMsg] and shown as a toast.
package ui
