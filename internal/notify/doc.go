// Package notify relays push messages from a messaging provider to the desktop.
//
// A [Bridge] registers an [Identity] to derive its topic, listens on a [Source]
// and shows each message with a [Displayer]. Messages that arrive while the
// terminal UI has focus go to a foreground handler instead.
//
// Sources:
//   - [RedisSource]: pub/sub channel named after the topic
//   - [AMQPSource]: auto-ack queue bound to the topic on the notifications exchange
//   - [WebhookSource]: HTTP POST /push served by a server.BasicRouter
//
// There is no acknowledgement, retry or delivery confirmation: a message that
// fails to decode or display is logged and dropped.
package notify
