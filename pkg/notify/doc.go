/*
Package notify implements the ephemeral notification surface shown to authors.

Every Presenter is fire-and-forget: Show never blocks on the author and never fails.
Board keeps notifications visible for a fixed duration (3 seconds), lets them fade
briefly and then removes them, broadcasting each stage to its subscribers (the HTTP
adapter streams them to the admin page over SSE).
*/
package notify
