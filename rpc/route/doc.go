// Package route implements the route resolver: the mapping from a
// caller-facing route intent (where should this command be sent) to the
// wire-level route directive placed on the frame. The intent set is closed;
// absent intents map to absent directives so the execution core applies its
// own default routing. Resolution is pure, deterministic and side-effect
// free.
package route
