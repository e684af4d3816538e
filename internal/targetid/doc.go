// internal/targetid/doc.go

/*
Package targetid provides a structured representation for cross-project
target references, based on the canonical format `project:target`.

The target part may be a fallback chain: candidate target names separated
by `|`, tried left to right, e.g. `com.acme:core:package|compile|validate`.
The consumer resolves the chain against the targets that actually exist on
the referenced project and uses the first one present.

Project names contain colons themselves (`group:artifact`), so the target
part is always everything after the last colon.
*/
package targetid
