// package search holds the state machines behind the incremental search
// client: a Session tracking debounce, loading and supersession of stale
// responses, and an Overlay tracking the open/close lifecycle.
//
// Both machines are pure. They never own timers; callers schedule the
// debounce window and the close animation and report back via the Elapsed /
// Finished events, which makes every transition directly testable.
package search
