package store

// KV is the persistent client-storage port the cart store writes through.
//
// Contract:
// - Get returns (value, true, nil) when the key exists, ("", false, nil)
//   when absent.
// - Failures are non-fatal to the shopping flow: callers log and continue
//   with in-memory state.
//
// Cross-tab/cross-process writers are NOT coordinated; last writer wins.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}
