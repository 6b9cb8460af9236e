package dedupe

// Package dedupe provides the shared singleflight group used to deduplicate
// concurrent character bootstrap requests. Using a centralized
// singleflight.Group ensures only one create runs for a given actor while
// other callers wait for the result.

import "golang.org/x/sync/singleflight"

// CharacterGroup deduplicates get-or-create character requests keyed by the
// decimal actor id (e.g. "42").
var CharacterGroup singleflight.Group
