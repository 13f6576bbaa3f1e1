// Package dedupe holds shared singleflight groups that collapse concurrent
// identical reads into one storage query.
package dedupe

import "golang.org/x/sync/singleflight"

// LeaderboardGroup deduplicates leaderboard queries keyed by "top:<limit>".
var LeaderboardGroup singleflight.Group

// MarketplaceGroup deduplicates marketplace listing queries.
var MarketplaceGroup singleflight.Group
