package application

import "expvar"

// Process-local counters served at /api/debug/vars.
var (
	swipesRecorded  = expvar.NewInt("timbr_swipes_recorded")
	swipesRejected  = expvar.NewInt("timbr_swipes_rejected")
	signups         = expvar.NewInt("timbr_signups")
	houseCacheHits  = expvar.NewInt("timbr_house_cache_hits")
	houseCacheMiss  = expvar.NewInt("timbr_house_cache_misses")
	welcomeEnqueued = expvar.NewInt("timbr_welcome_emails_enqueued")
)
