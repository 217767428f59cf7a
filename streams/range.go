package streams

// EffectiveRange resolves the concrete half-open interval [start, end)
// during which a receiver actually streams.
//
// A configured start of 0 resolves to updateTime (the moment the
// configuration was applied). A configured duration of 0 resolves the end to
// defaultEnd, the shared exhaustion time of all unbounded receivers; a
// bounded duration resolves it to start+duration. The resolved range is then
// clipped into [startCap, endCap]; an inverted clip collapses to the empty
// range [start, start).
//
// Queries about the future pass endCap=MaxTimestamp; balance reconstruction
// as of time t passes endCap=t.
func EffectiveRange(r Receiver, updateTime, defaultEnd, startCap, endCap uint64) (start, end uint64) {
	start = r.Config.Start
	if start == 0 {
		start = updateTime
	}
	if r.Config.Duration == 0 {
		end = defaultEnd
	} else {
		end = start + r.Config.Duration
		if end < start { // past MaxTimestamp
			end = MaxTimestamp
		}
	}
	if start < startCap {
		start = startCap
	}
	if end > endCap {
		end = endCap
	}
	if end < start {
		end = start
	}
	return start, end
}
