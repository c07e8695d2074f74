package reconcile

// ReliabilityTable maps sources to reliability levels.
type ReliabilityTable map[Source]Reliability

// DefaultReliability returns the built-in ranking of known sources.
func DefaultReliability() ReliabilityTable {
	return ReliabilityTable{
		SourceIMORegistry:           ReliabilityVeryHigh,
		SourceMarineTraffic:         ReliabilityHigh,
		SourceLloyds:                ReliabilityHigh,
		SourceClassificationSociety: ReliabilityHigh,
		SourceBoatInternational:     ReliabilityMedium,
		SourceDatabase:              ReliabilityMedium,
		SourceWordPress:             ReliabilityLow,
		SourceManualEntry:           ReliabilityLow,
		SourceUserInput:             ReliabilityVeryLow,
	}
}

// Lookup returns the level for a source. Unknown sources rank lowest.
func (t ReliabilityTable) Lookup(s Source) Reliability {
	if r, ok := t[s]; ok {
		return r
	}
	return ReliabilityVeryLow
}

// With returns a copy of the table with s ranked at r.
func (t ReliabilityTable) With(s Source, r Reliability) ReliabilityTable {
	out := make(ReliabilityTable, len(t)+1)
	for k, v := range t {
		out[k] = v
	}
	out[s] = r
	return out
}
