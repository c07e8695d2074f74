// Package reconcile decides, field by field, how candidate vessel data from
// external sources is folded into an existing vessel record.
//
// The package is pure: it performs no I/O and never mutates its inputs.
// Fetching candidates and persisting results belong to the caller.
//
// # Architecture
//
// 1. Catalog: the single table of canonical fields. Each entry carries a
// semantic type, a resolution policy and accessors into the Vessel struct.
// Identifier fields (imo_number, mmsi_number, official_number) are pinned to
// prefer_existing in every catalog.
//
// 2. ReliabilityTable: ranks sources from very_low to very_high. Unknown
// sources rank lowest.
//
// 3. Engine: detects conflicts (Detect), resolves them by policy (Resolve),
// and drives whole passes (MergeOne, MergeMany). A panic during a merge is
// recovered into MergeResult.Success = false.
//
// 4. Opportunities: decides which sources are worth querying for a vessel.
//
// 5. Plan / ApplyPlan: turns a merge result into field writes, honouring a
// field selection, manual resolutions, dry-run and confirmation.
//
// 6. CandidateCache: an explicit TTL cache with stampede protection for
// adapters that want one.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(reconcile.WithLogger(logger))
//	result := engine.MergeOne(vessel.Fields(), reconcile.Candidate{
//	    Source: reconcile.SourceMarineTraffic,
//	    Fields: reconcile.Fields{reconcile.FieldLengthOverall: 45.3},
//	})
//	if !result.Success {
//	    return errors.New(result.Error)
//	}
//	plan, err := engine.Plan(vessel.Fields(), result, reconcile.SourceMarineTraffic, opts)
package reconcile
