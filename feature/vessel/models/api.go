package models

import (
	"vessel-manager/core/reconcile"
)

// EnhanceRequest selects what to look up. An empty request uses the best
// opportunity; a source alone uses that source's best opportunity.
type EnhanceRequest struct {
	Source          reconcile.Source         `json:"source,omitempty"`
	IdentifierType  reconcile.IdentifierType `json:"identifier_type,omitempty"`
	IdentifierValue string                   `json:"identifier_value,omitempty"`
}

// EnhanceResult is a fetched candidate merged against the stored vessel,
// together with the writes applying it would make.
type EnhanceResult struct {
	VesselID    uint                             `json:"vessel_id"`
	Opportunity reconcile.EnhancementOpportunity `json:"opportunity"`
	Candidate   reconcile.Candidate              `json:"candidate"`
	Result      reconcile.MergeResult            `json:"result"`
	Plan        *reconcile.PatchPlan             `json:"plan,omitempty"`
	Summary     reconcile.ConflictSummary        `json:"summary"`
}

// ApplyRequest applies a candidate to a stored vessel.
type ApplyRequest struct {
	Source         reconcile.Source                             `json:"source"`
	Fields         map[string]any                               `json:"fields"`
	SelectedFields []reconcile.FieldName                        `json:"selected_fields,omitempty"`
	Resolutions    map[reconcile.FieldName]reconcile.Resolution `json:"resolutions,omitempty"`
	ActorID        string                                       `json:"actor_id"`
	DryRun         bool                                         `json:"dry_run,omitempty"`
	Confirmed      bool                                         `json:"confirmed"`
}

// ApplyResult reports what an apply call did.
type ApplyResult struct {
	VesselID uint                 `json:"vessel_id"`
	Plan     *reconcile.PatchPlan `json:"plan"`
	Applied  int                  `json:"applied"`
	Dropped  []string             `json:"dropped_fields,omitempty"`
}

// RawCandidate is an uncoerced candidate as received over the API or from a file.
type RawCandidate struct {
	Source reconcile.Source `json:"source" yaml:"source"`
	Fields map[string]any   `json:"fields" yaml:"fields"`
}

// MergeRequest is an offline merge of raw records.
type MergeRequest struct {
	Existing       map[string]any   `json:"existing"`
	ExistingSource reconcile.Source `json:"existing_source,omitempty"`
	Candidates     []RawCandidate   `json:"candidates"`
	AutoResolve    *bool            `json:"auto_resolve,omitempty"`
}

// MergeResponse carries the merge result and its summaries.
type MergeResponse struct {
	Result  reconcile.MergeResult     `json:"result" yaml:"result"`
	Summary reconcile.ConflictSummary `json:"summary" yaml:"summary"`
	Dropped map[string][]string       `json:"dropped_fields,omitempty" yaml:"dropped_fields,omitempty"`
	Report  string                    `json:"report" yaml:"report"`
}

// BatchItem is one vessel's outcome in a batch run.
type BatchItem struct {
	VesselID uint                   `json:"vessel_id" yaml:"vessel_id"`
	Source   reconcile.Source       `json:"source,omitempty" yaml:"source,omitempty"`
	Result   *reconcile.MergeResult `json:"result,omitempty" yaml:"result,omitempty"`
	Applied  int                    `json:"applied" yaml:"applied"`
	Pending  int                    `json:"pending" yaml:"pending"`
	Error    string                 `json:"error,omitempty" yaml:"error,omitempty"`
}
