package reconcile

import (
	"fmt"
	"time"
)

// Reliability ranks how far a source can be trusted. Higher is better.
type Reliability int

const (
	// ReliabilityVeryLow is unverified user input and any unknown source.
	ReliabilityVeryLow Reliability = iota + 1
	// ReliabilityLow covers manual entry and imported content.
	ReliabilityLow
	// ReliabilityMedium covers directory listings and our own database.
	ReliabilityMedium
	// ReliabilityHigh covers tracking APIs and classification registers.
	ReliabilityHigh
	// ReliabilityVeryHigh is reserved for authoritative registries.
	ReliabilityVeryHigh
)

var reliabilityNames = map[Reliability]string{
	ReliabilityVeryLow:  "very_low",
	ReliabilityLow:      "low",
	ReliabilityMedium:   "medium",
	ReliabilityHigh:     "high",
	ReliabilityVeryHigh: "very_high",
}

func (r Reliability) String() string {
	if name, ok := reliabilityNames[r]; ok {
		return name
	}
	return fmt.Sprintf("reliability(%d)", int(r))
}

// MarshalText renders the level by name at JSON/YAML boundaries.
func (r Reliability) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText parses a level name.
func (r *Reliability) UnmarshalText(text []byte) error {
	for level, name := range reliabilityNames {
		if name == string(text) {
			*r = level
			return nil
		}
	}
	return fmt.Errorf("unknown reliability %q", string(text))
}

// Source tags the origin of a candidate data set.
// The set is open: adapters may introduce new tags, which resolve to
// ReliabilityVeryLow until registered in a ReliabilityTable.
type Source string

const (
	SourceIMORegistry           Source = "imo_registry"
	SourceLloyds                Source = "lloyds"
	SourceClassificationSociety Source = "classification_society"
	SourceMarineTraffic         Source = "marinetraffic"
	SourceBoatInternational     Source = "boat_international"
	SourceWordPress             Source = "wordpress"
	SourceDatabase              Source = "database"
	SourceManualEntry           Source = "manual_entry"
	SourceUserInput             Source = "user_input"
)

// FieldType is the semantic type of a canonical field. It selects the
// comparison rule and the coercion applied to raw values.
type FieldType int

const (
	FieldString FieldType = iota
	FieldNumeric
	FieldText
	FieldEnum
	FieldBoolean
	FieldDate
	FieldList
)

var fieldTypeNames = []string{"string", "numeric", "text", "enum", "boolean", "date", "list"}

func (t FieldType) String() string {
	if int(t) >= 0 && int(t) < len(fieldTypeNames) {
		return fieldTypeNames[t]
	}
	return fmt.Sprintf("field_type(%d)", int(t))
}

// MarshalText renders the type by name.
func (t FieldType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses a type name.
func (t *FieldType) UnmarshalText(text []byte) error {
	for i, n := range fieldTypeNames {
		if n == string(text) {
			*t = FieldType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown field type %q", text)
}

// Policy decides how a conflict on a field is resolved.
type Policy int

const (
	PolicyPreferReliable Policy = iota
	PolicyPreferExisting
	PolicyPreferNew
	PolicyPreferComplete
	// PolicyPreferNewer has no timestamp to compare and behaves like PolicyPreferNew.
	PolicyPreferNewer
	PolicyManual
)

var policyNames = []string{
	"prefer_reliable", "prefer_existing", "prefer_new", "prefer_complete", "prefer_newer", "manual",
}

func (p Policy) String() string {
	if int(p) >= 0 && int(p) < len(policyNames) {
		return policyNames[p]
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// MarshalText renders the policy by name.
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses a policy name.
func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePolicy converts a policy name to a Policy.
func ParsePolicy(name string) (Policy, error) {
	for i, n := range policyNames {
		if n == name {
			return Policy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown policy %q", name)
}

// IdentifierType names the identifier an opportunity searches by.
type IdentifierType string

const (
	IdentifierIMO  IdentifierType = "imo"
	IdentifierMMSI IdentifierType = "mmsi"
	IdentifierName IdentifierType = "name"
)

// FieldName is a canonical vessel field name.
type FieldName string

// Fields maps canonical field names to typed values: float64 for numeric,
// string for string/text/enum, bool, time.Time for dates and []string for lists.
type Fields map[FieldName]any

// Clone returns a shallow copy. List values are copied so the clone can be
// modified without touching the receiver.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		if list, ok := v.([]string); ok {
			v = append([]string(nil), list...)
		}
		out[k] = v
	}
	return out
}

// Candidate is one source's view of a vessel, already mapped to canonical fields.
type Candidate struct {
	Source Source `json:"source" yaml:"source"`
	Fields Fields `json:"fields" yaml:"fields"`
}

// MergeConflict describes a disagreement on one field. It is never mutated
// after detection; resolution produces a Decision instead.
type MergeConflict struct {
	Field                FieldName   `json:"field" yaml:"field"`
	ExistingValue        any         `json:"existing_value" yaml:"existing_value"`
	CandidateValue       any         `json:"candidate_value" yaml:"candidate_value"`
	ExistingSource       Source      `json:"existing_source" yaml:"existing_source"`
	CandidateSource      Source      `json:"candidate_source" yaml:"candidate_source"`
	ExistingReliability  Reliability `json:"existing_reliability" yaml:"existing_reliability"`
	CandidateReliability Reliability `json:"candidate_reliability" yaml:"candidate_reliability"`
	FieldType            FieldType   `json:"field_type" yaml:"field_type"`
	Policy               Policy      `json:"suggested_resolution" yaml:"suggested_resolution"`
	Confidence           float64     `json:"confidence" yaml:"confidence"`
}

// Decision is the outcome of resolving a conflict.
type Decision struct {
	Field     FieldName `json:"field"`
	Value     any       `json:"value"`
	Manual    bool      `json:"manual"`
	ActorID   string    `json:"actor_id,omitempty"`
	DecidedAt time.Time `json:"decided_at"`
}

// MergeResult is the outcome of one merge invocation. Callers must check
// Success before trusting Merged.
type MergeResult struct {
	Success        bool            `json:"success" yaml:"success"`
	Merged         Fields          `json:"merged" yaml:"merged"`
	Conflicts      []MergeConflict `json:"conflicts" yaml:"conflicts"`
	AutoResolved   []FieldName     `json:"auto_resolved" yaml:"auto_resolved"`
	ManualRequired []FieldName     `json:"manual_required" yaml:"manual_required"`
	Warnings       []string        `json:"warnings" yaml:"warnings"`
	Error          string          `json:"error_message,omitempty" yaml:"error_message,omitempty"`
}

// IsManual reports whether field is still waiting for a manual choice.
func (r MergeResult) IsManual(field FieldName) bool {
	for _, f := range r.ManualRequired {
		if f == field {
			return true
		}
	}
	return false
}

// Conflict returns the last conflict recorded for field.
func (r MergeResult) Conflict(field FieldName) (MergeConflict, bool) {
	for i := len(r.Conflicts) - 1; i >= 0; i-- {
		if r.Conflicts[i].Field == field {
			return r.Conflicts[i], true
		}
	}
	return MergeConflict{}, false
}

func emptyResult() MergeResult {
	return MergeResult{
		Merged:         Fields{},
		Conflicts:      []MergeConflict{},
		AutoResolved:   []FieldName{},
		ManualRequired: []FieldName{},
		Warnings:       []string{},
	}
}

// EnhancementOpportunity is a predicted chance to enrich a vessel from a source.
type EnhancementOpportunity struct {
	Source          Source         `json:"source" yaml:"source"`
	IdentifierType  IdentifierType `json:"identifier_type" yaml:"identifier_type"`
	IdentifierValue string         `json:"identifier_value" yaml:"identifier_value"`
	Confidence      float64        `json:"confidence" yaml:"confidence"`
	Description     string         `json:"description" yaml:"description"`
	EstimatedFields int            `json:"estimated_fields" yaml:"estimated_fields"`
}
