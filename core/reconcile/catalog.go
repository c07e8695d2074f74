package reconcile

import (
	"fmt"
	"math"
	"sync"
	"time"

	"vessel-manager/core/utils"
)

// FieldSpec describes one canonical field.
type FieldSpec struct {
	Name   FieldName `json:"name"`
	Type   FieldType `json:"type"`
	Policy Policy    `json:"policy"`

	// ref returns a pointer to the backing struct field.
	ref func(*Vessel) any
}

// identifierFields are pinned to PolicyPreferExisting in every catalog.
var identifierFields = map[FieldName]struct{}{
	FieldIMONumber:      {},
	FieldMMSINumber:     {},
	FieldOfficialNumber: {},
}

// IsIdentifier reports whether name is a protected identifier field.
func IsIdentifier(name FieldName) bool {
	_, ok := identifierFields[name]
	return ok
}

func defaultSpecs() []FieldSpec {
	return []FieldSpec{
		{FieldVesselName, FieldString, PolicyPreferReliable, func(v *Vessel) any { return &v.VesselName }},
		{FieldIMONumber, FieldString, PolicyPreferExisting, func(v *Vessel) any { return &v.IMONumber }},
		{FieldMMSINumber, FieldString, PolicyPreferExisting, func(v *Vessel) any { return &v.MMSINumber }},
		{FieldCallSign, FieldString, PolicyPreferReliable, func(v *Vessel) any { return &v.CallSign }},
		{FieldOfficialNumber, FieldString, PolicyPreferExisting, func(v *Vessel) any { return &v.OfficialNumber }},

		{FieldVesselType, FieldEnum, PolicyPreferReliable, func(v *Vessel) any { return &v.VesselType }},
		{FieldFlagState, FieldString, PolicyPreferReliable, func(v *Vessel) any { return &v.FlagState }},
		{FieldPortOfRegistry, FieldString, PolicyPreferReliable, func(v *Vessel) any { return &v.PortOfRegistry }},
		{FieldClassificationSociety, FieldEnum, PolicyManual, func(v *Vessel) any { return &v.ClassificationSociety }},
		{FieldClassNotation, FieldString, PolicyManual, func(v *Vessel) any { return &v.ClassNotation }},

		{FieldLengthOverall, FieldNumeric, PolicyPreferReliable, func(v *Vessel) any { return &v.LengthOverall }},
		{FieldLengthWaterline, FieldNumeric, PolicyPreferReliable, func(v *Vessel) any { return &v.LengthWaterline }},
		{FieldBeam, FieldNumeric, PolicyPreferReliable, func(v *Vessel) any { return &v.Beam }},
		{FieldDraft, FieldNumeric, PolicyPreferReliable, func(v *Vessel) any { return &v.Draft }},
		{FieldDepth, FieldNumeric, PolicyPreferReliable, func(v *Vessel) any { return &v.Depth }},
		{FieldAirDraft, FieldNumeric, PolicyPreferReliable, func(v *Vessel) any { return &v.AirDraft }},
		{FieldGrossTonnage, FieldNumeric, PolicyPreferReliable, func(v *Vessel) any { return &v.GrossTonnage }},
		{FieldNetTonnage, FieldNumeric, PolicyPreferReliable, func(v *Vessel) any { return &v.NetTonnage }},
		{FieldDeadweight, FieldNumeric, PolicyPreferReliable, func(v *Vessel) any { return &v.Deadweight }},
		{FieldDisplacement, FieldNumeric, PolicyPreferReliable, func(v *Vessel) any { return &v.Displacement }},

		{FieldYearBuilt, FieldNumeric, PolicyPreferReliable, func(v *Vessel) any { return &v.YearBuilt }},
		{FieldBuilder, FieldString, PolicyPreferComplete, func(v *Vessel) any { return &v.Builder }},
		{FieldBuildLocation, FieldString, PolicyPreferComplete, func(v *Vessel) any { return &v.BuildLocation }},
		{FieldHullMaterial, FieldEnum, PolicyPreferReliable, func(v *Vessel) any { return &v.HullMaterial }},
		{FieldHullNumber, FieldString, PolicyPreferReliable, func(v *Vessel) any { return &v.HullNumber }},
		{FieldDesignCategory, FieldEnum, PolicyPreferReliable, func(v *Vessel) any { return &v.DesignCategory }},
		{FieldBuildStandards, FieldList, PolicyPreferReliable, func(v *Vessel) any { return &v.BuildStandards }},
		{FieldSurveyDate, FieldDate, PolicyPreferReliable, func(v *Vessel) any { return &v.SurveyDate }},
		{FieldCertificateExp, FieldDate, PolicyPreferReliable, func(v *Vessel) any { return &v.CertificateExp }},

		{FieldDescription, FieldText, PolicyPreferComplete, func(v *Vessel) any { return &v.Description }},
		{FieldNotes, FieldText, PolicyPreferReliable, func(v *Vessel) any { return &v.Notes }},
		{FieldHomePort, FieldString, PolicyPreferReliable, func(v *Vessel) any { return &v.HomePort }},

		{FieldYachtCategory, FieldEnum, PolicyPreferReliable, func(v *Vessel) any { return &v.YachtCategory }},
		{FieldSuperyacht, FieldBoolean, PolicyPreferReliable, func(v *Vessel) any { return &v.Superyacht }},
		{FieldCommercial, FieldBoolean, PolicyPreferReliable, func(v *Vessel) any { return &v.Commercial }},
		{FieldGuestCabins, FieldNumeric, PolicyPreferReliable, func(v *Vessel) any { return &v.GuestCabins }},
		{FieldCrewCabins, FieldNumeric, PolicyPreferReliable, func(v *Vessel) any { return &v.CrewCabins }},
		{FieldGuestCapacity, FieldNumeric, PolicyPreferComplete, func(v *Vessel) any { return &v.GuestCapacity }},
		{FieldCrewCapacity, FieldNumeric, PolicyPreferComplete, func(v *Vessel) any { return &v.CrewCapacity }},
		{FieldMaxSpeed, FieldNumeric, PolicyPreferComplete, func(v *Vessel) any { return &v.MaxSpeed }},
		{FieldCruiseSpeed, FieldNumeric, PolicyPreferComplete, func(v *Vessel) any { return &v.CruiseSpeed }},
		{FieldRangeNM, FieldNumeric, PolicyPreferComplete, func(v *Vessel) any { return &v.RangeNM }},
		{FieldFuelCapacity, FieldNumeric, PolicyPreferReliable, func(v *Vessel) any { return &v.FuelCapacity }},
		{FieldWaterCapacity, FieldNumeric, PolicyPreferReliable, func(v *Vessel) any { return &v.WaterCapacity }},
		{FieldPropulsionType, FieldEnum, PolicyPreferReliable, func(v *Vessel) any { return &v.PropulsionType }},
		{FieldMainEngines, FieldString, PolicyPreferReliable, func(v *Vessel) any { return &v.MainEngines }},
		{FieldEnginePower, FieldNumeric, PolicyPreferReliable, func(v *Vessel) any { return &v.EnginePower }},
		{FieldImages, FieldList, PolicyPreferReliable, func(v *Vessel) any { return &v.Images }},
		{FieldCruisingAreas, FieldList, PolicyPreferReliable, func(v *Vessel) any { return &v.CruisingAreas }},

		{FieldLastPort, FieldString, PolicyPreferNewer, func(v *Vessel) any { return &v.LastPort }},
		{FieldDestination, FieldString, PolicyPreferNewer, func(v *Vessel) any { return &v.Destination }},
		{FieldETA, FieldString, PolicyPreferNewer, func(v *Vessel) any { return &v.ETA }},
	}
}

// Catalog is the single table of canonical fields shared by detection,
// resolution and coercion. It is immutable after construction.
type Catalog struct {
	specs []FieldSpec
	index map[FieldName]int
}

// NewCatalog builds a catalog with optional policy overrides. Overrides for
// identifier fields and for unknown names are ignored.
func NewCatalog(overrides map[FieldName]Policy) *Catalog {
	specs := defaultSpecs()
	c := &Catalog{specs: specs, index: make(map[FieldName]int, len(specs))}
	for i := range specs {
		c.index[specs[i].Name] = i
	}
	for name, policy := range overrides {
		i, ok := c.index[name]
		if !ok || IsIdentifier(name) {
			continue
		}
		c.specs[i].Policy = policy
	}
	for name := range identifierFields {
		c.specs[c.index[name]].Policy = PolicyPreferExisting
	}
	return c
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *Catalog
)

// DefaultCatalog returns the shared catalog without overrides.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		defaultCatalog = NewCatalog(nil)
	})
	return defaultCatalog
}

// Lookup returns the spec for a canonical field.
func (c *Catalog) Lookup(name FieldName) (FieldSpec, bool) {
	i, ok := c.index[name]
	if !ok {
		return FieldSpec{}, false
	}
	return c.specs[i], true
}

// Type returns the field's semantic type, FieldString for unknown names.
func (c *Catalog) Type(name FieldName) FieldType {
	if spec, ok := c.Lookup(name); ok {
		return spec.Type
	}
	return FieldString
}

// Policy returns the field's policy, PolicyPreferReliable for unknown names.
func (c *Catalog) Policy(name FieldName) Policy {
	if spec, ok := c.Lookup(name); ok {
		return spec.Policy
	}
	return PolicyPreferReliable
}

// Specs returns the catalog entries in declaration order.
func (c *Catalog) Specs() []FieldSpec {
	return append([]FieldSpec(nil), c.specs...)
}

// Names returns canonical field names in declaration order.
func (c *Catalog) Names() []FieldName {
	names := make([]FieldName, len(c.specs))
	for i, s := range c.specs {
		names[i] = s.Name
	}
	return names
}

// Get reads a field from the vessel in its canonical representation.
func (c *Catalog) Get(v *Vessel, name FieldName) any {
	spec, ok := c.Lookup(name)
	if !ok {
		return nil
	}
	switch p := spec.ref(v).(type) {
	case *string:
		return *p
	case *float64:
		return *p
	case *int:
		return float64(*p)
	case *bool:
		return *p
	case **time.Time:
		if *p == nil {
			return nil
		}
		return **p
	case *[]string:
		return append([]string(nil), (*p)...)
	default:
		return nil
	}
}

// Set writes a canonical value onto the vessel. A nil value clears the field.
func (c *Catalog) Set(v *Vessel, name FieldName, value any) error {
	spec, ok := c.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}

	switch p := spec.ref(v).(type) {
	case *string:
		if value == nil {
			*p = ""
			return nil
		}
		*p = utils.ToString(value)
	case *float64:
		if value == nil {
			*p = 0
			return nil
		}
		f, ok := utils.ToFloat(value)
		if !ok {
			return fmt.Errorf("%w: %s expects a number, got %T", ErrInvalidValue, name, value)
		}
		*p = f
	case *int:
		if value == nil {
			*p = 0
			return nil
		}
		f, ok := utils.ToFloat(value)
		if !ok {
			return fmt.Errorf("%w: %s expects a number, got %T", ErrInvalidValue, name, value)
		}
		*p = int(math.Round(f))
	case *bool:
		if value == nil {
			*p = false
			return nil
		}
		*p = utils.ToBool(value)
	case **time.Time:
		if value == nil {
			*p = nil
			return nil
		}
		t, ok := value.(time.Time)
		if !ok {
			return fmt.Errorf("%w: %s expects a date, got %T", ErrInvalidValue, name, value)
		}
		*p = &t
	case *[]string:
		if value == nil {
			*p = nil
			return nil
		}
		list, ok := value.([]string)
		if !ok {
			return fmt.Errorf("%w: %s expects a list, got %T", ErrInvalidValue, name, value)
		}
		*p = append([]string(nil), list...)
	}
	return nil
}

// Snapshot returns all present fields of v.
func (c *Catalog) Snapshot(v *Vessel) Fields {
	out := Fields{}
	for _, spec := range c.specs {
		val := c.Get(v, spec.Name)
		if isAbsent(val) {
			continue
		}
		out[spec.Name] = val
	}
	return out
}

// Apply writes fields onto v in catalog order. Unknown names are rejected
// before anything is written; a value that does not fit its field stops the
// walk with that field's error, leaving earlier fields set.
func (c *Catalog) Apply(v *Vessel, fields Fields) error {
	for name := range fields {
		if _, ok := c.index[name]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
	}
	for _, spec := range c.specs {
		val, ok := fields[spec.Name]
		if !ok {
			continue
		}
		if err := c.Set(v, spec.Name, val); err != nil {
			return err
		}
	}
	return nil
}
