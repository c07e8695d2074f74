package reconcile

import "time"

// Canonical field names.
const (
	FieldVesselName     FieldName = "vessel_name"
	FieldIMONumber      FieldName = "imo_number"
	FieldMMSINumber     FieldName = "mmsi_number"
	FieldCallSign       FieldName = "call_sign"
	FieldOfficialNumber FieldName = "official_number"

	FieldVesselType            FieldName = "vessel_type"
	FieldFlagState             FieldName = "flag_state"
	FieldPortOfRegistry        FieldName = "port_of_registry"
	FieldClassificationSociety FieldName = "classification_society"
	FieldClassNotation         FieldName = "class_notation"

	FieldLengthOverall   FieldName = "length_overall"
	FieldLengthWaterline FieldName = "length_waterline"
	FieldBeam            FieldName = "beam"
	FieldDraft           FieldName = "draft"
	FieldDepth           FieldName = "depth"
	FieldAirDraft        FieldName = "air_draft"
	FieldGrossTonnage    FieldName = "gross_tonnage"
	FieldNetTonnage      FieldName = "net_tonnage"
	FieldDeadweight      FieldName = "deadweight"
	FieldDisplacement    FieldName = "displacement"

	FieldYearBuilt      FieldName = "year_built"
	FieldBuilder        FieldName = "builder"
	FieldBuildLocation  FieldName = "build_location"
	FieldHullMaterial   FieldName = "hull_material"
	FieldHullNumber     FieldName = "hull_number"
	FieldDesignCategory FieldName = "design_category"
	FieldBuildStandards FieldName = "build_standards"
	FieldSurveyDate     FieldName = "survey_date"
	FieldCertificateExp FieldName = "certificate_expiry"
	FieldDescription    FieldName = "description"
	FieldNotes          FieldName = "notes"
	FieldHomePort       FieldName = "home_port"
	FieldYachtCategory  FieldName = "yacht_category"
	FieldSuperyacht     FieldName = "superyacht_status"
	FieldCommercial     FieldName = "commercial_operation"
	FieldGuestCabins    FieldName = "guest_cabins"
	FieldCrewCabins     FieldName = "crew_cabins"
	FieldGuestCapacity  FieldName = "guest_capacity"
	FieldCrewCapacity   FieldName = "crew_capacity"
	FieldMaxSpeed       FieldName = "max_speed"
	FieldCruiseSpeed    FieldName = "cruise_speed"
	FieldRangeNM        FieldName = "range_nm"
	FieldFuelCapacity   FieldName = "fuel_capacity"
	FieldWaterCapacity  FieldName = "water_capacity"
	FieldPropulsionType FieldName = "propulsion_type"
	FieldMainEngines    FieldName = "main_engines"
	FieldEnginePower    FieldName = "engine_power"
	FieldImages         FieldName = "images"
	FieldCruisingAreas  FieldName = "cruising_areas"
	FieldLastPort       FieldName = "last_port"
	FieldDestination    FieldName = "destination"
	FieldETA            FieldName = "eta"
)

// Vessel is the canonical vessel record. Dimensions are metres, tonnages
// are tonnes, speeds are knots. Zero values mean the field is unknown.
type Vessel struct {
	VesselName     string `json:"vessel_name" gorm:"column:vessel_name;type:varchar(255);index"`
	IMONumber      string `json:"imo_number" gorm:"column:imo_number;type:varchar(16);index"`
	MMSINumber     string `json:"mmsi_number" gorm:"column:mmsi_number;type:varchar(16);index"`
	CallSign       string `json:"call_sign" gorm:"column:call_sign;type:varchar(16)"`
	OfficialNumber string `json:"official_number" gorm:"column:official_number;type:varchar(64)"`

	VesselType            string `json:"vessel_type" gorm:"column:vessel_type;type:varchar(32)"`
	FlagState             string `json:"flag_state" gorm:"column:flag_state;type:varchar(64)"`
	PortOfRegistry        string `json:"port_of_registry" gorm:"column:port_of_registry;type:varchar(128)"`
	ClassificationSociety string `json:"classification_society" gorm:"column:classification_society;type:varchar(32)"`
	ClassNotation         string `json:"class_notation" gorm:"column:class_notation;type:varchar(255)"`

	LengthOverall   float64 `json:"length_overall" gorm:"column:length_overall"`
	LengthWaterline float64 `json:"length_waterline" gorm:"column:length_waterline"`
	Beam            float64 `json:"beam" gorm:"column:beam"`
	Draft           float64 `json:"draft" gorm:"column:draft"`
	Depth           float64 `json:"depth" gorm:"column:depth"`
	AirDraft        float64 `json:"air_draft" gorm:"column:air_draft"`
	GrossTonnage    float64 `json:"gross_tonnage" gorm:"column:gross_tonnage"`
	NetTonnage      float64 `json:"net_tonnage" gorm:"column:net_tonnage"`
	Deadweight      float64 `json:"deadweight" gorm:"column:deadweight"`
	Displacement    float64 `json:"displacement" gorm:"column:displacement"`

	YearBuilt      int        `json:"year_built" gorm:"column:year_built"`
	Builder        string     `json:"builder" gorm:"column:builder;type:varchar(255)"`
	BuildLocation  string     `json:"build_location" gorm:"column:build_location;type:varchar(255)"`
	HullMaterial   string     `json:"hull_material" gorm:"column:hull_material;type:varchar(32)"`
	HullNumber     string     `json:"hull_number" gorm:"column:hull_number;type:varchar(64)"`
	DesignCategory string     `json:"design_category" gorm:"column:design_category;type:varchar(8)"`
	BuildStandards []string   `json:"build_standards" gorm:"column:build_standards;serializer:json"`
	SurveyDate     *time.Time `json:"survey_date,omitempty" gorm:"column:survey_date"`
	CertificateExp *time.Time `json:"certificate_expiry,omitempty" gorm:"column:certificate_expiry"`

	Description string `json:"description" gorm:"column:description;type:text"`
	Notes       string `json:"notes" gorm:"column:notes;type:text"`
	HomePort    string `json:"home_port" gorm:"column:home_port;type:varchar(128)"`

	YachtCategory  string   `json:"yacht_category" gorm:"column:yacht_category;type:varchar(32)"`
	Superyacht     bool     `json:"superyacht_status" gorm:"column:superyacht_status"`
	Commercial     bool     `json:"commercial_operation" gorm:"column:commercial_operation"`
	GuestCabins    int      `json:"guest_cabins" gorm:"column:guest_cabins"`
	CrewCabins     int      `json:"crew_cabins" gorm:"column:crew_cabins"`
	GuestCapacity  int      `json:"guest_capacity" gorm:"column:guest_capacity"`
	CrewCapacity   int      `json:"crew_capacity" gorm:"column:crew_capacity"`
	MaxSpeed       float64  `json:"max_speed" gorm:"column:max_speed"`
	CruiseSpeed    float64  `json:"cruise_speed" gorm:"column:cruise_speed"`
	RangeNM        float64  `json:"range_nm" gorm:"column:range_nm"`
	FuelCapacity   float64  `json:"fuel_capacity" gorm:"column:fuel_capacity"`
	WaterCapacity  float64  `json:"water_capacity" gorm:"column:water_capacity"`
	PropulsionType string   `json:"propulsion_type" gorm:"column:propulsion_type;type:varchar(32)"`
	MainEngines    string   `json:"main_engines" gorm:"column:main_engines;type:varchar(255)"`
	EnginePower    float64  `json:"engine_power" gorm:"column:engine_power"`
	Images         []string `json:"images" gorm:"column:images;serializer:json"`
	CruisingAreas  []string `json:"cruising_areas" gorm:"column:cruising_areas;serializer:json"`

	LastPort    string `json:"last_port" gorm:"column:last_port;type:varchar(128)"`
	Destination string `json:"destination" gorm:"column:destination;type:varchar(128)"`
	ETA         string `json:"eta" gorm:"column:eta;type:varchar(64)"`
}

// Fields returns a snapshot of every non-empty field. The snapshot shares
// nothing with the vessel.
func (v *Vessel) Fields() Fields {
	return DefaultCatalog().Snapshot(v)
}

// IsYachtType reports whether a vessel type tag is one of the yacht subtypes.
func IsYachtType(vesselType string) bool {
	switch vesselType {
	case "yacht", "motor_yacht", "sailing_yacht", "superyacht", "megayacht":
		return true
	default:
		return false
	}
}
