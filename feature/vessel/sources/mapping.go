package sources

import (
	"strings"

	"vessel-manager/core/reconcile"
)

// Mapper turns a provider record into canonical keys. Values are left raw;
// coercion happens afterwards.
type Mapper func(raw map[string]any) map[string]any

// marineTrafficKeys maps MarineTraffic export columns to canonical fields.
var marineTrafficKeys = map[string]reconcile.FieldName{
	"SHIPNAME":      reconcile.FieldVesselName,
	"IMO":           reconcile.FieldIMONumber,
	"MMSI":          reconcile.FieldMMSINumber,
	"CALLSIGN":      reconcile.FieldCallSign,
	"FLAG":          reconcile.FieldFlagState,
	"SHIP_TYPE":     reconcile.FieldVesselType,
	"LENGTH":        reconcile.FieldLengthOverall,
	"BEAM":          reconcile.FieldBeam,
	"DRAFT":         reconcile.FieldDraft,
	"GROSS_TONNAGE": reconcile.FieldGrossTonnage,
	"YEAR_BUILT":    reconcile.FieldYearBuilt,
	"SHIPBUILDER":   reconcile.FieldBuilder,
	"DESTINATION":   reconcile.FieldDestination,
	"ETA":           reconcile.FieldETA,
}

// boatInternationalKeys lists the fields taken from BOAT International
// records, which already use canonical names.
var boatInternationalKeys = []reconcile.FieldName{
	reconcile.FieldVesselName,
	reconcile.FieldLengthOverall,
	reconcile.FieldBeam,
	reconcile.FieldDraft,
	reconcile.FieldYearBuilt,
	reconcile.FieldBuilder,
	reconcile.FieldDescription,
	reconcile.FieldMaxSpeed,
	reconcile.FieldCruiseSpeed,
	reconcile.FieldRangeNM,
	reconcile.FieldGuestCapacity,
	reconcile.FieldCrewCapacity,
	reconcile.FieldGuestCabins,
	reconcile.FieldCrewCabins,
}

// MapperFor returns the key mapper for a source. Sources without a known
// export format are expected to use canonical keys already.
func MapperFor(source reconcile.Source) Mapper {
	switch source {
	case reconcile.SourceMarineTraffic:
		return MapMarineTraffic
	case reconcile.SourceBoatInternational:
		return MapBoatInternational
	default:
		return passThrough
	}
}

// MapMarineTraffic maps a MarineTraffic record. Columns outside the known
// set are dropped and the ship type is translated to a vessel type.
func MapMarineTraffic(raw map[string]any) map[string]any {
	out := make(map[string]any, len(marineTrafficKeys))
	for key, value := range raw {
		field, ok := marineTrafficKeys[strings.ToUpper(strings.TrimSpace(key))]
		if !ok || value == nil {
			continue
		}
		if field == reconcile.FieldVesselType {
			if s, ok := value.(string); ok {
				value = MapShipType(s)
			}
		}
		out[string(field)] = value
	}
	return out
}

// MapBoatInternational keeps the fields BOAT International is trusted for.
func MapBoatInternational(raw map[string]any) map[string]any {
	out := make(map[string]any, len(boatInternationalKeys))
	for _, field := range boatInternationalKeys {
		if value, ok := raw[string(field)]; ok && value != nil {
			out[string(field)] = value
		}
	}
	return out
}

func passThrough(raw map[string]any) map[string]any {
	return raw
}

// MapShipType translates a MarineTraffic ship type to a vessel type tag.
func MapShipType(shipType string) string {
	t := strings.ToLower(shipType)
	switch {
	case strings.Contains(t, "yacht"), strings.Contains(t, "pleasure"):
		return "yacht"
	case strings.Contains(t, "cargo"):
		return "cargo_ship"
	case strings.Contains(t, "tanker"):
		return "tanker"
	case strings.Contains(t, "passenger"):
		return "passenger_ship"
	case strings.Contains(t, "fishing"):
		return "fishing_vessel"
	case strings.Contains(t, "tug"):
		return "tug_boat"
	default:
		return "other"
	}
}
