package reconcile

import (
	"fmt"
	"sort"
	"strings"
)

// Opportunities lists the sources worth querying for v, best first.
// A vessel without an IMO number, an MMSI or a named yacht type has none.
func Opportunities(v *Vessel) []EnhancementOpportunity {
	opps := []EnhancementOpportunity{}
	if v == nil {
		return opps
	}

	if imo := strings.TrimSpace(v.IMONumber); imo != "" {
		opps = append(opps, EnhancementOpportunity{
			Source:          SourceMarineTraffic,
			IdentifierType:  IdentifierIMO,
			IdentifierValue: imo,
			Confidence:      0.95,
			Description:     fmt.Sprintf("Enhance using IMO number %s", imo),
			EstimatedFields: 8,
		})
	}

	if mmsi := strings.TrimSpace(v.MMSINumber); mmsi != "" {
		opps = append(opps, EnhancementOpportunity{
			Source:          SourceMarineTraffic,
			IdentifierType:  IdentifierMMSI,
			IdentifierValue: mmsi,
			Confidence:      0.90,
			Description:     fmt.Sprintf("Enhance using MMSI number %s", mmsi),
			EstimatedFields: 7,
		})
	}

	if name := strings.TrimSpace(v.VesselName); name != "" && IsYachtType(v.VesselType) {
		opps = append(opps, EnhancementOpportunity{
			Source:          SourceBoatInternational,
			IdentifierType:  IdentifierName,
			IdentifierValue: name,
			Confidence:      0.70,
			Description:     fmt.Sprintf("Search BOAT International for yacht '%s'", name),
			EstimatedFields: 6,
		})
	}

	sort.SliceStable(opps, func(i, j int) bool {
		return opps[i].Confidence > opps[j].Confidence
	})
	return opps
}
