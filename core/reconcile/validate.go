package reconcile

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"vessel-manager/core/utils"
)

// maxPlausibleSpeed is the sanity ceiling for max_speed, in knots.
const maxPlausibleSpeed = 70.0

var (
	ErrIMOLength        = errors.New("IMO number must be exactly 7 digits")
	ErrIMOCheckDigit    = errors.New("check digit verification failed")
	ErrMMSILength       = errors.New("MMSI number must be exactly 9 digits")
	ErrMMSILeadingZero  = errors.New("MMSI number cannot start with 0")
	ErrCallSignFormat   = errors.New("call sign must be 3-7 letters or digits")
	nonDigits           = regexp.MustCompile(`\D`)
	callSignPattern     = regexp.MustCompile(`^[A-Z0-9]{3,7}$`)
	imoCheckDigitWeight = [6]int{7, 6, 5, 4, 3, 2}
)

// Validator is an optional collaborator that inspects a merged record and
// returns advisory warnings.
type Validator interface {
	Check(merged Fields) []string
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(Fields) []string

// Check calls f.
func (f ValidatorFunc) Check(merged Fields) []string { return f(merged) }

// ValidateIMO checks length and check digit of an IMO number. Formatting
// such as an "IMO " prefix is ignored.
func ValidateIMO(imo string) error {
	digits := nonDigits.ReplaceAllString(imo, "")
	if len(digits) != 7 {
		return ErrIMOLength
	}
	sum := 0
	for i, w := range imoCheckDigitWeight {
		sum += int(digits[i]-'0') * w
	}
	if sum%10 != int(digits[6]-'0') {
		return ErrIMOCheckDigit
	}
	return nil
}

// ValidateMMSI checks that an MMSI has nine digits and a plausible MID.
func ValidateMMSI(mmsi string) error {
	digits := nonDigits.ReplaceAllString(mmsi, "")
	if len(digits) != 9 {
		return ErrMMSILength
	}
	if digits[0] == '0' {
		return ErrMMSILeadingZero
	}
	return nil
}

// ValidateCallSign checks the radio call sign format.
func ValidateCallSign(callSign string) error {
	if !callSignPattern.MatchString(callSign) {
		return ErrCallSignFormat
	}
	return nil
}

// CrossFieldWarnings runs the consistency checks attached to every merge.
// They never block a merge.
func CrossFieldWarnings(f Fields) []string {
	var warnings []string

	if greater(f, FieldBeam, FieldLengthOverall) {
		warnings = append(warnings, "Beam is greater than length overall - please verify")
	}
	if greater(f, FieldLengthWaterline, FieldLengthOverall) {
		warnings = append(warnings, "Waterline length is greater than length overall - please verify")
	}
	if greater(f, FieldNetTonnage, FieldGrossTonnage) {
		warnings = append(warnings, "Net tonnage is greater than gross tonnage - please verify")
	}
	if greater(f, FieldCruiseSpeed, FieldMaxSpeed) {
		warnings = append(warnings, "Cruise speed is greater than maximum speed - please verify")
	}
	if speed, ok := number(f, FieldMaxSpeed); ok && speed > maxPlausibleSpeed {
		warnings = append(warnings, fmt.Sprintf("Maximum speed (%g knots) seems very high", speed))
	}
	if imo := utils.ToString(f[FieldIMONumber]); f[FieldIMONumber] != nil && imo != "" {
		if err := ValidateIMO(imo); err != nil {
			warnings = append(warnings, "IMO number validation failed: "+err.Error())
		}
	}
	if mmsi := utils.ToString(f[FieldMMSINumber]); f[FieldMMSINumber] != nil && mmsi != "" {
		if err := ValidateMMSI(mmsi); err != nil {
			warnings = append(warnings, "MMSI number validation failed: "+err.Error())
		}
	}
	return warnings
}

// RecordValidator checks a merged record against plausibility rules that go
// beyond the built-in cross-field checks.
type RecordValidator struct {
	Now func() time.Time
}

// Check implements Validator.
func (v RecordValidator) Check(f Fields) []string {
	now := time.Now()
	if v.Now != nil {
		now = v.Now()
	}

	var warnings []string
	for _, spec := range DefaultCatalog().specs {
		if spec.Type != FieldNumeric {
			continue
		}
		if n, ok := number(f, spec.Name); ok && n < 0 {
			warnings = append(warnings, fmt.Sprintf("%s cannot be negative", spec.Name))
		}
	}

	if year, ok := number(f, FieldYearBuilt); ok {
		if year < 1800 || int(year) > now.Year()+5 {
			warnings = append(warnings, fmt.Sprintf("Year built %d is outside 1800-%d", int(year), now.Year()+5))
		}
	}
	if greater(f, FieldGuestCabins, FieldGuestCapacity) {
		warnings = append(warnings, "Guest cabins exceed guest capacity - please verify")
	}
	if greater(f, FieldCrewCabins, FieldCrewCapacity) {
		warnings = append(warnings, "Crew cabins exceed crew capacity - please verify")
	}
	if callSign, ok := f[FieldCallSign].(string); ok && callSign != "" {
		if err := ValidateCallSign(callSign); err != nil {
			warnings = append(warnings, "Call sign validation failed: "+err.Error())
		}
	}
	if expiry, ok := f[FieldCertificateExp].(time.Time); ok && !expiry.IsZero() && expiry.Before(now) {
		warnings = append(warnings, fmt.Sprintf("Certificate expired on %s", expiry.Format("2006-01-02")))
	}
	return warnings
}

// greater reports whether both fields are set and a > b.
func greater(f Fields, a, b FieldName) bool {
	x, okA := number(f, a)
	y, okB := number(f, b)
	return okA && okB && x != 0 && y != 0 && x > y
}

func number(f Fields, name FieldName) (float64, bool) {
	v, ok := f[name]
	if !ok || v == nil {
		return 0, false
	}
	return utils.ToFloat(v)
}
