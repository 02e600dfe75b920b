package metfile

import "fmt"

// Error codes recorded by the parser and the content checks. The codes are
// the contract with callers; message text is informational only.
const (
	CodeReeksFields         = "MET_REEKS_FIELDS"
	CodeProfielFields       = "MET_PROFIEL_FIELDS"
	CodeMetingFields        = "MET_METING_FIELDS"
	CodeOrphanProfiel       = "MET_ORPHAN_PROFIEL"
	CodeOrphanMeting        = "MET_ORPHAN_METING"
	CodeNAP                 = "MET_NAP"
	CodeABS                 = "MET_ABS"
	CodeRefLevelZero        = "MET_PEILWAARDENUL"
	CodeTwoZValues          = "MET_TWOZVALUES"
	CodePlacingXY           = "MET_PROFILETYPEPLACING_XY"
	CodeTwoMeasurements     = "MET_2MEASUREMENTS"
	CodeTwo22Codes          = "MET_TWO_22_CODES"
	Code22Outside           = "MET_22OUTSIDE"
	Code99Inside            = "MET_99INSIDE"
	CodeLeftRightXY         = "MET_LEFTRIGHTXY"
	CodeLeftRightEqual      = "MET_LEFTRIGHTEQUAL"
	CodeZ1TooHigh           = "MET_Z1TOOHIGH"
	CodeZ2TooHigh           = "MET_Z2TOOHIGH"
	CodeZ1GreaterThanZ2     = "MET_Z1GREATERTHANZ2"
	CodeDistanceTooLarge    = "MET_DISTANCETOOLARGE"
	CodeLevelTooLow         = "MET_LEVELTOOLOW"
	CodeWaterwayTooWide     = "MET_WATERWAYTOOWIDE"
	CodeCoordinateOutOfRange = "MET_COORDRANGE"
)

// Error is one recorded validation failure, scoped to a source line.
type Error struct {
	Line    int
	Code    string
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Code, e.Message)
}

// advisory codes are recorded but never exclude a profile from the result.
var advisoryCodes = map[string]bool{
	CodeDistanceTooLarge:     true,
	CodeZ1GreaterThanZ2:      true,
	CodeLevelTooLow:          true,
	CodeWaterwayTooWide:      true,
	CodeCoordinateOutOfRange: true,
}

// Advisory reports whether the error leaves the owning profile valid.
func (e Error) Advisory() bool {
	return advisoryCodes[e.Code]
}
