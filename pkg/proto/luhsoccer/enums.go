package luhsoccer

import "strconv"

// TeamColor is the color of a team.
type TeamColor int32

// TeamColor values.
const (
	TeamColor_BLUE   TeamColor = 0
	TeamColor_YELLOW TeamColor = 1
)

var teamColorNames = map[TeamColor]string{
	TeamColor_BLUE:   "BLUE",
	TeamColor_YELLOW: "YELLOW",
}

func (x TeamColor) String() string { return enumName(teamColorNames, x) }

// ChargeHint tells the kicker whether to keep its capacitor charged.
type ChargeHint int32

// ChargeHint values.
const (
	ChargeHint_CHARGE    ChargeHint = 0
	ChargeHint_DISCHARGE ChargeHint = 1
	ChargeHint_DONT_CARE ChargeHint = 2
)

var chargeHintNames = map[ChargeHint]string{
	ChargeHint_CHARGE:    "CHARGE",
	ChargeHint_DISCHARGE: "DISCHARGE",
	ChargeHint_DONT_CARE: "DONT_CARE",
}

func (x ChargeHint) String() string { return enumName(chargeHintNames, x) }

// KickerMode selects a straight kick or a chip.
type KickerMode int32

// KickerMode values.
const (
	KickerMode_KICK KickerMode = 0
	KickerMode_CHIP KickerMode = 1
)

var kickerModeNames = map[KickerMode]string{
	KickerMode_KICK: "KICK",
	KickerMode_CHIP: "CHIP",
}

func (x KickerMode) String() string { return enumName(kickerModeNames, x) }

// TristateDribblerMode is the coarse dribbler speed.
type TristateDribblerMode int32

// TristateDribblerMode values.
const (
	TristateDribblerMode_OFF  TristateDribblerMode = 0
	TristateDribblerMode_HALF TristateDribblerMode = 1
	TristateDribblerMode_FULL TristateDribblerMode = 2
)

var tristateDribblerModeNames = map[TristateDribblerMode]string{
	TristateDribblerMode_OFF:  "OFF",
	TristateDribblerMode_HALF: "HALF",
	TristateDribblerMode_FULL: "FULL",
}

func (x TristateDribblerMode) String() string { return enumName(tristateDribblerModeNames, x) }

// Enum returns a pointer to x for the optional tristate_mode field.
func (x TristateDribblerMode) Enum() *TristateDribblerMode {
	return &x
}

func enumName[E ~int32](names map[E]string, v E) string {
	if name, ok := names[v]; ok {
		return name
	}
	return strconv.Itoa(int(v))
}
