package wire

import (
	"fmt"

	"github.com/robotalks/soccer.go/pkg/postcard"
)

// Team is the team colour of a robot.
type Team uint8

// Teams.
const (
	TeamBlue Team = iota
	TeamYellow
)

func (t Team) String() string {
	switch t {
	case TeamBlue:
		return "Blue"
	case TeamYellow:
		return "Yellow"
	}
	return fmt.Sprintf("Team(%d)", uint8(t))
}

// GameState is the coarse referee state forwarded to robots.
type GameState uint8

// Game states.
const (
	GameStateHalt GameState = iota
	GameStateStop
	GameStateNormal
)

func (s GameState) String() string {
	switch s {
	case GameStateHalt:
		return "Halt"
	case GameStateStop:
		return "Stop"
	case GameStateNormal:
		return "Normal"
	}
	return fmt.Sprintf("GameState(%d)", uint8(s))
}

// KickerChargeHint tells the kicker whether to keep its capacitor charged.
type KickerChargeHint uint8

// Charge hints.
const (
	ChargeHintCharge KickerChargeHint = iota
	ChargeHintDischarge
	ChargeHintDontCare
)

func (h KickerChargeHint) String() string {
	switch h {
	case ChargeHintCharge:
		return "Charge"
	case ChargeHintDischarge:
		return "Discharge"
	case ChargeHintDontCare:
		return "DontCare"
	}
	return fmt.Sprintf("KickerChargeHint(%d)", uint8(h))
}

// KickSelection selects a flat kick or a chip.
type KickSelection uint8

// Kick selections.
const (
	KickSelectionKick KickSelection = iota
	KickSelectionChip
)

func (k KickSelection) String() string {
	switch k {
	case KickSelectionKick:
		return "Kick"
	case KickSelectionChip:
		return "Chip"
	}
	return fmt.Sprintf("KickSelection(%d)", uint8(k))
}

// DribblerState is the tristate dribbler setting.
type DribblerState uint8

// Dribbler states.
const (
	DribblerOff DribblerState = iota
	DribblerHalf
	DribblerFull
)

func (s DribblerState) String() string {
	switch s {
	case DribblerOff:
		return "Off"
	case DribblerHalf:
		return "Half"
	case DribblerFull:
		return "Full"
	}
	return fmt.Sprintf("DribblerState(%d)", uint8(s))
}

// BallState reports whether the ball sits in the dribbler.
type BallState uint8

// Ball states.
const (
	BallNotInDribbler BallState = iota
	BallInDribbler
)

func (s BallState) String() string {
	if s == BallInDribbler {
		return "InDribbler"
	}
	if s == BallNotInDribbler {
		return "NotInDribbler"
	}
	return fmt.Sprintf("BallState(%d)", uint8(s))
}

// decodeEnum reads a discriminant and validates it against count variants.
func decodeEnum(d *postcard.Decoder, name string, count uint32) uint8 {
	v := d.Variant()
	if d.Err() != nil {
		return 0
	}
	if v >= count {
		d.BadVariant(name, v)
		return 0
	}
	return uint8(v)
}

// encodeEnum writes a discriminant, failing the encoder if it is undefined.
func encodeEnum(e *postcard.Encoder, name string, v uint8, count uint32) {
	if uint32(v) >= count {
		e.Fail(&postcard.DiscriminantError{Type: name, Value: uint32(v)})
		return
	}
	e.Variant(uint32(v))
}
