package wire

// Sync words programmed into the transceiver address filter.
const (
	BasestationSyncWord uint32 = 0x9cd6040c
	BroadcastSyncWord   uint32 = 0xb9d16e9c
)

// MaxRobots is the number of robot slots per team.
const MaxRobots = 16

// RobotBlueSyncWords are the per id sync words of the blue team.
var RobotBlueSyncWords = [MaxRobots]uint32{
	0xab60615e, 0x190297ab, 0x56e24fb8, 0xbfe5e129,
	0x1e0c14e8, 0x85e9cb3a, 0xe0b4d33f, 0x01ae1bb5,
	0x42a33fa0, 0xa2732908, 0x6aebd021, 0xbbcea667,
	0x76e4a78d, 0x3ce0e5d3, 0xc66e0d5c, 0xfafe4934,
}

// RobotYellowSyncWords are the per id sync words of the yellow team.
var RobotYellowSyncWords = [MaxRobots]uint32{
	0x95da9603, 0xd0eb1461, 0x15ba5654, 0xbb2bf452,
	0x2c140646, 0x62e61ebe, 0xb2d54232, 0xc6929a96,
	0x63668943, 0x5e7eeba1, 0x254a8d13, 0x1e6b1077,
	0x5fae4041, 0x4d457592, 0x320afa60, 0x99fb1ae9,
}

// SyncWord returns the sync word addressing robot id of team.
func SyncWord(team Team, id uint8) (uint32, bool) {
	if id >= MaxRobots {
		return 0, false
	}
	switch team {
	case TeamBlue:
		return RobotBlueSyncWords[id], true
	case TeamYellow:
		return RobotYellowSyncWords[id], true
	}
	return 0, false
}

// FirmwareVersion is reported by robots running this stack.
var FirmwareVersion = SemVersion{Major: 0, Minor: 3, Patch: 0}
