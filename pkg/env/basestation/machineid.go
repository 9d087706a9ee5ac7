package basestation

import (
	"github.com/denisbrodbeck/machineid"
)

// HostnamePrefix is the name of every basestation.
const HostnamePrefix = "luhbots-bs"

// Identity names this machine: HostnamePrefix followed by a prefix of the
// machine id protected by the application name.
func Identity() string {
	id, err := machineid.ProtectedID(HostnamePrefix)
	if err != nil || len(id) < 8 {
		return HostnamePrefix
	}
	return HostnamePrefix + "-" + id[:8]
}
