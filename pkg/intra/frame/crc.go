package frame

import "github.com/sigurn/crc16"

var crcTable = crc16.MakeTable(crc16.CRC16_CRC_A)

// Checksum calculates CRC-16/ISO-IEC-14443-3-A of data.
func Checksum(data []byte) uint16 {
	return crc16.Checksum(data, crcTable)
}
