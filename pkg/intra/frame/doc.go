// Package frame provides the framed serial protocol between the main
// controller and the motor controller of a robot.
package frame

// The link is a point-to-point UART without flow control guarantees, so
// every message is delimited and integrity checked:
//
//	COBS( payload || CRC16(payload) big-endian ) 0x00
//
// CRC16 is CRC-16/ISO-IEC-14443-3-A. COBS removes every 0x00 from the
// encoded frame so the delimiter always marks a frame boundary and a
// receiver joining mid-stream resynchronizes on the next delimiter.
//
// There is no acknowledgement and no retransmission. Senders are expected
// to resend state bearing messages periodically instead.
