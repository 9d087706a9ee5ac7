// Package wire defines the internal fixed-point packets exchanged between the
// basestation and the robots over the radio, and between the main controller
// and the motor controller over the intra-board UART.
//
// All quantities are scaled integers: linear speeds and positions in mm/s and
// mm (x1000 of SI), angles and angular rates x1024 of radians. The encoding
// is provided by package postcard.
package wire
