// Package postcard implements the compact binary encoding shared by the
// basestation, the robots and the boards inside a robot.
//
// The encoding carries no schema. Values are written in declaration order:
//
//	u8, bool     one raw byte
//	u16..u64     unsigned LEB128 varint
//	i16, i32     zigzag, then varint
//	enum         variant index as varint, then the variant payload
//	option       0x00 (none) or 0x01 followed by the value
//
// Encoder writes into a bounded buffer so an encoded message never exceeds the
// link budget of the channel it is sent on.
package postcard
