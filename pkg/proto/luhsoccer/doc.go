// Package luhsoccer defines the protobuf messages exchanged between the
// team server and the basestation.
//
// The messages are written by hand in the layout protoc-gen-go produces for
// luhsoccer_basestation.proto. Members of a oneof are plain pointer fields;
// at most one of them is set.
package luhsoccer
