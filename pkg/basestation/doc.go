// Package basestation relays commands from the team server to the robots
// over the radio and collects their feedback.
//
// A StateTable holds the latest command and the latest feedback per robot.
// The Scheduler walks the table once per cycle, transmitting every pending
// command and listening for the reply of the addressed robot. Controller
// wires both into a framework.Loop fed by the network ingress.
package basestation
