// Package machine implements the execution engine of a single-tape,
// single-head Turing machine.
//
// A Machine owns a tape, a current state, a head position and a read-only
// instruction table. Each step reads the symbol under the head, looks up the
// last instruction matching (state, symbol), writes, moves and transitions.
// A lookup miss halts the machine without touching the tape.
//
// The head position is kept in the coordinates of the initial tape. Every
// time the tape grows on the left a displacement offset is incremented, and
// the effective tape index is Position + Displacement.
package machine
