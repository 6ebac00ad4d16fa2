// Package topo is the topology layer of the modeler. A Model issues
// vertices, chord edges, edge chains and faces, keeps every entity it
// creates in id-indexed arenas, and enforces the construction rules:
// a chain starts from three distinct vertices, grows one connected chord
// at a time, and becomes a Face only once it is closed and planar.
//
// A Model has a single writer. Entities it returns are immutable values
// and may be shared freely.
package topo
