// Package records declares the concrete sensor metadata records sarmeta
// knows how to read: the ENVISAT ASAR slant-to-ground-range conversion
// parameters, TerraSAR-X scene coordinates and the RadarSat CEOS platform
// position data. Each type implements codec.Record.
//
// The registry maps record names to constructors so tools can pick a
// record type at run time. Deciding which record sits at which offset of a
// leader file is left to the caller.
package records
