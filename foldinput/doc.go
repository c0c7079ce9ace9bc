// Package foldinput turns manifest rows into AlphaFold 3 fold inputs.
//
// Two builders exist. ParseMolecules reads any number of molN_* triplets
// from a row and quietly skips what it cannot use. PiRNAComplex pairs each
// protein with a fixed piRNA (and optional target RNA) and fails on a
// piRNA that cannot carry its terminal methylation.
package foldinput
