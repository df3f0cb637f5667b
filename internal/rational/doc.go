// Package rational parses CPL rational values and renders exact durations.
//
// CPL documents express edit rates and sample rates as two space-separated
// integers ("24000 1001"). All arithmetic downstream stays on math/big.Rat so
// accumulated durations and fingerprint inputs are exact; floating point only
// appears when a value leaves the system (clock strings, index rows).
package rational
