// Package labels loads SMPTE UL registry documents and resolves Universal
// Labels to human-readable names.
//
// The registry format is the SMPTE ST 400 XML shape: repeated Entry elements
// under the labels namespace, each with a Name and a UL child. A lookup miss
// means "no label", never an error; report rendering substitutes null for
// unresolved identifiers.
//
// A small embedded registry covers the common container, compression, and
// colorimetry labels so the tool is useful without an external registry file.
// The Registry is always passed explicitly into rendering; nothing in this
// package is ambient state.
package labels
