package cpl

import "cplinfo/internal/xmltree"

// Accepted CompositionPlaylist schema namespaces (SMPTE ST 2067-3 editions).
var compatibleCPLNamespaces = map[string]struct{}{
	"http://www.smpte-ra.org/schemas/2067-3/2013": {},
	"http://www.smpte-ra.org/schemas/2067-3/2016": {},
}

// Accepted core constraint namespaces for sequences (SMPTE ST 2067-2 editions).
var compatibleCoreNamespaces = map[string]struct{}{
	"http://www.smpte-ra.org/schemas/2067-2/2013": {},
	"http://www.smpte-ra.org/schemas/2067-2/2016": {},
	"http://www.smpte-ra.org/ns/2067-2/2020":      {},
}

// RegXML namespaces used inside essence descriptors.
const (
	nsRegGroups   = "http://www.smpte-ra.org/reg/395/2014/13/1/aaf"
	nsRegElements = "http://www.smpte-ra.org/reg/335/2012"
	nsRegTypes    = "http://www.smpte-ra.org/reg/2003/2012"
)

const rootLocalName = "CompositionPlaylist"

func name(space, local string) xmltree.Name {
	return xmltree.Name{Space: space, Local: local}
}

// CompatibleCPLNamespace reports whether ns is an accepted CPL schema
// namespace.
func CompatibleCPLNamespace(ns string) bool {
	_, ok := compatibleCPLNamespaces[ns]
	return ok
}

// CompatibleCoreNamespace reports whether ns is an accepted core constraint
// namespace.
func CompatibleCoreNamespace(ns string) bool {
	_, ok := compatibleCoreNamespaces[ns]
	return ok
}
