// Package xmltree parses XML documents into an immutable, namespace-aware
// element tree.
//
// The standard encoding/xml decoder resolves namespace prefixes while
// tokenizing, so every element in the tree carries its expanded (namespace
// URI, local name) pair. Lookups mirror the navigation the CPL extractor
// needs: direct-child access, depth-first descendant search, and text
// retrieval that distinguishes "absent" from "empty".
//
// The tree is built once by Parse and never mutated afterwards.
package xmltree
