// Package match relocates a remembered text fragment inside a document that
// may have drifted since the fragment was taken from it.
//
// A Matcher runs an exact pass and four approximate strategies in a fixed
// order (word window, chunk window, sentence sequence, full normalisation).
// The first strategy that yields a non-empty span wins. Approximate spans are
// then snapped to nearby structure (section headers, sentence ends) by Refine.
//
// All offsets returned by this package are byte offsets into the original
// document and always fall on rune boundaries. Distances used by the
// heuristics are measured in runes.
package match
