// Package domain holds Redliner's data model: tracked documents, the
// annotations drawn on them, persisted preferences, and the primitive
// elements annotations render into.
//
// Geometry is in page pixels at the load DPI with the origin at the top
// left. Colours are ARGB hex strings. The package imports only the
// standard library; every other layer depends on it.
package domain
