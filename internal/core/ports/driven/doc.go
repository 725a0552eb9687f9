// Package driven declares what the services need from the outside world.
//
// Storage (DocumentStore, AnnotationStore, PreferenceStore), ConfigStore
// and Canvas are required. AnnotationValidator, AnnotationCodec,
// Rasterizer, FileWatcher and FileRevealer may be nil; the matching
// feature then reports ErrNotImplemented or falls back to basic checks.
//
// Implementations live under internal/adapters/driven and may import
// domain but nothing from core/services.
package driven
