// Package extractors provides implementations of the Extractor interface
// for various document formats. Each extractor knows how to turn the raw
// bytes of a specific MIME type into plain text.
//
// Extractors are registered with the ExtractorRegistry at startup. The
// registry dispatches on MIME type and picks the highest-priority match,
// so format-specific extractors win over the plaintext fallback.
package extractors
