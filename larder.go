// Package larder discovers recipe pages on a fixed set of food sites and
// extracts a normalized recipe record from each page. It walks paginated
// index pages to collect candidate recipe URLs, then applies a per-site
// extraction strategy that tolerates missing or changed markup.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, gemini/).
package larder
