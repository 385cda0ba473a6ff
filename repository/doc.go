// Package repository provides a generic table repository built on Bun. One
// engine serves every record type: it applies ordering, identity and
// soft-delete policy uniformly to reads, stamps timestamps on writes and pages
// results into read-only pages.
package repository
