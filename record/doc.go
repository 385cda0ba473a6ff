// Package record defines the record contract used by repositories: a declared
// field schema per record type, field values keyed by column, write payloads
// without the identity field, and hydration from raw rows.
package record
