// Package importer bulk-loads activity entries from YAML or JSON files.
//
// Entries are estimated in fixed-size batches that run concurrently, then
// stored in one write so a failed import leaves the store untouched.
package importer
