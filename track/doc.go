// Package track records which parts of a structured argument a function actually used,
// and answers whether a new argument would look different to it.
//
// Normalize wraps a value in a Shim bound to a Ledger. Every read, existence
// check, own-property check and enumeration performed through the Shim is
// written to the Ledger. Diff later replays those observations against a new
// value, recursing only into properties that were read. Anything the function
// never looked at is never compared.
//
// A Ledger is not safe for concurrent use.
package track
