// Package batch splits ordered sequences into bounded, order-preserving chunks.
//
// Partition works on a fully materialized slice. Accumulator does the same
// job incrementally for values that arrive one at a time, so a streamed
// query result can be pushed without holding it all in memory.
//
// Both produce the same chunks for the same input: every chunk but the last
// holds exactly size values, and concatenating the chunks in order yields
// the input unchanged.
package batch
