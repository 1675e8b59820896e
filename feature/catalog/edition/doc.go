// Package edition turns a catalog card's price buckets into edition records.
//
// The catalog prices one logical card under several variant keys
// (holofoil, reverseHolofoil, 1stEditionHolofoil, ...). Resolve maps each
// known key onto an Edition through a closed table, drops unknown keys,
// deduplicates keys that land on the same edition and guarantees at least
// one edition per card. ID and Slug derive the stable edition card id.
package edition
