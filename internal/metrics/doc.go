// Package metrics implements the cryptographic quality measures of 8-bit S-boxes.
//
// Every calculator is a pure function of the table. Tables that are not
// permutations are accepted: Bijective reports false, and the remaining
// figures are still computed, although they only have their usual
// cryptanalytic meaning for bijective S-boxes.
package metrics
