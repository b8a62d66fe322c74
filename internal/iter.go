// Package internal holds iterator helpers shared by the thermite packages.
package internal

import (
	"iter"
	"maps"
	"slices"
)

// IterSeq2Concat chains key/value iterators, draining each in turn.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, value := range seq {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}

// SortedDefines iterates a table of equates in name order.
func SortedDefines(defines map[string]string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, name := range slices.Sorted(maps.Keys(defines)) {
			if !yield(name, defines[name]) {
				return
			}
		}
	}
}
