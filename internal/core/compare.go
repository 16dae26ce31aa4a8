package core

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/cespare/xxhash/v2"

	"syndication-kit/internal/ports"
)

// CompareChain returns the first non-zero partial result, or 0. Partial
// results are listed in the fields' declared order.
func CompareChain(parts ...int) int {
	for _, part := range parts {
		if part != 0 {
			return sign(part)
		}
	}
	return 0
}

// CompareTimes orders the zero (unset) time first.
func CompareTimes(a time.Time, b time.Time) int {
	return a.Compare(b)
}

// CompareBoolPtr orders nil, false, true.
func CompareBoolPtr(a *bool, b *bool) int {
	rank := func(v *bool) int {
		switch {
		case v == nil:
			return 0
		case !*v:
			return 1
		default:
			return 2
		}
	}
	return rank(a) - rank(b)
}

// CompareSlices compares element-wise, then by length.
func CompareSlices[T any](a []T, b []T, cmp func(T, T) int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := cmp(a[i], b[i]); c != 0 {
			return sign(c)
		}
	}
	return sign(len(a) - len(b))
}

// CompareExtension orders by namespace, then by the dialect's own order.
func CompareExtension(a ports.Extension, b ports.Extension) int {
	if c := strings.Compare(a.Descriptor().NamespaceURI(), b.Descriptor().NamespaceURI()); c != 0 {
		return c
	}
	return sign(a.Compare(b))
}

// SortExtensions returns a sorted copy of exts.
func SortExtensions(exts []ports.Extension) []ports.Extension {
	sorted := slices.Clone(exts)
	slices.SortStableFunc(sorted, CompareExtension)
	return sorted
}

// CompareExtensionSets compares two attachment lists ignoring their order.
func CompareExtensionSets(a []ports.Extension, b []ports.Extension) int {
	return CompareSlices(SortExtensions(a), SortExtensions(b), CompareExtension)
}

// CanonicalExtensions serializes exts in sorted order, for hashing.
func CanonicalExtensions(ctx context.Context, exts []ports.Extension) (string, error) {
	if len(exts) == 0 {
		return "", nil
	}
	scratch := etree.NewElement("extensions")
	for _, ext := range SortExtensions(exts) {
		if err := ext.WriteTo(ctx, scratch); err != nil {
			return "", err
		}
	}
	doc := etree.NewDocument()
	doc.SetRoot(scratch)
	return doc.WriteToString()
}

// Fingerprint hashes a canonical serialization.
func Fingerprint(canonical string) uint64 {
	return xxhash.Sum64String(canonical)
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
