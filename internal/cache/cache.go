package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gradstat/placement-backend/internal/model"
)

// Store memoizes derived payloads (chart bundles, export blobs) keyed by
// filter selection. Implementations must treat misses and backend
// failures identically from the caller's perspective: correctness never
// depends on a hit.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// SelectionKey derives a stable memoization key from a normalized
// filter selection. Years and branches are order-insensitive; ranges
// hash at fixed precision. The dataset itself is immutable for the
// process lifetime, so the selection alone identifies the input.
func SelectionKey(sel model.FilterSelection) string {
	years := append([]int(nil), sel.Years...)
	sort.Ints(years)
	branches := append([]string(nil), sel.Branches...)
	sort.Strings(branches)

	var b strings.Builder
	for _, y := range years {
		fmt.Fprintf(&b, "y%d;", y)
	}
	for _, br := range branches {
		fmt.Fprintf(&b, "b%s;", br)
	}
	fmt.Fprintf(&b, "p%.4f:%.4f;", sel.PackageRange.Min, sel.PackageRange.Max)
	fmt.Fprintf(&b, "r%.4f:%.4f", sel.PlacementPctRange.Min, sel.PlacementPctRange.Max)

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
