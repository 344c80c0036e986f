package store

// MergeStats reports what an import merge actually did. Imported counts
// records appended or overwritten; Skipped counts duplicates left untouched.
type MergeStats struct {
	Imported int
	Skipped  int

	// SkippedNames lists the incoming names (or addresses, for unnamed
	// records) that were skipped, for per-record diagnostics.
	SkippedNames []string
}

// Merge reconciles incoming records against existing ones, in incoming-list
// order. A record whose name matches an existing one is overwritten when
// overwrite is set, otherwise skipped; the same rule applies to a matching
// address. Anything else is appended. Callers validate incoming records
// (address/secret consistency) before merging.
func Merge(existing, incoming []Record, overwrite bool) ([]Record, MergeStats) {
	merged := make([]Record, len(existing))
	copy(merged, existing)

	byName := make(map[string]int, len(merged))
	byAddress := make(map[string]int, len(merged))
	for i, rec := range merged {
		byName[rec.Name] = i
		byAddress[rec.PublicKey] = i
	}

	var stats MergeStats
	for _, rec := range incoming {
		idx, found := byName[rec.Name]
		if !found {
			idx, found = byAddress[rec.PublicKey]
		}

		if found {
			if !overwrite {
				stats.Skipped++
				label := rec.Name
				if label == "" {
					label = rec.PublicKey
				}
				stats.SkippedNames = append(stats.SkippedNames, label)
				continue
			}
			old := merged[idx]
			merged[idx] = rec
			delete(byName, old.Name)
			delete(byAddress, old.PublicKey)
			byName[rec.Name] = idx
			byAddress[rec.PublicKey] = idx
			stats.Imported++
			continue
		}

		merged = append(merged, rec)
		byName[rec.Name] = len(merged) - 1
		byAddress[rec.PublicKey] = len(merged) - 1
		stats.Imported++
	}

	return merged, stats
}
