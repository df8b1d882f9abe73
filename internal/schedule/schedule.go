/*
Package schedule assigns shows to the smallest number of parallel tracks so
that no two shows sharing a track overlap in time.

A show occupies every tick from Start through End inclusive. A track that
last carried a show ending at tick 9 can take a new show only if that show
starts at tick 10 or later.
*/
package schedule

import "sort"

// Show is a single time-bounded event read from the input file.
type Show struct {
	Title string
	Start int
	End   int
}

// Scheduled is a Show annotated with the 1-based track it was assigned to.
type Scheduled struct {
	Show
	Track int
}

// Assign partitions shows over tracks using the greedy interval
// partitioning strategy:
//   - shows are visited in start order (stable, so input order breaks ties)
//   - a track is available when its last show ended strictly before the
//     visited show starts
//   - among available tracks the one that finished most recently wins,
//     lowest index on equal end times
//   - when no track is available a new one is opened
//
// The result is in visiting order and trackCount is the highest track index
// used (0 for no shows). The input slice is left untouched.
func Assign(shows []Show) ([]Scheduled, int) {
	sorted := make([]Show, len(shows))
	copy(sorted, shows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	// ends[i] is the end tick of the last show on track i+1
	var ends []int
	scheduled := make([]Scheduled, 0, len(sorted))

	for _, show := range sorted {
		best := -1
		for i, end := range ends {
			if end >= show.Start {
				continue
			}
			if best < 0 || end > ends[best] {
				best = i
			}
		}
		if best < 0 {
			ends = append(ends, show.End)
			best = len(ends) - 1
		} else {
			ends[best] = show.End
		}
		scheduled = append(scheduled, Scheduled{Show: show, Track: best + 1})
	}

	return scheduled, len(ends)
}

// Group splits scheduled shows per track. Index i holds the shows of track
// i+1 in scheduled order. Shows with a track outside 1..trackCount are
// ignored.
func Group(scheduled []Scheduled, trackCount int) [][]Scheduled {
	if trackCount <= 0 {
		return nil
	}
	tracks := make([][]Scheduled, trackCount)
	for _, s := range scheduled {
		if s.Track < 1 || s.Track > trackCount {
			continue
		}
		tracks[s.Track-1] = append(tracks[s.Track-1], s)
	}
	return tracks
}

// Span returns the first start tick and the last end tick covered by shows.
// ok is false when shows is empty.
func Span(shows []Scheduled) (first, last int, ok bool) {
	for i, s := range shows {
		if i == 0 || s.Start < first {
			first = s.Start
		}
		if i == 0 || s.End > last {
			last = s.End
		}
	}
	return first, last, len(shows) > 0
}

// Depth reports the largest number of shows active at a single tick, which
// is the lower bound on the number of tracks any valid assignment needs.
func Depth(shows []Show) int {
	type edge struct {
		tick  int
		delta int
	}
	edges := make([]edge, 0, 2*len(shows))
	for _, s := range shows {
		edges = append(edges, edge{s.Start, 1}, edge{s.End, -1})
	}
	// a show is still active on its end tick, so openings on a tick are
	// counted before the closings on that tick
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].tick != edges[j].tick {
			return edges[i].tick < edges[j].tick
		}
		return edges[i].delta > edges[j].delta
	})

	active, deepest := 0, 0
	for _, e := range edges {
		active += e.delta
		if active > deepest {
			deepest = active
		}
	}
	return deepest
}
