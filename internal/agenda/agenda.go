// Package agenda groups a meeting's readings into ordered, labeled
// agenda blocks. The store feeds it readings sorted by (priority
// ascending, motion's formal submission ascending) plus the meeting's
// priority labels; building is a single pass over that snapshot, so
// re-running it against unchanged data yields the same blocks.
package agenda

import (
	"fmt"

	"council-motions-backend/internal/model"
)

// Block is one numbered item on a generated agenda.
type Block struct {
	Index    int             `json:"index"`
	Priority int             `json:"priority"`
	Title    string          `json:"title"`
	Readings []model.Reading `json:"readings"`
}

// Build walks the sorted readings and opens a new block whenever the
// priority changes to a tier that has a name, or when no block exists
// yet. Unnamed tiers in between collapse into the block that is already
// open.
func Build(readings []model.Reading, names map[int]string) []Block {
	var blocks []Block
	prevPriority := 0

	for i, r := range readings {
		changed := i == 0 || r.Priority != prevPriority
		if changed {
			name, named := names[r.Priority]
			if named || len(blocks) == 0 {
				idx := len(blocks) + 1
				title := name
				if !named {
					title = fmt.Sprintf("TOP %d (priority %d)", idx, r.Priority)
				}
				blocks = append(blocks, Block{
					Index:    idx,
					Priority: r.Priority,
					Title:    title,
				})
			}
		}

		last := &blocks[len(blocks)-1]
		last.Readings = append(last.Readings, r)
		prevPriority = r.Priority
	}

	return blocks
}
