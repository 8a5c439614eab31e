package content

import "github.com/google/uuid"

// SanitizeRelated returns the related post ids that may be stored for postID:
// nil ids and postID itself are dropped and duplicates removed, keeping the
// order in which the editor picked them.
func SanitizeRelated(postID uuid.UUID, related []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(related))
	seen := make(map[uuid.UUID]bool, len(related))
	for _, id := range related {
		if id == uuid.Nil || id == postID || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
