package store

import (
	"fmt"

	"github.com/vriksha-lab/backend/internal/domain/analytics"
	"github.com/vriksha-lab/backend/internal/entity"
)

// GetNotificationsForUser derives the notices of every sapling guarded by
// userID from the current state. A notice id is tied to the update that
// caused it, so a newer update produces a new notice.
func (s *Store) GetNotificationsForUser(userID string) []entity.Notification {
	st := s.read()

	result := []entity.Notification{}
	for _, id := range st.saplingOrder {
		sapling := st.saplings[id]
		if sapling.GuardianID != userID {
			continue
		}

		if n, ok := noticeFor(sapling); ok {
			result = append(result, n)
		}
	}
	return result
}

func noticeFor(s entity.Sapling) (entity.Notification, bool) {
	last, ok := s.LastUpdate()
	if !ok {
		return entity.Notification{}, false
	}

	n := entity.Notification{UserID: s.GuardianID, SaplingID: s.ID}
	switch analytics.CurrentStatus(s) {
	case entity.NeedsWater:
		n.ID = "water-" + last.ID
		n.Severity = entity.SeverityWarning
		n.Message = fmt.Sprintf("Your %s sapling (%s) needs water.", s.Species, s.ID)
	case entity.Damaged:
		n.ID = "damaged-" + last.ID
		n.Severity = entity.SeverityWarning
		n.Message = fmt.Sprintf("Your %s sapling (%s) is damaged and needs attention.", s.Species, s.ID)
	case entity.Lost:
		n.ID = "lost-" + last.ID
		n.Severity = entity.SeverityInfo
		n.Message = fmt.Sprintf("Your %s sapling (%s) was marked as lost.", s.Species, s.ID)
	case entity.Healthy:
		if len(s.Updates) < 2 {
			return entity.Notification{}, false
		}

		previous := s.Updates[len(s.Updates)-2].Status
		if previous != entity.NeedsWater && previous != entity.Damaged {
			return entity.Notification{}, false
		}

		n.ID = "recovered-" + last.ID
		n.Severity = entity.SeveritySuccess
		n.Message = fmt.Sprintf("Your %s sapling (%s) has recovered.", s.Species, s.ID)
	default:
		return entity.Notification{}, false
	}

	return n, true
}
