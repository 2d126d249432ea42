package progress

import (
	"encoding/json"

	"github.com/technobugproject/technobug/utils"
	. "github.com/technobugproject/technobug/utils/log"
	"gorm.io/gorm"
)

// Snapshot is the full progress payload returned to the frontend: the raw
// counts, the derived score, and the totals needed to render "x/y" meters.
type Snapshot struct {
	Activity       Activity `json:"details"`
	Summary        Summary  `json:"summary"`
	TotalPages     int      `json:"total_pages"`
	TotalResources int      `json:"total_resources"`
}

// LoadSnapshot aggregates and scores the user's activity, going through the
// Redis snapshot store when one is configured. Staleness of a few requests
// is fine for a progress meter, so any cache failure just logs and falls
// back to a live aggregation.
func LoadSnapshot(db *gorm.DB, store *utils.RedisSnapshotStore, userID string) Snapshot {
	if store != nil && userID != "" {
		cached, err := store.GetProgressSnapshot(userID)
		if err != nil {
			Log.Error("fail to read progress snapshot for user ", userID, ": ", err)
		} else if cached != nil {
			var snapshot Snapshot
			if err := json.Unmarshal(cached, &snapshot); err == nil {
				return snapshot
			}
			Log.Error("corrupted progress snapshot for user ", userID, ", recomputing")
		}
	}

	activity := Aggregate(db, userID)
	snapshot := Snapshot{
		Activity:       activity,
		Summary:        Score(activity),
		TotalPages:     len(Pages),
		TotalResources: len(ResourcePages),
	}

	if store != nil && userID != "" {
		serialized, err := json.Marshal(snapshot)
		if err == nil {
			err = store.SetProgressSnapshot(userID, serialized)
		}
		if err != nil {
			Log.Error("fail to cache progress snapshot for user ", userID, ": ", err)
		}
	}

	return snapshot
}

// InvalidateSnapshot drops the cached snapshot after a mutation changed the
// user's counts. Best-effort, like the rest of the cache.
func InvalidateSnapshot(store *utils.RedisSnapshotStore, userID string) {
	if store == nil || userID == "" {
		return
	}
	if err := store.InvalidateProgressSnapshot(userID); err != nil {
		Log.Error("fail to invalidate progress snapshot for user ", userID, ": ", err)
	}
}
