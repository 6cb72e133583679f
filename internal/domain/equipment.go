package domain

import "time"

type Equipment struct {
	ID              int32  `json:"id"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	RatePerDayPaise int64  `json:"rate_per_day_paise"`
	PhotoURL        string `json:"photo_url"`

	// Counters. Available is not stored; it is derived from these on every
	// read so maintenance edits can never leave a stale available count.
	TotalManaged  int32 `json:"total_managed"`
	OnRent        int32 `json:"on_rent"`
	OnMaintenance int32 `json:"on_maintenance"`

	CreatedOn time.Time  `json:"created_on"`
	UpdatedOn time.Time  `json:"updated_on"`
	DeletedOn *time.Time `json:"deleted_on,omitempty"`
}

// Available returns totalManaged - onRent - onMaintenance, clamped at zero.
func (e *Equipment) Available() int32 {
	avail := e.TotalManaged - e.OnRent - e.OnMaintenance
	if avail < 0 {
		return 0
	}
	return avail
}
