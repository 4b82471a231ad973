package schedulerreq

// TriggerRequest selects one of the date, interval or cron triggers.
// RunAt is RFC 3339 or "2006-01-02 15:04:05" in the scheduler timezone. Every is a Go duration string.
type TriggerRequest struct {
	Type       string `json:"type" binding:"required"`
	RunAt      string `json:"run_at"`
	Every      string `json:"every"`
	Expression string `json:"expression"`
}

type AddJobRequest struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Task    string         `json:"task" binding:"required"`
	Trigger TriggerRequest `json:"trigger" binding:"required"`
}
