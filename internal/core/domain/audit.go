package domain

import (
	"strconv"
	"time"
)

// Audit outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// AuditEvent records one mutation attempted through the proxy.
type AuditEvent struct {
	Resource   string    `json:"resource" bson:"resource"`
	Action     string    `json:"action" bson:"action"`
	EntryID    int64     `json:"entry_id,omitempty" bson:"entry_id,omitempty"`
	TargetID   int64     `json:"target_id,omitempty" bson:"target_id,omitempty"`
	Outcome    string    `json:"outcome" bson:"outcome"`
	Status     int       `json:"status" bson:"status"`
	Actor      string    `json:"actor,omitempty" bson:"actor,omitempty"`
	OccurredAt time.Time `json:"occurred_at" bson:"occurred_at"`
}

// ShardKey groups events for the same resource and entry onto one worker.
func (e AuditEvent) ShardKey() string {
	if e.EntryID == 0 {
		return e.Resource
	}
	return e.Resource + "/" + strconv.FormatInt(e.EntryID, 10)
}
