package reporters

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Interaction is one click on a search result, attributed to the query id
// returned when the results were stored.
type Interaction struct {
	EventID    string    `json:"event_id"`
	QueryID    string    `json:"query_id"`
	ClickIndex int       `json:"click_index"`
	ReportedAt time.Time `json:"reported_at"`
}

// NewInteraction constructs an Interaction with a fresh event id.
func NewInteraction(queryID string, clickIndex int) Interaction {
	return Interaction{
		EventID:    uuid.NewString(),
		QueryID:    queryID,
		ClickIndex: clickIndex,
		ReportedAt: time.Now().UTC(),
	}
}

func (in Interaction) attributes() map[string]string {
	return map[string]string{
		"query_id":    in.QueryID,
		"click_index": strconv.Itoa(in.ClickIndex),
	}
}
