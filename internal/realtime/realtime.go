package realtime

import (
	"encoding/json"
	"strings"
)

type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// Row is the "new" record carried by a change-feed event.
type Row map[string]interface{}

// Event is a single table-level change.
type Event struct {
	Table string
	Type  EventType
	Row   Row
}

// SubscriptionSpec declares interest in one (table, event) pair. Filter is an
// optional equality predicate in "column=eq.value" form; an empty filter
// matches every row.
type SubscriptionSpec struct {
	Table    string
	Event    EventType
	Filter   string
	Callback func(Row)
}

// Transport registers a batch of specs under a logical topic and returns a
// release function that deterministically removes the registration.
type Transport interface {
	Register(topicKey string, specs []SubscriptionSpec) (release func(), err error)
}

// TopicKey builds the conventional "<domain>_<orgID>" topic key. It returns
// "" when the scoping id is absent, which suppresses the subscription.
func TopicKey(domain, orgID string) string {
	if orgID == "" {
		return ""
	}
	return domain + "_" + orgID
}

// OrgFilter builds the equality predicate scoping events to one organization.
func OrgFilter(orgID string) string {
	return "org_id=eq." + orgID
}

// MatchFilter evaluates a "column=eq.value" predicate against a row. Empty
// filters match everything; malformed filters match nothing.
func MatchFilter(filter string, row Row) bool {
	if filter == "" {
		return true
	}

	column, rest, found := strings.Cut(filter, "=eq.")

	if !found || column == "" {
		return false
	}

	value, ok := row[column]

	if !ok {
		return false
	}

	s, ok := value.(string)

	if !ok {
		return false
	}

	return s == rest
}

// RowOf converts a persisted record into the Row shape events carry, using
// the record's JSON representation so field names match column names.
func RowOf(record interface{}) (Row, error) {
	raw, err := json.Marshal(record)

	if err != nil {
		return nil, err
	}

	var row Row

	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, err
	}

	return row, nil
}
