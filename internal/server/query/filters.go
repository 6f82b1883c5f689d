package query

import (
	"net/url"
	"strconv"
	"time"

	"convo/internal/common"
)

// ConversationQuery carries the recognized conversation list filters.
// Zero values mean "not set".
type ConversationQuery struct {
	Participant   string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	Page          int
}

// MessageQuery carries the recognized message list filters.
type MessageQuery struct {
	Conversation string
	Sender       string
	SentAfter    *time.Time
	SentBefore   *time.Time
	BodyContains string
	Page         int
}

// Each recognized option name maps to a setter; keys absent from the
// registry are dropped during parsing. A malformed value for a recognized
// key is a ValidationError naming that key.

func parseTimestamp(key, value string) (*time.Time, error) {
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, common.NewValidationError(key, "must be an RFC 3339 timestamp")
	}
	return &ts, nil
}

func parsePage(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, common.NewValidationError("page", "must be a positive integer")
	}
	return n, nil
}

// ParseConversationQuery extracts the recognized conversation filters from
// raw request query values.
func ParseConversationQuery(values url.Values) (ConversationQuery, error) {
	q := ConversationQuery{Page: 1}

	registry := map[string]func(string) error{
		"participant": func(v string) error {
			q.Participant = v
			return nil
		},
		"createdAfter": func(v string) error {
			ts, err := parseTimestamp("createdAfter", v)
			if err != nil {
				return err
			}
			q.CreatedAfter = ts
			return nil
		},
		"createdBefore": func(v string) error {
			ts, err := parseTimestamp("createdBefore", v)
			if err != nil {
				return err
			}
			q.CreatedBefore = ts
			return nil
		},
		"page": func(v string) error {
			n, err := parsePage(v)
			if err != nil {
				return err
			}
			q.Page = n
			return nil
		},
	}

	if err := apply(values, registry); err != nil {
		return ConversationQuery{}, err
	}
	return q, nil
}

// ParseMessageQuery extracts the recognized message filters from raw
// request query values.
func ParseMessageQuery(values url.Values) (MessageQuery, error) {
	q := MessageQuery{Page: 1}

	registry := map[string]func(string) error{
		"conversation": func(v string) error {
			q.Conversation = v
			return nil
		},
		"sender": func(v string) error {
			q.Sender = v
			return nil
		},
		"sentAfter": func(v string) error {
			ts, err := parseTimestamp("sentAfter", v)
			if err != nil {
				return err
			}
			q.SentAfter = ts
			return nil
		},
		"sentBefore": func(v string) error {
			ts, err := parseTimestamp("sentBefore", v)
			if err != nil {
				return err
			}
			q.SentBefore = ts
			return nil
		},
		"bodyContains": func(v string) error {
			q.BodyContains = v
			return nil
		},
		"page": func(v string) error {
			n, err := parsePage(v)
			if err != nil {
				return err
			}
			q.Page = n
			return nil
		},
	}

	if err := apply(values, registry); err != nil {
		return MessageQuery{}, err
	}
	return q, nil
}

func apply(values url.Values, registry map[string]func(string) error) error {
	for key, vals := range values {
		set, ok := registry[key]
		if !ok {
			continue
		}
		if len(vals) == 0 || vals[0] == "" {
			continue
		}
		if err := set(vals[0]); err != nil {
			return err
		}
	}
	return nil
}
