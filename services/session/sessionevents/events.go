package sessionevents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/quickbite/storefront/lib/myerrors"
	"github.com/quickbite/storefront/lib/myevents"
)

const (
	TopicName          = "session"
	sessionChangedName = TopicName + ".changed"
)

type SessionEventService interface {
	Subscribe(c context.Context) error
	OnSessionChanged(c context.Context, topic string, event SessionChanged) error
}

func DispatchEvent(c context.Context, reader io.Reader, service SessionEventService) error {
	envelope, err := myevents.ParseEventEnvelope(reader)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	switch envelope.EventTypeName {
	case sessionChangedName:
		{
			event := SessionChanged{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnSessionChanged(c, envelope.Topic, event)
		}
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf("event %s not supported", envelope.EventTypeName))
	}
}

// SessionChanged announces that the persisted identity was replaced or cleared.
// UserUID is empty when the session became anonymous.
type SessionChanged struct {
	UserUID string
}

func (e SessionChanged) GetEventTypeName() string {
	return sessionChangedName
}

func (e SessionChanged) GetAggregateName() string {
	if e.UserUID == "" {
		return "anonymous"
	}
	return e.UserUID
}
