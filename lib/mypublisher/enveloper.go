package mypublisher

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/quickbite/storefront/lib/myevents"
	"github.com/quickbite/storefront/lib/mytime"
)

type enveloper struct {
	nower mytime.Nower
}

func newEnveloper(nower mytime.Nower) enveloper {
	return enveloper{
		nower: nower,
	}
}

func (e enveloper) do(topic string, event myevents.Event) (myevents.EventEnvelope, error) {
	jsonPayload, err := json.Marshal(event)
	if err != nil {
		return myevents.EventEnvelope{}, fmt.Errorf("error marshalling request-payload: %s", err)
	}
	envelope := myevents.EventEnvelope{
		Topic:         topic,
		AggregateUID:  event.GetAggregateName(),
		EventTypeName: event.GetEventTypeName(),
		EventPayload:  string(jsonPayload),
		Published:     false,
	}

	// In order to be idempotent, we do NOT use an uuid to identify the event
	envelope.UID, err = checksum(envelope)
	if err != nil {
		return myevents.EventEnvelope{}, fmt.Errorf("error checksumming request-payload: %s", err)
	}
	// In order to be idempotent, we exclude timestamp from the checksum
	envelope.CreatedAt = e.nower.Now()

	return envelope, nil
}

func checksum(envelope myevents.EventEnvelope) (string, error) {
	hasher := sha256.New()

	jsonBytes, err := json.Marshal(envelope)
	if err != nil {
		return "", fmt.Errorf("error marshalling envelope: %s", err)
	}

	_, err = io.WriteString(hasher, string(jsonBytes))
	if err != nil {
		return "", fmt.Errorf("error hashing envelope: %s", err)
	}

	return base64.RawURLEncoding.EncodeToString(hasher.Sum(nil)), nil
}
