package enums

import "fmt"

// TimelineActor identifies who drove a timeline event.
type TimelineActor string

const (
	TimelineActorSystem   TimelineActor = "system"
	TimelineActorSeller   TimelineActor = "seller"
	TimelineActorCustomer TimelineActor = "customer"
	TimelineActorDelivery TimelineActor = "delivery"
)

var validTimelineActors = []TimelineActor{
	TimelineActorSystem,
	TimelineActorSeller,
	TimelineActorCustomer,
	TimelineActorDelivery,
}

// String implements fmt.Stringer.
func (t TimelineActor) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TimelineActor.
func (t TimelineActor) IsValid() bool {
	for _, candidate := range validTimelineActors {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTimelineActor converts raw input into a TimelineActor.
func ParseTimelineActor(value string) (TimelineActor, error) {
	for _, candidate := range validTimelineActors {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid timeline actor %q", value)
}
