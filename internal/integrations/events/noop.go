package events

import "context"

// NoopPublisher используется, когда публикация событий выключена
type NoopPublisher struct{}

// PublishAppointmentCompleted ничего не делает
func (NoopPublisher) PublishAppointmentCompleted(context.Context, *AppointmentCompleted) error {
	return nil
}

// Close ничего не делает
func (NoopPublisher) Close() error {
	return nil
}
