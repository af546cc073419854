package audit

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Recorder writes entries to a Sink without ever failing the caller.
// A nil Recorder is valid and drops everything.
type Recorder struct {
	sink Sink
	log  logrus.FieldLogger
}

func NewRecorder(sink Sink, log logrus.FieldLogger) *Recorder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Recorder{sink: sink, log: log}
}

func (r *Recorder) Record(ctx context.Context, e Entry) {
	if r == nil || r.sink == nil {
		return
	}
	actor := ActorFrom(ctx)
	if e.UserID == 0 {
		e.UserID = actor.UserID
	}
	if e.UserName == "" {
		e.UserName = actor.UserName
	}
	if e.IPAddress == "" {
		e.IPAddress = actor.IPAddress
	}
	if e.RequestID == "" {
		e.RequestID = actor.RequestID
	}

	defer func() {
		if p := recover(); p != nil {
			r.fields(e).Errorf("audit sink panicked: %v", p)
		}
	}()
	if err := r.sink.Log(ctx, e); err != nil {
		r.fields(e).WithError(err).Warn("audit write failed")
	}
}

func (r *Recorder) fields(e Entry) logrus.FieldLogger {
	return r.log.WithFields(logrus.Fields{
		"action":      e.Action,
		"entity_type": e.EntityType,
		"entity_id":   e.EntityID,
		"request_id":  e.RequestID,
	})
}
