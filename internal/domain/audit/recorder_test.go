package audit_test

import (
	"context"
	"errors"
	"testing"

	"asset-custody/internal/domain/audit"
	"asset-custody/internal/testutil/auditmock"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panicSink struct{}

func (panicSink) Log(context.Context, audit.Entry) error { panic("disk on fire") }

func TestRecord_FillsActorFromContext(t *testing.T) {
	sink := &auditmock.Sink{}
	rec := audit.NewRecorder(sink, nil)
	ctx := audit.WithActor(context.Background(), audit.Actor{
		UserID: 4, UserName: "Ayse", IPAddress: "10.0.0.1", RequestID: "rid",
	})

	rec.Record(ctx, audit.Entry{Action: audit.ActionCreate, EntityType: audit.EntityAssignment, EntityID: 1})
	rec.Record(ctx, audit.Entry{Action: audit.ActionApprove, EntityType: audit.EntityRequest, EntityID: 2, UserID: 9, UserName: "System"})

	got := sink.Snapshot()
	require.Len(t, got, 2)
	assert.Equal(t, uint64(4), got[0].UserID)
	assert.Equal(t, "Ayse", got[0].UserName)
	assert.Equal(t, "10.0.0.1", got[0].IPAddress)
	assert.Equal(t, "rid", got[0].RequestID)
	assert.Equal(t, uint64(9), got[1].UserID, "explicit fields win")
	assert.Equal(t, "System", got[1].UserName)
	assert.Equal(t, []string{"zimmet:create", "talep:approve"}, sink.Actions())
}

func TestRecord_SwallowsSinkFailures(t *testing.T) {
	log, hook := test.NewNullLogger()

	audit.NewRecorder(&auditmock.Sink{Err: errors.New("db down")}, log).
		Record(context.Background(), audit.Entry{Action: audit.ActionDelete, EntityType: audit.EntityProduct, EntityID: 3})
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "audit write failed", hook.LastEntry().Message)

	assert.NotPanics(t, func() {
		audit.NewRecorder(panicSink{}, log).Record(context.Background(), audit.Entry{Action: audit.ActionUpdate})
	})
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestRecord_NilRecorder(t *testing.T) {
	var rec *audit.Recorder
	assert.NotPanics(t, func() { rec.Record(context.Background(), audit.Entry{}) })
	assert.NotPanics(t, func() { audit.NewRecorder(nil, nil).Record(context.Background(), audit.Entry{}) })
}

func TestActorFrom_ZeroWhenMissing(t *testing.T) {
	assert.Equal(t, audit.Actor{}, audit.ActorFrom(context.Background()))
}
