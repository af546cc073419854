package audit

import "context"

// Actor is the authenticated caller of the current request.
type Actor struct {
	UserID    uint64
	UserName  string
	IPAddress string
	RequestID string
}

type actorKey struct{}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFrom returns the zero Actor when none was attached.
func ActorFrom(ctx context.Context) Actor {
	a, _ := ctx.Value(actorKey{}).(Actor)
	return a
}
