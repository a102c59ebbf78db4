package session

import (
	"context"
	"testing"
)

func TestActorRoundTrip(t *testing.T) {
	ctx := context.Background()
	if _, ok := FromContext(ctx); ok {
		t.Fatal("actor found in empty context")
	}

	want := Actor{UserID: "u-1", Email: "a@example.com", Card: "4242424242424242"}
	ctx = WithActor(ctx, want)
	got, ok := FromContext(ctx)
	if !ok || got != want {
		t.Fatalf("FromContext = %+v, %v", got, ok)
	}
}
