package worker

import (
	"sync/atomic"
	"testing"
)

func TestPoolRunsEverySubmittedJob(t *testing.T) {
	p := NewPool(4)
	var n atomic.Int64
	for i := 0; i < 100; i++ {
		p.Submit(func() { n.Add(1) })
	}
	p.Stop()
	if got := n.Load(); got != 100 {
		t.Fatalf("jobs run=%d want=100", got)
	}
}
