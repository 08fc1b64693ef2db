package parallel

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestPool(t *testing.T) {
	for _, workers := range []int{1, 4, 0} {
		pool := Start(workers)
		var sum atomic.Int64
		for i := range 100 {
			pool.Do(func() error {
				sum.Add(int64(i))
				if i%10 == 0 {
					return errors.New("multiple of ten")
				}
				return nil
			})
		}
		stats := pool.Wait(true)

		if got := sum.Load(); got != 4950 {
			t.Errorf("workers=%d: sum = %d", workers, got)
		}
		if stats.Failed != 10 || stats.Processed != 90 || stats.Total() != 100 {
			t.Errorf("workers=%d: stats = %+v", workers, stats)
		}
	}
}
