package ledger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountLocksMutualExclusion(t *testing.T) {
	t.Parallel()
	locks := newAccountLocks()

	const n = 100
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("11111111111")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()
	assert.Equal(t, n, counter)
}

func TestAccountLocksIndependentKeys(t *testing.T) {
	t.Parallel()
	locks := newAccountLocks()

	unlockA := locks.Lock("a")
	defer unlockA()

	// A held lock on "a" must not block "b".
	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock("b")
		unlockB()
		close(done)
	}()
	<-done
}
