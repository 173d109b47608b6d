package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionStateTerminal(t *testing.T) {
	assert.False(t, StatePending.Terminal())
	assert.False(t, StatePendingCanceled.Terminal())
	assert.True(t, StatePaid.Terminal())
	assert.True(t, StatePaidCanceled.Terminal())
	assert.True(t, StateFailed.Terminal())
}

func TestTransactionStateCanTransition(t *testing.T) {
	allowed := map[TransactionState][]TransactionState{
		StatePending:         {StatePaid, StatePendingCanceled, StateFailed},
		StatePendingCanceled: {StatePaidCanceled},
	}

	all := []TransactionState{StatePending, StatePaid, StatePendingCanceled, StatePaidCanceled, StateFailed}
	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransition(to), "%s -> %s", from, to)
		}
	}
}
