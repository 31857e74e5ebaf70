package conversation

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreKeepsMostRecentEntries(t *testing.T) {
	store := NewStore()

	for i := 1; i <= 6; i++ {
		store.Append("U1", fmt.Sprintf("m%d", i))
	}

	assert.Equal(t, []string{"m3", "m4", "m5", "m6"}, store.History("U1"))
}

func TestStoreBelowCap(t *testing.T) {
	store := NewStore()

	store.Append("U1", "a")
	store.Append("U1", "b")

	assert.Equal(t, []string{"a", "b"}, store.History("U1"))
}

func TestStoreUnknownUser(t *testing.T) {
	store := NewStore()

	assert.Empty(t, store.History("nobody"))
}

func TestStoreUsersAreIndependent(t *testing.T) {
	store := NewStore()

	store.Append("U1", "a")
	store.Append("U2", "b")

	assert.Equal(t, []string{"a"}, store.History("U1"))
	assert.Equal(t, []string{"b"}, store.History("U2"))
}

func TestStoreHistoryReturnsCopy(t *testing.T) {
	store := NewStore()
	store.Append("U1", "a")
	store.Append("U1", "b")

	history := store.History("U1")
	history[0] = "corrupted"

	assert.Equal(t, []string{"a", "b"}, store.History("U1"))
}

func TestStoreClear(t *testing.T) {
	store := NewStore()
	store.Append("U1", "a")

	store.Clear("U1")

	assert.Empty(t, store.History("U1"))
	assert.Equal(t, noHistoryPlaceholder, store.historyContext("U1"))

	// clearing an unknown user is a no-op
	store.Clear("nobody")
}

func TestStoreHistoryContext(t *testing.T) {
	store := NewStore()

	assert.Equal(t, noHistoryPlaceholder, store.historyContext("U1"))

	store.Append("U1", "current")
	assert.Equal(t, noHistoryPlaceholder, store.historyContext("U1"))

	store.Append("U1", "answer")
	store.Append("U1", "followup")
	assert.Equal(t, "current\nanswer", store.historyContext("U1"))
}

func TestStoreConcurrentAppends(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				store.Append("U1", fmt.Sprintf("g%d-m%d", g, i))
			}
		}(g)
	}
	wg.Wait()

	require.Len(t, store.History("U1"), maxExchanges*2)
}
