package dialogService_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dialogService "FinancasBot/internal/api/dialog/service"
	"FinancasBot/internal/entity"
)

func newStore() dialogService.ISessionStore {
	return dialogService.NewSessionStore(newTestLogger(), 30*time.Minute)
}

func TestSessionStore_StartOrReplace(t *testing.T) {
	store := newStore()

	session := store.StartOrReplace("user-a", entity.TransactionDraft{User: "Maria"})
	assert.Equal(t, entity.StepAwaitingType, session.Step)
	assert.Equal(t, "Maria", session.Draft.User)

	store.Advance("user-a", func(current *entity.DialogSession) {
		current.Step = entity.StepAwaitingValue
	})

	replaced := store.StartOrReplace("user-a", entity.TransactionDraft{User: "Maria"})
	assert.Equal(t, entity.StepAwaitingType, replaced.Step)
}

func TestSessionStore_Advance(t *testing.T) {
	store := newStore()

	assert.False(t, store.Advance("missing", func(*entity.DialogSession) {}))

	store.StartOrReplace("user-a", entity.TransactionDraft{})
	ok := store.Advance("user-a", func(current *entity.DialogSession) {
		current.Draft.Category = "Mercado"
		current.Step = entity.StepAwaitingValue
	})
	require.True(t, ok)

	session, found := store.Get("user-a")
	require.True(t, found)
	assert.Equal(t, entity.StepAwaitingValue, session.Step)
	assert.Equal(t, "Mercado", session.Draft.Category)
}

func TestSessionStore_Delete(t *testing.T) {
	store := newStore()

	assert.False(t, store.Delete("user-a"))

	store.StartOrReplace("user-a", entity.TransactionDraft{})
	assert.True(t, store.Delete("user-a"))
	assert.False(t, store.Delete("user-a"))

	_, found := store.Get("user-a")
	assert.False(t, found)
}

func TestSessionStore_EvictIdle(t *testing.T) {
	store := newStore()

	store.StartOrReplace("stale", entity.TransactionDraft{})
	store.StartOrReplace("fresh", entity.TransactionDraft{})

	evicted := store.EvictIdle(time.Now())
	assert.Zero(t, evicted)

	// Touch one session so only the other crosses the idle threshold.
	time.Sleep(10 * time.Millisecond)
	store.StartOrReplace("fresh", entity.TransactionDraft{})

	session, found := store.Get("stale")
	require.True(t, found)

	evicted = store.EvictIdle(session.LastActivityAt.Add(30*time.Minute + time.Millisecond))
	assert.Equal(t, 1, evicted)

	_, found = store.Get("stale")
	assert.False(t, found)

	_, found = store.Get("fresh")
	assert.True(t, found)
}

func TestSessionStore_IsolatesUsers(t *testing.T) {
	store := newStore()

	store.StartOrReplace("user-a", entity.TransactionDraft{User: "Maria"})
	store.StartOrReplace("user-b", entity.TransactionDraft{User: "João"})

	store.Advance("user-a", func(current *entity.DialogSession) {
		current.Step = entity.StepAwaitingValue
	})

	sessionB, found := store.Get("user-b")
	require.True(t, found)
	assert.Equal(t, entity.StepAwaitingType, sessionB.Step)
	assert.Equal(t, "João", sessionB.Draft.User)
}

func TestSessionStore_LockUserSerializes(t *testing.T) {
	store := newStore()
	store.StartOrReplace("user-a", entity.TransactionDraft{})

	var order []int
	var wg sync.WaitGroup

	unlock := store.LockUser("user-a")

	wg.Add(1)
	go func() {
		defer wg.Done()
		innerUnlock := store.LockUser("user-a")
		defer innerUnlock()
		order = append(order, 2)
	}()

	order = append(order, 1)
	unlock()
	wg.Wait()

	assert.Equal(t, []int{1, 2}, order)
}
