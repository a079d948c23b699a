package deso

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_DeliversInOrder(t *testing.T) {
	q := NewQueue[int]()
	defer q.Close()

	var mu sync.Mutex
	var first, second []int
	q.On(func(message int) {
		mu.Lock()
		first = append(first, message)
		mu.Unlock()
	})
	q.On(func(message int) {
		mu.Lock()
		second = append(second, message)
		mu.Unlock()
	})

	for i := 0; i < 10; i++ {
		q.Broadcast(i)
	}
	require.Nil(t, q.Wait(time.Second))

	expected := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	assert.Equal(t, expected, first)
	assert.Equal(t, expected, second)
}

func TestQueue_Cleanup(t *testing.T) {
	q := NewQueue[string]()
	defer q.Close()

	received := make(chan string, 4)
	cleanup := q.On(func(message string) {
		received <- message
	})

	q.Broadcast("a")
	require.Nil(t, q.Wait(time.Second))
	cleanup()
	cleanup()
	q.Broadcast("b")
	require.Nil(t, q.Wait(time.Second))

	assert.Equal(t, "a", <-received)
	assert.Len(t, received, 0)
}

func TestQueue_WaitTimesOut(t *testing.T) {
	q := NewQueue[int]()
	defer q.Close()

	release := make(chan struct{})
	q.On(func(int) { <-release })
	q.Broadcast(1)

	assert.NotNil(t, q.Wait(10*time.Millisecond))
	close(release)
	assert.Nil(t, q.Wait(time.Second))
}

func TestQueue_Closed(t *testing.T) {
	q := NewQueue[int]()
	q.Close()
	q.Close()

	called := false
	q.On(func(int) { called = true })()
	q.Broadcast(1)

	assert.Nil(t, q.Wait(time.Second))
	assert.False(t, called)
}
