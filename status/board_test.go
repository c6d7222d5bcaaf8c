package status

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoard_LineInRegistrationOrder(t *testing.T) {
	b := NewBoard()
	b.Text("trail").Store("on")
	b.Int("markers").Store(10)
	b.Text("color").Store("#ff4f9a")

	assert.Equal(t, "trail on  markers 10  color #ff4f9a", b.Line())

	// Same key returns the cached field
	b.Int("markers").Add(2)
	assert.Equal(t, int64(12), b.Int("markers").Load())
	assert.Equal(t, "trail on  markers 12  color #ff4f9a", b.Line())
}

func TestBoard_Empty(t *testing.T) {
	assert.Equal(t, "", NewBoard().Line())
}

func TestAtomicString_Truncates(t *testing.T) {
	var s AtomicString
	assert.Equal(t, "", s.Load())

	s.Store(strings.Repeat("●", MaxStringLen+5))
	assert.Equal(t, MaxStringLen, len([]rune(s.Load())))
}

func TestBoard_ConcurrentWriters(t *testing.T) {
	b := NewBoard()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				b.Int("frames").Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(8000), b.Int("frames").Load())
	assert.Equal(t, "frames 8000", b.Line())
}
