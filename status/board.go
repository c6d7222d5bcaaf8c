// Package status publishes named host values for the terminal status line
package status

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// field is one published value, either an integer or a string
type field struct {
	key   string
	isInt bool
	i     atomic.Int64
	s     AtomicString
}

func (f *field) text() string {
	if f.isInt {
		return strconv.FormatInt(f.i.Load(), 10)
	}
	return f.s.Load()
}

// Board holds fields in registration order
// Registration takes the lock; writers cache the returned pointer and store lock-free
type Board struct {
	mu     sync.RWMutex
	fields []*field
	index  map[string]*field
}

// NewBoard creates an empty board
func NewBoard() *Board {
	return &Board{index: make(map[string]*field)}
}

func (b *Board) get(key string, isInt bool) *field {
	b.mu.RLock()
	f, ok := b.index[key]
	b.mu.RUnlock()
	if ok {
		return f
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if f, ok := b.index[key]; ok {
		return f
	}
	f = &field{key: key, isInt: isInt}
	b.index[key] = f
	b.fields = append(b.fields, f)
	return f
}

// Int returns the integer field for key, creating it on first use
func (b *Board) Int(key string) *atomic.Int64 {
	return &b.get(key, true).i
}

// Text returns the string field for key, creating it on first use
func (b *Board) Text(key string) *AtomicString {
	return &b.get(key, false).s
}

// Line renders "key value" pairs in registration order separated by two spaces
func (b *Board) Line() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var sb strings.Builder
	for i, f := range b.fields {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(f.key)
		sb.WriteByte(' ')
		sb.WriteString(f.text())
	}
	return sb.String()
}
