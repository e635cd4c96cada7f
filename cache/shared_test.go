package cache

import (
	"errors"
	"strconv"
	"strings"
	"testing"
)

type countingMetrics struct {
	hits, misses, evicts, lastSize int
}

func (m *countingMetrics) Hit()       { m.hits++ }
func (m *countingMetrics) Miss()      { m.misses++ }
func (m *countingMetrics) Evict()     { m.evicts++ }
func (m *countingMetrics) Size(n int) { m.lastSize = n }

func TestShared_GetPush(t *testing.T) {
	t.Parallel()

	s := NewShared(Options{Capacity: 2})
	if err := s.Push(bs("1"), bs("10")); err != nil {
		t.Fatal(err)
	}
	if err := s.Push(bs("2"), bs("20")); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.Get(bs("1")); err != nil { // promote 1
		t.Fatal(err)
	}
	if err := s.Push(bs("3"), bs("30")); err != nil {
		t.Fatal(err)
	}

	if _, ok, err := s.Get(bs("2")); err != nil || ok {
		t.Fatalf("2 must be evicted, ok=%v err=%v", ok, err)
	}
	if v, ok, err := s.Get(bs("1")); err != nil || !ok || string(v) != "10" {
		t.Fatalf("Get 1 want 10, got %q ok=%v err=%v", v, ok, err)
	}
	if s.Len() != 2 || s.Cap() != 2 {
		t.Fatalf("Len/Cap want 2/2, got %d/%d", s.Len(), s.Cap())
	}
}

func TestShared_StatsAndMetrics(t *testing.T) {
	t.Parallel()

	m := &countingMetrics{}
	s := NewShared(Options{Capacity: 1, Metrics: m})
	_ = s.Push(bs("a"), bs("1"))
	_, _, _ = s.Get(bs("a"))     // hit
	_, _, _ = s.Get(bs("b"))     // miss
	_ = s.Push(bs("b"), bs("2")) // evicts a

	st := s.Stats()
	if st.Hits != 1 || st.Misses != 1 || st.Evictions != 1 || st.Len != 1 || st.Capacity != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
	if m.hits != 1 || m.misses != 1 || m.evicts != 1 || m.lastSize != 1 {
		t.Fatalf("user metrics not forwarded: %+v", m)
	}
}

// A panicking eviction callback poisons the cache instead of crashing.
func TestShared_PoisonAndReset(t *testing.T) {
	t.Parallel()

	s := NewShared(Options{
		Capacity: 1,
		OnEvict:  func(_, _ []byte) { panic("boom") },
	})
	if err := s.Push(bs("a"), bs("1")); err != nil {
		t.Fatal(err)
	}

	err := s.Push(bs("b"), bs("2"))
	if !errors.Is(err, ErrPoisoned) {
		t.Fatalf("want ErrPoisoned, got %v", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("poison error must carry the panic value, got %q", err)
	}

	if _, _, err := s.Get(bs("a")); !errors.Is(err, ErrPoisoned) {
		t.Fatalf("Get after poison want ErrPoisoned, got %v", err)
	}
	if err := s.Push(bs("c"), bs("3")); !errors.Is(err, ErrPoisoned) {
		t.Fatalf("Push after poison want ErrPoisoned, got %v", err)
	}
	if _, err := s.Keys(); !errors.Is(err, ErrPoisoned) {
		t.Fatalf("Keys after poison want ErrPoisoned, got %v", err)
	}
	if !errors.Is(s.Err(), ErrPoisoned) {
		t.Fatal("Err must report poison")
	}
	if got := s.String(); !strings.Contains(got, "poisoned") {
		t.Fatalf("String on poisoned cache: %q", got)
	}

	s.Reset()
	if s.Err() != nil {
		t.Fatalf("Reset must clear poison, got %v", s.Err())
	}
	if s.Len() != 0 {
		t.Fatalf("Reset must drop entries, Len=%d", s.Len())
	}
	if err := s.Push(bs("x"), bs("9")); err != nil {
		t.Fatalf("Push after Reset: %v", err)
	}
	if v, ok, err := s.Get(bs("x")); err != nil || !ok || string(v) != "9" {
		t.Fatalf("Get after Reset: %q ok=%v err=%v", v, ok, err)
	}
}

// The lock must be released when the critical section panics.
func TestShared_UnlocksAfterPanic(t *testing.T) {
	t.Parallel()

	s := NewShared(Options{Capacity: 1, OnEvict: func(_, _ []byte) { panic("x") }})
	_ = s.Push(bs("a"), bs("1"))
	_ = s.Push(bs("b"), bs("2"))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Len()
	}()
	<-done
}

func TestShared_KeysAndString(t *testing.T) {
	t.Parallel()

	s := NewShared(Options{Capacity: 4})
	for i := 0; i < 3; i++ {
		_ = s.Push(bs(strconv.Itoa(i)), bs("v"))
	}
	keys, err := s.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 3 || string(keys[0]) != "2" || string(keys[2]) != "0" {
		t.Fatalf("unexpected key order: %q", keys)
	}
	if got := s.String(); !strings.HasPrefix(got, "Cache [\n(\"2\"") {
		t.Fatalf("unexpected rendering: %q", got)
	}
}
