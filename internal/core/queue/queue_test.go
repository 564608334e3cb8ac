package queue

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestFIFOOrder(t *testing.T) {
	q := New[int]()
	for i := 0; i < 5; i++ {
		q.Put(Work(i))
	}
	for i := 0; i < 5; i++ {
		item := q.Get()
		if item.IsShutdown() {
			t.Fatalf("unexpected shutdown item at %d", i)
		}
		if item.Value() != i {
			t.Errorf("Get() = %d, want %d", item.Value(), i)
		}
	}
	if q.Len() != 0 {
		t.Errorf("expected empty queue, got %d", q.Len())
	}
}

func TestShutdownItem(t *testing.T) {
	q := New[string]()
	q.Put(Shutdown[string]())
	if !q.Get().IsShutdown() {
		t.Error("expected shutdown item")
	}
	if Work("x").IsShutdown() {
		t.Error("work item reported as shutdown")
	}
}

func TestGetBlocksUntilPut(t *testing.T) {
	q := New[int]()
	got := make(chan int, 1)
	go func() {
		got <- q.Get().Value()
	}()

	select {
	case v := <-got:
		t.Fatalf("Get returned %d before any Put", v)
	case <-time.After(50 * time.Millisecond):
	}

	q.Put(Work(42))
	select {
	case v := <-got:
		if v != 42 {
			t.Errorf("got %d, want 42", v)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Get did not return after Put")
	}
}

func TestJoinWaitsForTaskDone(t *testing.T) {
	q := New[int]()
	const n = 10
	for i := 0; i < n; i++ {
		q.Put(Work(i))
	}

	var wg sync.WaitGroup
	for w := 0; w < 3; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				item := q.Get()
				if item.IsShutdown() {
					_ = q.TaskDone()
					return
				}
				time.Sleep(time.Millisecond)
				if err := q.TaskDone(); err != nil {
					t.Errorf("TaskDone failed: %v", err)
				}
			}
		}()
	}

	joined := make(chan struct{})
	go func() {
		q.Join()
		close(joined)
	}()

	select {
	case <-joined:
	case <-time.After(5 * time.Second):
		t.Fatal("Join did not return after all items were processed")
	}
	if q.Unfinished() != 0 {
		t.Errorf("expected 0 unfinished, got %d", q.Unfinished())
	}

	for w := 0; w < 3; w++ {
		q.Put(Shutdown[int]())
	}
	wg.Wait()
	if q.Unfinished() != 0 {
		t.Errorf("expected shutdown items to be balanced, got %d unfinished", q.Unfinished())
	}
}

func TestJoinBlocksWhileUnfinished(t *testing.T) {
	q := New[int]()
	q.Put(Work(1))
	q.Get()

	joined := make(chan struct{})
	go func() {
		q.Join()
		close(joined)
	}()

	select {
	case <-joined:
		t.Fatal("Join returned before TaskDone")
	case <-time.After(50 * time.Millisecond):
	}

	if err := q.TaskDone(); err != nil {
		t.Fatalf("TaskDone failed: %v", err)
	}
	select {
	case <-joined:
	case <-time.After(2 * time.Second):
		t.Fatal("Join did not return after TaskDone")
	}
}

func TestJoinOnEmptyQueueReturns(t *testing.T) {
	q := New[int]()
	done := make(chan struct{})
	go func() {
		q.Join()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Join blocked on an empty queue")
	}
}

func TestTaskDoneUnderflow(t *testing.T) {
	q := New[int]()
	if err := q.TaskDone(); !errors.Is(err, ErrTaskDoneUnderflow) {
		t.Fatalf("expected ErrTaskDoneUnderflow, got %v", err)
	}
	q.Put(Work(1))
	if err := q.TaskDone(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := q.TaskDone(); !errors.Is(err, ErrTaskDoneUnderflow) {
		t.Fatalf("expected ErrTaskDoneUnderflow, got %v", err)
	}
}
