package malloc

import "runtime"
import "sync"
import "sync/atomic"
import "testing"

func TestStackPushpop(t *testing.T) {
	stack := NewStack[int]()
	if _, ok := stack.Pop(); ok {
		t.Errorf("expected empty stack")
	}
	for i := 1; i <= 100; i++ {
		stack.Push(i)
		if x := stack.Size(); x != int64(i) {
			t.Errorf("expected %v, got %v", i, x)
		}
	}
	for i := 100; i >= 1; i-- {
		v, ok := stack.Pop()
		if !ok {
			t.Errorf("unexpected empty stack at %v", i)
		} else if v != i {
			t.Errorf("expected %v, got %v", i, v)
		}
	}
	if _, ok := stack.Pop(); ok {
		t.Errorf("expected empty stack")
	} else if x := stack.Size(); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	}
}

func TestStackSize(t *testing.T) {
	stack := NewStack[string]()
	pushes, pops := 0, 0
	for i := 0; i < 50; i++ {
		stack.Push("value")
		pushes++
		if i%3 == 0 {
			if _, ok := stack.Pop(); ok {
				pops++
			}
		}
	}
	if x := stack.Size(); x != int64(pushes-pops) {
		t.Errorf("expected %v, got %v", pushes-pops, x)
	}
}

func TestStackClear(t *testing.T) {
	stack := NewStack[int]()
	for i := 0; i < 10; i++ {
		stack.Push(i)
	}
	for i := 0; i < 3; i++ {
		stack.Pop()
	}
	stack.Clear()
	if x := stack.Size(); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	} else if _, ok := stack.Pop(); ok {
		t.Errorf("expected empty stack")
	}
	// stack remains usable after Clear.
	stack.Push(42)
	if v, ok := stack.Pop(); !ok || v != 42 {
		t.Errorf("expected %v, got %v (%v)", 42, v, ok)
	}
}

func TestStackConcurPush(t *testing.T) {
	stack := NewStack[int]()

	var wg sync.WaitGroup
	wg.Add(2)
	for _, base := range []int{1, 1001} {
		go func(base int) {
			defer wg.Done()
			for i := base; i < base+1000; i++ {
				stack.Push(i)
			}
		}(base)
	}
	wg.Wait()

	if x := stack.Size(); x != 2000 {
		t.Errorf("expected %v, got %v", 2000, x)
	}

	// drain single threaded: no repeats, no omissions, and each
	// pusher's own values come out in reverse push order.
	seen := make([]bool, 2001)
	prevlow, prevhigh := 1001, 2001
	count := 0
	for {
		v, ok := stack.Pop()
		if !ok {
			break
		}
		count++
		if v < 1 || v > 2000 {
			t.Fatalf("unexpected value %v", v)
		} else if seen[v] {
			t.Fatalf("duplicate value %v", v)
		}
		seen[v] = true
		if v <= 1000 {
			if v >= prevlow {
				t.Fatalf("lifo order violated: %v after %v", v, prevlow)
			}
			prevlow = v
		} else {
			if v >= prevhigh {
				t.Fatalf("lifo order violated: %v after %v", v, prevhigh)
			}
			prevhigh = v
		}
	}
	if count != 2000 {
		t.Errorf("expected %v, got %v", 2000, count)
	}
}

func TestStackConcurPushpop(t *testing.T) {
	stack := NewStack[int64]()
	npushers, npoppers, repeat := 4, 4, 10000

	var popped [4][]int64
	var wg sync.WaitGroup
	var done int64

	wg.Add(npushers)
	for n := 0; n < npushers; n++ {
		go func(n int) {
			defer wg.Done()
			for i := 0; i < repeat; i++ {
				stack.Push(int64(n*repeat + i))
			}
		}(n)
	}

	var pwg sync.WaitGroup
	pwg.Add(npoppers)
	for n := 0; n < npoppers; n++ {
		go func(n int) {
			defer pwg.Done()
			for {
				if v, ok := stack.Pop(); ok {
					popped[n] = append(popped[n], v)
				} else if atomic.LoadInt64(&done) == 1 {
					return
				} else {
					runtime.Gosched()
				}
			}
		}(n)
	}

	wg.Wait()
	atomic.StoreInt64(&done, 1)
	pwg.Wait()

	// drain whatever the poppers left behind.
	rest := []int64{}
	for {
		v, ok := stack.Pop()
		if !ok {
			break
		}
		rest = append(rest, v)
	}

	total := npushers * repeat
	seen := make([]bool, total)
	count := 0
	for _, vs := range [][]int64{popped[0], popped[1], popped[2], popped[3], rest} {
		for _, v := range vs {
			if v < 0 || v >= int64(total) {
				t.Fatalf("unexpected value %v", v)
			} else if seen[v] {
				t.Fatalf("duplicate value %v", v)
			}
			seen[v] = true
			count++
		}
	}
	if count != total {
		t.Errorf("expected %v, got %v", total, count)
	}
}
