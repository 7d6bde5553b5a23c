package malloc

import "testing"
import "unsafe"

func TestNewBlockalloc(t *testing.T) {
	ba := NewBlockalloc(96, 8, 96*32)
	if x := ba.Blocksize(); x != 96 {
		t.Errorf("expected %v, got %v", 96, x)
	} else if x := ba.Allocblocks(); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	} else if x := ba.Usedblocks(); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	}

	// blocks below the minimum size.
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		NewBlockalloc(4, 0, 0)
	}()
}

func TestBlockallocAlloc(t *testing.T) {
	size, count := int64(96), 500
	ba := NewBlockalloc(size, 0, size*32)

	ptrs := make(map[unsafe.Pointer]bool)
	for i := 0; i < count; i++ {
		ptr := ba.Alloc()
		if ptr == nil {
			t.Fatalf("unexpected nil pointer")
		} else if (uintptr(ptr) & 7) != 0 {
			t.Fatalf("pointer %p not 8 byte aligned", ptr)
		} else if ptrs[ptr] {
			t.Fatalf("pointer %p handed out twice", ptr)
		}
		ptrs[ptr] = true
		block := unsafe.Slice((*byte)(ptr), size)
		for j := range block {
			block[j] = byte(i)
		}
	}
	if x := ba.Usedblocks(); x != int64(count) {
		t.Errorf("expected %v, got %v", count, x)
	} else if x := ba.Allocblocks(); x < int64(count) {
		t.Errorf("expected at least %v, got %v", count, x)
	}

	for ptr := range ptrs {
		ba.Free(ptr)
	}
	if x := ba.Usedblocks(); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	}

	// free of nil pointer.
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		ba.Free(nil)
	}()

	ba.Clear()
}

func TestBlockallocReserve(t *testing.T) {
	size := int64(64)
	ba := NewBlockalloc(size, 0, size*100)
	ba.Reserve(size * 1000)
	if x := ba.Allocblocks(); x != 1000 {
		t.Errorf("expected %v, got %v", 1000, x)
	} else if x := ba.Usedblocks(); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	}
	ba.Clear()
}

func TestBlockallocClear(t *testing.T) {
	ba := NewBlockalloc(64, 0, 64*16)
	ptrs := []unsafe.Pointer{}
	for i := 0; i < 100; i++ {
		ptrs = append(ptrs, ba.Alloc())
	}
	for _, ptr := range ptrs {
		ba.Free(ptr)
	}
	ba.Clear()
	if x := ba.Allocblocks(); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	} else if x := ba.Usedblocks(); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	}
	// allocator remains usable after Clear.
	if ptr := ba.Alloc(); ptr == nil {
		t.Errorf("unexpected nil pointer")
	} else {
		ba.Free(ptr)
		ba.Clear()
	}
}
