package lib

import "runtime"
import "sync"
import "sync/atomic"

// Parfor apply body over every index in [start, end), spreading the
// work across available cores. grain is the number of consecutive
// indices a worker claims at a time; workers claim chunks until the
// range is exhausted, so uneven bodies still balance.
func Parfor(start, end, grain int64, body func(index int64)) {
	count := end - start
	if count <= 0 {
		return
	}
	if grain <= 0 {
		grain = 1
	}
	nworkers := int64(runtime.GOMAXPROCS(0))
	if chunks := (count + grain - 1) / grain; nworkers > chunks {
		nworkers = chunks
	}
	if nworkers <= 1 {
		for i := start; i < end; i++ {
			body(i)
		}
		return
	}

	next := start
	var wg sync.WaitGroup
	wg.Add(int(nworkers))
	for w := int64(0); w < nworkers; w++ {
		go func() {
			defer wg.Done()
			for {
				claim := atomic.AddInt64(&next, grain) - grain
				if claim >= end {
					return
				}
				till := claim + grain
				if till > end {
					till = end
				}
				for i := claim; i < till; i++ {
					body(i)
				}
			}
		}()
	}
	wg.Wait()
}
