package malloc

import "fmt"
import "sync/atomic"

import humanize "github.com/dustin/go-humanize"
import jsoniter "github.com/json-iterator/go"

import "github.com/bnclabs/gomem/api"

var _ api.Mallocer = (*Poolalloc)(nil)

var jsonconfig = jsoniter.ConfigFastest

// Stats return a snapshot of per bucket accounting. The snapshot is
// not synchronized with concurrent Alloc/Free and is best effort.
func (pool *Poolalloc) Stats() map[string]interface{} {
	stats := make(map[string]interface{})
	totala, totalu := int64(0), int64(0)
	for i := 0; i < pool.numsmall; i++ {
		size, sa := pool.sizes[i], pool.small[i]
		allocated, used := sa.Allocblocks(), sa.Usedblocks()
		stats[fmt.Sprintf("small.%d.allocated", size)] = allocated
		stats[fmt.Sprintf("small.%d.used", size)] = used
		totala += allocated * size
		totalu += used * size
	}
	for i, stack := range pool.large {
		size := pool.sizes[pool.numsmall+i]
		stats[fmt.Sprintf("large.%d.pooled", size)] = stack.Size()
	}
	largeheld := atomic.LoadInt64(&pool.largeheld)
	stats["large.held"] = largeheld
	stats["total.allocated"] = totala + largeheld
	stats["total.used"] = totalu
	return stats
}

// Printstats log a human readable snapshot of Stats(), one line per
// bucket.
func (pool *Poolalloc) Printstats() {
	stats := pool.Stats()
	for i := 0; i < pool.numsmall; i++ {
		size := pool.sizes[i]
		allocated := stats[fmt.Sprintf("small.%d.allocated", size)].(int64)
		used := stats[fmt.Sprintf("small.%d.used", size)].(int64)
		fmsg := "malloc.pool: size %8d allocated %8d used %8d\n"
		infof(fmsg, size, allocated, used)
	}
	for i := range pool.large {
		size := pool.sizes[pool.numsmall+i]
		pooled := stats[fmt.Sprintf("large.%d.pooled", size)].(int64)
		infof("malloc.pool: size %10d pooled %6d\n", size, pooled)
	}
	held := humanize.Bytes(uint64(stats["large.held"].(int64)))
	allocated := humanize.Bytes(uint64(stats["total.allocated"].(int64)))
	used := humanize.Bytes(uint64(stats["total.used"].(int64)))
	infof("malloc.pool: large held %v, allocated %v, used %v\n",
		held, allocated, used)
}

// Statsjson render Stats() as one JSON object.
func (pool *Poolalloc) Statsjson() []byte {
	data, err := jsonconfig.Marshal(pool.Stats())
	if err != nil {
		panicerr("marshaling stats: %v", err)
	}
	return data
}
