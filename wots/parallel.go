package wots

import (
	"sync"

	"github.com/xmss-hw/wotsref/parameters"
)

// forEachChain calls fn once for every chain index. With more than one
// worker the indices are handed out over a channel; fn must only touch
// state owned by index i.
func forEachChain(params *parameters.Parameters, fn func(i int)) {
	if params.Workers < 2 {
		for i := 0; i < params.Len; i++ {
			fn(i)
		}
		return
	}

	chains := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < params.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range chains {
				fn(i)
			}
		}()
	}
	for i := 0; i < params.Len; i++ {
		chains <- i
	}
	close(chains)
	wg.Wait()
}
