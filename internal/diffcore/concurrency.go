package diffcore

import "sync"

// runBounded calls work(i) for i in [0, n) across at most `parallel`
// goroutines at a time, and blocks until every call has returned. A
// plain buffered-channel semaphore is enough here: no third-party
// worker-pool dependency is warranted for something this small.
func runBounded(n, parallel int, work func(i int)) {
	if parallel > n {
		parallel = n
	}
	sem := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			work(i)
		}(i)
	}
	wg.Wait()
}
