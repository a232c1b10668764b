package ballast

import "sync"

// task splits data in contiguous chunks, one goroutine per chunk.
// fn receives the worker id so results can be gathered without locking.
func task[T any](workersCount int, data []T, fn func(worker int, data T)) {
	var wg sync.WaitGroup
	dataSize := len(data)
	chunkSize := (dataSize + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		wg.Add(1)
		go func(worker, start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(worker, data[i])
			}
		}(workerID, workerID*chunkSize, min((workerID+1)*chunkSize, dataSize))
	}
	wg.Wait()
}
