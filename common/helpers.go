package common

import (
	"errors"
	"sync"
)

// AsyncMapReduce runs mapFunc for every element of payload in its own
// goroutine and folds the successful results into acc with reduceFunc.
// reduceFunc is only ever called from a single goroutine, so acc needs no
// locking. Failed elements are skipped and their errors joined.
func AsyncMapReduce[T, P, A any](
	payload []T,
	acc A,
	mapFunc func(value T) (P, error),
	reduceFunc func(acc A, value P) A,
) (A, error) {
	var errs []error
	var wg sync.WaitGroup

	wg.Add(len(payload))

	resChan := make(chan P)
	defer close(resChan)

	errChan := make(chan error)
	defer close(errChan)

	doneChan := make(chan struct{})
	defer close(doneChan)

	for _, value := range payload {
		go func(v T) {
			mapRes, err := mapFunc(v)
			if err != nil {
				errChan <- err
				return
			}
			resChan <- mapRes
		}(value)
	}

	go func() {
		for {
			select {
			case res := <-resChan:
				acc = reduceFunc(acc, res)
				wg.Done()
			case err := <-errChan:
				errs = append(errs, err)
				wg.Done()
			case <-doneChan:
				return
			}
		}
	}()

	wg.Wait()

	doneChan <- struct{}{}

	return acc, errors.Join(errs...)
}
