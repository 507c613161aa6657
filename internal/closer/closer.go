package closer

import (
	"log"
	"sync"
)

var (
	closers []func() error
	mu      sync.Mutex
)

func Add(closer func() error) {
	mu.Lock()
	defer mu.Unlock()
	closers = append(closers, closer)
}

func CloseAll() {
	mu.Lock()
	defer mu.Unlock()
	for _, closer := range closers {
		if err := closer(); err != nil {
			log.Printf("Failed to close resource: %v", err)
		}
	}
}
