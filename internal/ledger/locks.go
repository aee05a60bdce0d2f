package ledger

import (
	"sort"
	"sync"
)

// keyLocks: (storeID, productID) anahtarı başına mutex. Aynı stok kaydına
// gelen alım, satış ve düzeltme yazmaları bu kilit altında serileşir;
// farklı anahtarlar birbirini beklemez.
type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyLocks() *keyLocks {
	return &keyLocks{locks: make(map[string]*sync.Mutex)}
}

// lock: anahtarın kilidini alır, bırakma fonksiyonunu döner.
func (l *keyLocks) lock(key string) func() {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// lockAll: anahtarları tekilleştirip sıralı alır ki iki çağrı birbirini
// çapraz bekleyip kilitlenmesin. Bırakma ters sırada yapılır.
func (l *keyLocks) lockAll(keys []string) func() {
	uniq := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		uniq = append(uniq, k)
	}
	sort.Strings(uniq)

	unlocks := make([]func(), 0, len(uniq))
	for _, k := range uniq {
		unlocks = append(unlocks, l.lock(k))
	}
	return func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
}

func recordKey(storeID, productID string) string {
	return storeID + "|" + productID
}
