package utils

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var orderMu sync.Mutex
var seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenerateOrderID returns a ledger/withdrawal order id unique enough for a
// uniqueIndex column: nanosecond fragment + random part + owner id.
func GenerateOrderID(userID uint) string {
	orderMu.Lock()
	defer orderMu.Unlock()

	nanoPart := time.Now().UnixNano() % 1000000
	randPart := seededRand.Intn(900) + 100
	return fmt.Sprintf("TVN-%06d%03d%d", nanoPart, randPart, userID)
}
