package uid

import (
	"errors"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node    *snowflake.Node
	once    sync.Once
	initErr error
)

var ErrNotInitialized = errors.New("uid: node not initialized")

// Init sets up the snowflake node for this process. Only the first call has
// any effect, later calls return its result.
func Init(nodeID int64) error {
	once.Do(func() {
		node, initErr = snowflake.NewNode(nodeID)
	})
	return initErr
}

// Generate returns a new company id. It panics when Init was never called
// successfully.
func Generate() int64 {
	if node == nil {
		panic(ErrNotInitialized)
	}
	return node.Generate().Int64()
}
