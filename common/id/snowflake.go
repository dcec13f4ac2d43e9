package id

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init initializes the Snowflake node with the given node ID. Call once at
// process start, before any id is generated.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New generates a globally unique, time-ordered int64 ID.
func New() int64 {
	return node.Generate().Int64()
}

// NewString returns a new ID in base58 string form. Used where the storage key
// is a string (audit events, synthesized message ids for non-message events).
func NewString() string {
	return node.Generate().Base58()
}
