package snowflake

import (
	"fmt"
	"hash/fnv"
	"os"
	"sync"

	bwsnowflake "github.com/bwmarrin/snowflake"
)

// the library default of 10 node bits
const maxNodeID = 1023

var (
	mu   sync.Mutex
	node *bwsnowflake.Node
)

// SetNodeID pins the node this replica mints session ids under. Replicas
// sharing a node id may mint the same id within one millisecond.
func SetNodeID(id int64) error {
	if id < 0 || id > maxNodeID {
		return fmt.Errorf("snowflake node id %d out of range [0, %d]", id, maxNodeID)
	}
	n, err := bwsnowflake.NewNode(id)
	if err != nil {
		return err
	}
	mu.Lock()
	node = n
	mu.Unlock()
	return nil
}

// hostNodeID hashes the hostname into the node id space.
func hostNodeID() int64 {
	host, err := os.Hostname()
	if err != nil {
		return 1
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(host))
	return int64(h.Sum32()) & maxNodeID
}

func current() *bwsnowflake.Node {
	mu.Lock()
	defer mu.Unlock()
	if node == nil {
		n, err := bwsnowflake.NewNode(hostNodeID())
		if err != nil {
			n, _ = bwsnowflake.NewNode(1)
		}
		node = n
	}
	return node
}

// Next returns a new session id.
func Next() int64 {
	return current().Generate().Int64()
}
