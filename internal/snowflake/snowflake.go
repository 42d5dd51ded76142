package snowflake

import "github.com/bwmarrin/snowflake"

var node *snowflake.Node

// Init sets up the process-wide snowflake node. The node ID must be
// unique across running instances (0-1023).
func Init(nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return err
	}
	node = n
	return nil
}

// NextID returns a new unique record identifier.
func NextID() int64 {
	return node.Generate().Int64()
}
