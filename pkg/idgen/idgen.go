// Package idgen hands out snowflake ids. Ids from one Generator are strictly
// increasing, which makes them usable as a tie-break for events that share
// a timestamp.
package idgen

import (
	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
)

// Generator produces unique, monotonically increasing int64 ids.
type Generator struct {
	node *snowflake.Node
}

// New creates a generator for the given node number (0-1023).
func New(node int64) (*Generator, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, errors.Wrap(err, "create snowflake node failed")
	}
	return &Generator{node: n}, nil
}

// Next returns the next id.
func (g *Generator) Next() int64 {
	return g.node.Generate().Int64()
}
