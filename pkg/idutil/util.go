package idutil

import (
	"fmt"
	"hash/fnv"
	"os"

	"github.com/bwmarrin/snowflake"
)

// Generator hands out unique, roughly time-ordered ids.
type Generator interface {
	NewID(prefix string) string
}

type snowflakeGenerator struct {
	node *snowflake.Node
}

// NewSnowflakeGenerator creates a generator for the given node number
// (0..1023).
func NewSnowflakeGenerator(node int64) (Generator, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, err
	}

	return &snowflakeGenerator{node: n}, nil
}

// DefaultNode derives a node number from the hostname.
func DefaultNode() int64 {
	name, err := os.Hostname()
	if err != nil {
		return 0
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return int64(h.Sum32() % 1024)
}

func (g *snowflakeGenerator) NewID(prefix string) string {
	id := g.node.Generate().Base58()
	if prefix == "" {
		return id
	}

	return fmt.Sprintf("%s-%s", prefix, id)
}

// SequenceGenerator produces prefix-1, prefix-2, ... per prefix. It is used by
// the demo dataset and tests where readable ids matter.
type SequenceGenerator struct {
	next map[string]int
}

func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{next: map[string]int{}}
}

func (g *SequenceGenerator) NewID(prefix string) string {
	g.next[prefix]++
	return fmt.Sprintf("%s-%d", prefix, g.next[prefix])
}
