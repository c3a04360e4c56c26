package scenefile

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/turtlemotion/internal/turtle"
)

// CommandSpec is a turtle command in one of three forms:
//
//	- f 10
//	- th: -90
//	- parallel: [f 5, th 90]
//
// Unknown tags decode to a no-op command and are reported by Unknown.
type CommandSpec struct {
	turtle.Command
	unknown []string
}

// Unknown returns the unrecognized tags found in this command and its children.
func (c CommandSpec) Unknown() []string {
	return c.unknown
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *CommandSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		fields := strings.Fields(node.Value)
		if len(fields) != 2 {
			return errors.Errorf("line %d: command %q is not \"<tag> <value>\"", node.Line, node.Value)
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return errors.Wrapf(err, "line %d: command %q", node.Line, node.Value)
		}
		c.set(fields[0], v)
		return nil

	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return errors.Errorf("line %d: command mapping must have exactly one key", node.Line)
		}
		tag, val := node.Content[0].Value, node.Content[1]
		if strings.EqualFold(tag, "parallel") {
			var children []CommandSpec
			if err := val.Decode(&children); err != nil {
				return err
			}
			cmds := make([]turtle.Command, len(children))
			for i, child := range children {
				cmds[i] = child.Command
				c.unknown = append(c.unknown, child.unknown...)
			}
			c.Command = turtle.Parallel(cmds...)
			return nil
		}
		var v float64
		if err := val.Decode(&v); err != nil {
			return errors.Wrapf(err, "line %d: command %q", node.Line, tag)
		}
		c.set(tag, v)
		return nil
	}
	return errors.Errorf("line %d: unsupported command form", node.Line)
}

func (c *CommandSpec) set(tag string, v float64) {
	kind, ok := turtle.ParseKind(tag)
	if !ok || kind == turtle.KindParallel {
		c.Command = turtle.Command{Kind: turtle.KindNone, Value: v}
		c.unknown = append(c.unknown, tag)
		return
	}
	c.Command = turtle.Command{Kind: kind, Value: v}
}
