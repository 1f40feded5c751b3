package state

import (
	"fmt"
	"strconv"
	"strings"
)

func ParseNode(s string) (NodeId, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return NoNode, fmt.Errorf("%w: %q is not a node id", ErrMalformedInput, s)
	}
	return NodeId(id), nil
}

func ParseWeight(s string) (float64, error) {
	w, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a weight", ErrMalformedInput, s)
	}
	return w, nil
}

func FormatWeight(w float64) string {
	return strconv.FormatFloat(w, 'g', -1, 64)
}

// ParseLink parses u-v-weight. The weight may be negative, e.g. 1-2--3.
func ParseLink(s string) (Link, error) {
	spl := strings.SplitN(strings.TrimSpace(s), "-", 3)
	if len(spl) != 3 {
		return Link{}, fmt.Errorf("%w: %q, expected u-v-weight", ErrMalformedInput, s)
	}
	u, err := ParseNode(spl[0])
	if err != nil {
		return Link{}, err
	}
	v, err := ParseNode(spl[1])
	if err != nil {
		return Link{}, err
	}
	w, err := ParseWeight(spl[2])
	if err != nil {
		return Link{}, err
	}
	return Link{U: u, V: v, Weight: w}, nil
}

func ParseLinks(args []string) ([]Link, error) {
	links := make([]Link, 0, len(args))
	for _, arg := range args {
		l, err := ParseLink(arg)
		if err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, nil
}

// ParseEdge parses u-v
func ParseEdge(s string) (NodeId, NodeId, error) {
	spl := strings.Split(strings.TrimSpace(s), "-")
	if len(spl) != 2 {
		return NoNode, NoNode, fmt.Errorf("%w: %q, expected u-v", ErrMalformedInput, s)
	}
	u, err := ParseNode(spl[0])
	if err != nil {
		return NoNode, NoNode, err
	}
	v, err := ParseNode(spl[1])
	if err != nil {
		return NoNode, NoNode, err
	}
	return u, v, nil
}
