package circuit

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse reads a circuit in text format and validates it.
func Parse(r io.Reader) (*Circuit, error) {
	c := New()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		op, err := parseOperation(fields)
		if err != nil {
			return nil, &ValidationError{Index: -1, Line: line, Op: fields[0], cause: err}
		}
		if err := op.validate(maxTarget(op.Targets) + 1); err != nil {
			return nil, &ValidationError{Index: len(c.Ops), Line: line, Op: fields[0], cause: err}
		}
		c.add(op)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("circuit: read: %w", err)
	}
	return c, nil
}

// ParseString parses circuit text held in memory.
func ParseString(s string) (*Circuit, error) {
	return Parse(strings.NewReader(s))
}

// MustParse is like ParseString but panics on error. Intended for tests and
// fixed circuits compiled into programs.
func MustParse(s string) *Circuit {
	c, err := ParseString(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseOperation(fields []string) (Operation, error) {
	head := fields[0]
	name, arg, hasArg := head, "", false
	if open := strings.IndexByte(head, '('); open >= 0 {
		if !strings.HasSuffix(head, ")") {
			return Operation{}, fmt.Errorf("%w: unbalanced parenthesis in %q", ErrSyntax, head)
		}
		name, arg, hasArg = head[:open], head[open+1:len(head)-1], true
	}

	kind, ok := ParseKind(name)
	if !ok {
		return Operation{}, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}

	op := Operation{Kind: kind, Targets: make([]int, 0, len(fields)-1)}
	switch {
	case kind.TakesProbability() && !hasArg:
		return Operation{}, fmt.Errorf("%w: %s needs a probability", ErrSyntax, kind)
	case !kind.TakesProbability() && hasArg:
		return Operation{}, ErrUnexpectedProbability
	case hasArg:
		p, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil {
			return Operation{}, fmt.Errorf("%w: probability %q", ErrSyntax, arg)
		}
		op.Probability = p
	}

	for _, f := range fields[1:] {
		t, err := strconv.ParseUint(f, 10, 31)
		if err != nil {
			return Operation{}, fmt.Errorf("%w: target %q", ErrInvalidTarget, f)
		}
		op.Targets = append(op.Targets, int(t))
	}
	return op, nil
}

func maxTarget(ts []int) int {
	m := -1
	for _, t := range ts {
		m = max(m, t)
	}
	return m
}
