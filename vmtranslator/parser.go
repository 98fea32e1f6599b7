package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"hacktools/util"
)

// Translation errors. Every one of them is fatal: VM code is machine
// generated, so a bad command means the whole input is suspect and partial
// output must be discarded.
var (
	ErrUnknownCommand          = errors.New("unknown command")
	ErrMalformedCommand        = errors.New("malformed command")
	ErrInvalidSegmentOperation = errors.New("invalid segment operation")
)

const commentMarker = "//"

// parseLine converts one line of VM source into a Command. It returns
// (nil, nil) for lines that are blank or comment-only after stripping.
func parseLine(line string) (*Command, error) {
	if i := strings.Index(line, commentMarker); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}
	mnemonic := fields[0]
	tp, known := commandTypes[mnemonic]
	if !known {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, mnemonic)
	}
	switch tp {
	case ArithmeticCommand, ReturnCommand:
		if len(fields) != 1 {
			return nil, arityError(mnemonic, 0, len(fields)-1)
		}
		return &Command{Type: tp, Op: mnemonic}, nil
	case PushCommand, PopCommand:
		if len(fields) != 3 {
			return nil, arityError(mnemonic, 2, len(fields)-1)
		}
		segment, ok := segments[fields[1]]
		if !ok {
			return nil, fmt.Errorf("%w: %s: bad segment %q", ErrMalformedCommand, mnemonic, fields[1])
		}
		index, err := parseIndex(mnemonic, fields[2])
		if err != nil {
			return nil, err
		}
		return &Command{Type: tp, Segment: segment, Index: index}, nil
	case LabelCommand, GotoCommand, IfGotoCommand:
		if len(fields) != 2 {
			return nil, arityError(mnemonic, 1, len(fields)-1)
		}
		symbol, err := parseSymbol(mnemonic, fields[1])
		if err != nil {
			return nil, err
		}
		return &Command{Type: tp, Symbol: symbol}, nil
	case FunctionCommand, CallCommand:
		if len(fields) != 3 {
			return nil, arityError(mnemonic, 2, len(fields)-1)
		}
		symbol, err := parseSymbol(mnemonic, fields[1])
		if err != nil {
			return nil, err
		}
		index, err := parseIndex(mnemonic, fields[2])
		if err != nil {
			return nil, err
		}
		return &Command{Type: tp, Symbol: symbol, Index: index}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, mnemonic)
}

func arityError(mnemonic string, want, got int) error {
	return fmt.Errorf("%w: %s takes %d operands, got %d", ErrMalformedCommand, mnemonic, want, got)
}

func parseIndex(mnemonic, token string) (int, error) {
	n, err := strconv.Atoi(token)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s: %q is not a non-negative integer", ErrMalformedCommand, mnemonic, token)
	}
	return n, nil
}

func parseSymbol(mnemonic, token string) (string, error) {
	if !util.IsSymbol(token) {
		return "", fmt.Errorf("%w: %s: bad symbol %q", ErrMalformedCommand, mnemonic, token)
	}
	return token, nil
}
