package main

import "fmt"

// The Hack VM instruction set is closed. There are four groups of commands:
//
// Arithmetic commands: add, sub, neg, eq, gt, lt, and, or, not.
// Memory access commands: push segment index, pop segment index, where
// segment is one of argument, local, static, constant, this, that, pointer,
// temp.
// Program flow commands: label name, goto name, if-goto name.
// Function commands: function f k, call f n, return.

type CommandType int

const (
	ArithmeticCommand CommandType = iota
	PushCommand
	PopCommand
	LabelCommand
	GotoCommand
	IfGotoCommand
	FunctionCommand
	CallCommand
	ReturnCommand
)

type Segment int

const (
	ConstantSegment Segment = iota
	LocalSegment
	ArgumentSegment
	ThisSegment
	ThatSegment
	PointerSegment
	TempSegment
	StaticSegment
)

// Command is one parsed VM instruction. Which fields are meaningful depends
// on Type: Op for arithmetic commands, Segment/Index for push and pop,
// Symbol for the flow commands and for function/call names, Index again for
// a function's local count and a call's argument count. A Command is never
// mutated after the parser returns it.
type Command struct {
	Type    CommandType
	Op      string
	Segment Segment
	Index   int
	Symbol  string
}

var commandTypes = map[string]CommandType{
	"add":      ArithmeticCommand,
	"sub":      ArithmeticCommand,
	"neg":      ArithmeticCommand,
	"eq":       ArithmeticCommand,
	"gt":       ArithmeticCommand,
	"lt":       ArithmeticCommand,
	"and":      ArithmeticCommand,
	"or":       ArithmeticCommand,
	"not":      ArithmeticCommand,
	"push":     PushCommand,
	"pop":      PopCommand,
	"label":    LabelCommand,
	"goto":     GotoCommand,
	"if-goto":  IfGotoCommand,
	"function": FunctionCommand,
	"call":     CallCommand,
	"return":   ReturnCommand,
}

var segments = map[string]Segment{
	"constant": ConstantSegment,
	"local":    LocalSegment,
	"argument": ArgumentSegment,
	"this":     ThisSegment,
	"that":     ThatSegment,
	"pointer":  PointerSegment,
	"temp":     TempSegment,
	"static":   StaticSegment,
}

var segmentNames = map[Segment]string{
	ConstantSegment: "constant",
	LocalSegment:    "local",
	ArgumentSegment: "argument",
	ThisSegment:     "this",
	ThatSegment:     "that",
	PointerSegment:  "pointer",
	TempSegment:     "temp",
	StaticSegment:   "static",
}

// String renders the command back in VM source form.
func (c *Command) String() string {
	switch c.Type {
	case ArithmeticCommand:
		return c.Op
	case PushCommand:
		return fmt.Sprintf("push %s %d", segmentNames[c.Segment], c.Index)
	case PopCommand:
		return fmt.Sprintf("pop %s %d", segmentNames[c.Segment], c.Index)
	case LabelCommand:
		return "label " + c.Symbol
	case GotoCommand:
		return "goto " + c.Symbol
	case IfGotoCommand:
		return "if-goto " + c.Symbol
	case FunctionCommand:
		return fmt.Sprintf("function %s %d", c.Symbol, c.Index)
	case CallCommand:
		return fmt.Sprintf("call %s %d", c.Symbol, c.Index)
	case ReturnCommand:
		return "return"
	}
	return ""
}
