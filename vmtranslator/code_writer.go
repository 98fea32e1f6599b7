package main

import (
	"bytes"
	"fmt"
)

// Hack memory layout constants.
const (
	stackOrigin  = 256
	tempBase     = 5
	tempSlots    = 8
	entryPoint   = "Sys.init"
	scratchFrame = "R13" // saved frame base during return
	scratchRet   = "R14" // saved return address during return
	scratchAddr  = "R13" // computed destination address during pop
)

var segmentBase = map[Segment]string{
	LocalSegment:    "LCL",
	ArgumentSegment: "ARG",
	ThisSegment:     "THIS",
	ThatSegment:     "THAT",
}

// CodeWriter turns Commands into Hack assembly. One instance owns the whole
// translation state for a run: the current source file (qualifies static
// symbols), the current function (qualifies user labels), and a counter that
// keeps every generated label unique across the output. Nothing here is
// process-global, so independent translations never interfere.
type CodeWriter struct {
	output          bytes.Buffer
	fileName        string
	currentFunction string
	labelCounter    int
}

func NewCodeWriter() *CodeWriter {
	return &CodeWriter{}
}

// SetFileName marks the start of a new source file. The name must be the
// file stem, without the .vm extension. currentFunction deliberately
// survives file boundaries: a function body never spans files, but calls
// across files resolve at assembly time.
func (cw *CodeWriter) SetFileName(name string) {
	cw.fileName = name
}

func (cw *CodeWriter) Output() []byte {
	return cw.output.Bytes()
}

// WriteCommand emits the assembly for one command, preceded by an echo of
// the command itself as a comment.
func (cw *CodeWriter) WriteCommand(cmd *Command) error {
	fmt.Fprintf(&cw.output, "// %s\n", cmd)
	switch cmd.Type {
	case ArithmeticCommand:
		cw.writeArithmetic(cmd.Op)
	case PushCommand:
		return cw.writePush(cmd.Segment, cmd.Index)
	case PopCommand:
		return cw.writePop(cmd.Segment, cmd.Index)
	case LabelCommand:
		fmt.Fprintf(&cw.output, "(%s)\n", cw.scopedLabel(cmd.Symbol))
	case GotoCommand:
		fmt.Fprintf(&cw.output, "@%s\n0;JMP\n", cw.scopedLabel(cmd.Symbol))
	case IfGotoCommand:
		cw.writePopD()
		fmt.Fprintf(&cw.output, "@%s\nD;JNE\n", cw.scopedLabel(cmd.Symbol))
	case FunctionCommand:
		cw.writeFunction(cmd.Symbol, cmd.Index)
	case CallCommand:
		cw.writeCall(cmd.Symbol, cmd.Index)
	case ReturnCommand:
		cw.writeReturn()
	}
	return nil
}

// WriteBootstrap emits the program prologue: point SP at the stack origin,
// then call the entry function with the full calling convention. The saved
// frame has nothing meaningful in it, which is fine, because a well-formed
// Sys.init never returns.
func (cw *CodeWriter) WriteBootstrap() {
	fmt.Fprintf(&cw.output, "// bootstrap\n@%d\nD=A\n@SP\nM=D\n", stackOrigin)
	cw.writeCall(entryPoint, 0)
}

// writePushD appends D to the stack.
func (cw *CodeWriter) writePushD() {
	cw.output.WriteString("@SP\nA=M\nM=D\n@SP\nM=M+1\n")
}

// writePopD removes the top of the stack into D.
func (cw *CodeWriter) writePopD() {
	cw.output.WriteString("@SP\nAM=M-1\nD=M\n")
}

// directAddress resolves the segments whose cells have fixed assembly
// symbols, needing no base-register dereference.
func (cw *CodeWriter) directAddress(segment Segment, index int) (string, error) {
	switch segment {
	case PointerSegment:
		switch index {
		case 0:
			return "THIS", nil
		case 1:
			return "THAT", nil
		}
		return "", fmt.Errorf("%w: pointer index must be 0 or 1, got %d", ErrInvalidSegmentOperation, index)
	case TempSegment:
		if index >= tempSlots {
			return "", fmt.Errorf("%w: temp index must be below %d, got %d", ErrInvalidSegmentOperation, tempSlots, index)
		}
		return fmt.Sprintf("%d", tempBase+index), nil
	case StaticSegment:
		return fmt.Sprintf("%s.%d", cw.fileName, index), nil
	}
	return "", nil
}

func (cw *CodeWriter) writePush(segment Segment, index int) error {
	if segment == ConstantSegment {
		fmt.Fprintf(&cw.output, "@%d\nD=A\n", index)
		cw.writePushD()
		return nil
	}
	if base, ok := segmentBase[segment]; ok {
		fmt.Fprintf(&cw.output, "@%d\nD=A\n@%s\nA=D+M\nD=M\n", index, base)
		cw.writePushD()
		return nil
	}
	addr, err := cw.directAddress(segment, index)
	if err != nil {
		return err
	}
	fmt.Fprintf(&cw.output, "@%s\nD=M\n", addr)
	cw.writePushD()
	return nil
}

func (cw *CodeWriter) writePop(segment Segment, index int) error {
	if segment == ConstantSegment {
		return fmt.Errorf("%w: constant is not a pop target", ErrInvalidSegmentOperation)
	}
	if base, ok := segmentBase[segment]; ok {
		// Destination address goes through a scratch register because
		// both it and the popped value need to be live at the store.
		fmt.Fprintf(&cw.output, "@%d\nD=A\n@%s\nD=D+M\n@%s\nM=D\n", index, base, scratchAddr)
		cw.writePopD()
		fmt.Fprintf(&cw.output, "@%s\nA=M\nM=D\n", scratchAddr)
		return nil
	}
	addr, err := cw.directAddress(segment, index)
	if err != nil {
		return err
	}
	cw.writePopD()
	fmt.Fprintf(&cw.output, "@%s\nM=D\n", addr)
	return nil
}

var binaryOps = map[string]string{
	"add": "M=D+M",
	"sub": "M=M-D",
	"and": "M=D&M",
	"or":  "M=D|M",
}

var unaryOps = map[string]string{
	"neg": "M=-M",
	"not": "M=!M",
}

var comparisonJumps = map[string]string{
	"eq": "JEQ",
	"gt": "JGT",
	"lt": "JLT",
}

func (cw *CodeWriter) writeArithmetic(op string) {
	if combine, ok := binaryOps[op]; ok {
		fmt.Fprintf(&cw.output, "@SP\nAM=M-1\nD=M\nA=A-1\n%s\n", combine)
		return
	}
	if mutate, ok := unaryOps[op]; ok {
		fmt.Fprintf(&cw.output, "@SP\nA=M-1\n%s\n", mutate)
		return
	}
	// Comparison: x-y in D, branch on its sign, leave -1 (true) or 0
	// (false) on the stack. The two labels are fresh for every
	// comparison in the program.
	jump := comparisonJumps[op]
	trueLabel := fmt.Sprintf("TRUE_%d", cw.labelCounter)
	endLabel := fmt.Sprintf("END_%d", cw.labelCounter)
	cw.labelCounter++
	fmt.Fprintf(&cw.output,
		"@SP\nAM=M-1\nD=M\nA=A-1\nD=M-D\n@%s\nD;%s\n@SP\nA=M-1\nM=0\n@%s\n0;JMP\n(%s)\n@SP\nA=M-1\nM=-1\n(%s)\n",
		trueLabel, jump, endLabel, trueLabel, endLabel)
}

// scopedLabel qualifies a user label by the enclosing function, or by the
// source file for top-level code, so equal label names in different
// functions never collide in the output.
func (cw *CodeWriter) scopedLabel(symbol string) string {
	scope := cw.currentFunction
	if scope == "" {
		scope = cw.fileName
	}
	return scope + "$" + symbol
}

func (cw *CodeWriter) writeFunction(name string, nLocals int) {
	fmt.Fprintf(&cw.output, "(%s)\n", name)
	cw.currentFunction = name
	for i := 0; i < nLocals; i++ {
		cw.output.WriteString("@SP\nA=M\nM=0\n@SP\nM=M+1\n")
	}
}

func (cw *CodeWriter) writeCall(name string, nArgs int) {
	returnLabel := fmt.Sprintf("%s$ret.%d", name, cw.labelCounter)
	cw.labelCounter++
	// Saved frame, in order: return address, LCL, ARG, THIS, THAT.
	fmt.Fprintf(&cw.output, "@%s\nD=A\n", returnLabel)
	cw.writePushD()
	for _, reg := range []string{"LCL", "ARG", "THIS", "THAT"} {
		fmt.Fprintf(&cw.output, "@%s\nD=M\n", reg)
		cw.writePushD()
	}
	// ARG = SP-5-nArgs, LCL = SP.
	fmt.Fprintf(&cw.output, "@%d\nD=A\n@SP\nD=M-D\n@ARG\nM=D\n", nArgs+5)
	cw.output.WriteString("@SP\nD=M\n@LCL\nM=D\n")
	fmt.Fprintf(&cw.output, "@%s\n0;JMP\n(%s)\n", name, returnLabel)
}

func (cw *CodeWriter) writeReturn() {
	// The frame base must be captured before LCL is overwritten by the
	// restore sequence, and the return address before *ARG is, since for
	// a zero-argument call the return-address slot and ARG[0] coincide.
	fmt.Fprintf(&cw.output, "@LCL\nD=M\n@%s\nM=D\n", scratchFrame)
	fmt.Fprintf(&cw.output, "@5\nA=D-A\nD=M\n@%s\nM=D\n", scratchRet)
	cw.writePopD()
	cw.output.WriteString("@ARG\nA=M\nM=D\n")
	cw.output.WriteString("@ARG\nD=M+1\n@SP\nM=D\n")
	for _, reg := range []string{"THAT", "THIS", "ARG", "LCL"} {
		fmt.Fprintf(&cw.output, "@%s\nAM=M-1\nD=M\n@%s\nM=D\n", scratchFrame, reg)
	}
	fmt.Fprintf(&cw.output, "@%s\nA=M\n0;JMP\n", scratchRet)
}
