package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeVM(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0666))
	return path
}

func TestTranslator_SingleFileHasNoBootstrap(t *testing.T) {
	path := writeVM(t, t.TempDir(), "Simple.vm", `
// adds two constants
push constant 7
push constant 8
add
`)
	translator := NewTranslator(true)
	require.NoError(t, translator.Translate(path))
	out := string(translator.Output())
	assert.NotContains(t, out, "// bootstrap")
	assert.Contains(t, out, "@7\nD=A\n@SP\nA=M\nM=D\n@SP\nM=M+1\n")
	assert.Contains(t, out, "@8\nD=A\n")
	assert.Contains(t, out, "@SP\nAM=M-1\nD=M\nA=A-1\nM=D+M\n")
}

func TestTranslator_DirectoryEmitsBootstrapFirst(t *testing.T) {
	dir := t.TempDir()
	writeVM(t, dir, "Sys.vm", `
function Sys.init 0
push static 0
call Main.main 0
return
`)
	writeVM(t, dir, "Main.vm", `
function Main.main 0
push static 0
return
`)
	translator := NewTranslator(true)
	require.NoError(t, translator.Translate(dir))
	out := string(translator.Output())

	assert.True(t, strings.HasPrefix(out, "// bootstrap\n@256\nD=A\n@SP\nM=D\n"))
	// The bootstrap call lands before any file content; files follow in
	// name order.
	boot := strings.Index(out, "@Sys.init\n0;JMP\n(Sys.init$ret.0)\n")
	mainDecl := strings.Index(out, "(Main.main)\n")
	sysDecl := strings.Index(out, "(Sys.init)\n")
	require.True(t, boot >= 0 && mainDecl > boot && sysDecl > mainDecl)
	// One static cell per file+index pair.
	assert.Contains(t, out, "@Main.0\nD=M\n")
	assert.Contains(t, out, "@Sys.0\nD=M\n")
}

func TestTranslator_NoBootstrapOverride(t *testing.T) {
	dir := t.TempDir()
	writeVM(t, dir, "Frag.vm", "push constant 1\n")
	translator := NewTranslator(false)
	require.NoError(t, translator.Translate(dir))
	assert.NotContains(t, string(translator.Output()), "// bootstrap")
}

func TestTranslator_SkipsNonVMEntries(t *testing.T) {
	dir := t.TempDir()
	writeVM(t, dir, "Main.vm", "push constant 1\n")
	writeVM(t, dir, "README.txt", "not vm code at all\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0777))
	translator := NewTranslator(false)
	require.NoError(t, translator.Translate(dir))
	assert.Contains(t, string(translator.Output()), "// push constant 1\n")
}

func TestTranslator_CurrentFunctionSurvivesFileBoundary(t *testing.T) {
	dir := t.TempDir()
	writeVM(t, dir, "A.vm", "function A.run 0\n")
	writeVM(t, dir, "B.vm", "label NEXT\n")
	translator := NewTranslator(false)
	require.NoError(t, translator.Translate(dir))
	assert.Contains(t, string(translator.Output()), "(A.run$NEXT)\n")
}

func TestTranslator_ErrorCarriesFileAndLine(t *testing.T) {
	path := writeVM(t, t.TempDir(), "Bad.vm", "push constant 1\npush constant\n")
	translator := NewTranslator(true)
	err := translator.Translate(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedCommand)
	assert.Contains(t, err.Error(), "Bad.vm:2")
}

func TestTranslator_UnknownCommandAborts(t *testing.T) {
	path := writeVM(t, t.TempDir(), "Bad.vm", "frobnicate\n")
	translator := NewTranslator(true)
	err := translator.Translate(path)
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Contains(t, err.Error(), "Bad.vm:1")
}

func TestTranslator_PopConstantAborts(t *testing.T) {
	path := writeVM(t, t.TempDir(), "Bad.vm", "pop constant 3\n")
	translator := NewTranslator(true)
	err := translator.Translate(path)
	assert.ErrorIs(t, err, ErrInvalidSegmentOperation)
	assert.Contains(t, err.Error(), "Bad.vm:1")
}

func TestTranslator_SaveTo(t *testing.T) {
	dir := t.TempDir()
	path := writeVM(t, dir, "Simple.vm", "push constant 1\n")
	translator := NewTranslator(true)
	require.NoError(t, translator.Translate(path))
	outPath := filepath.Join(dir, "Simple.asm")
	require.NoError(t, translator.SaveTo(outPath))
	saved, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, translator.Output(), saved)
}
