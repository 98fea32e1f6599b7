package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
)

const vmExtension = ".vm"

// Translator drives a whole translation run: it walks the input, feeds each
// line through the parser into one shared CodeWriter, and decides whether
// the run gets a bootstrap prologue. A single file is treated as an isolated
// fragment and translated raw; a directory is a complete program, so it is
// bootstrapped unless the caller opted out.
type Translator struct {
	writer    *CodeWriter
	bootstrap bool
}

func NewTranslator(bootstrap bool) *Translator {
	return &Translator{writer: NewCodeWriter(), bootstrap: bootstrap}
}

func (t *Translator) Output() []byte {
	return t.writer.Output()
}

// SaveTo writes the accumulated assembly to path.
func (t *Translator) SaveTo(path string) error {
	return os.WriteFile(path, t.writer.Output(), 0666)
}

// Translate translates the .vm file or directory of .vm files at path. The
// first bad command aborts the run; the accumulated output is then not
// valid assembly and must be discarded.
func (t *Translator) Translate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return t.translateDir(path)
	}
	return t.translateFile(path)
}

func (t *Translator) translateDir(path string) error {
	if t.bootstrap {
		t.writer.WriteBootstrap()
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), vmExtension) {
			continue
		}
		if err := t.translateFile(filepath.Join(path, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (t *Translator) translateFile(path string) error {
	glog.V(1).Infof("translating %s", path)
	name := filepath.Base(path)
	t.writer.SetFileName(strings.TrimSuffix(name, vmExtension))
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	scanner := bufio.NewScanner(file)
	lineno := 0
	for scanner.Scan() {
		lineno++
		cmd, err := parseLine(scanner.Text())
		if err != nil {
			return fmt.Errorf("%s:%d: %w", name, lineno, err)
		}
		if cmd == nil {
			continue
		}
		if err := t.writer.WriteCommand(cmd); err != nil {
			return fmt.Errorf("%s:%d: %w", name, lineno, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
