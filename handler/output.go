package handler

import (
	"bytes"
	"fmt"

	"github.com/neovim/go-client/nvim"
)

const modifiableOptionName = "modifiable"

// Buffer replaces the contents of a neovim buffer on every write
type Buffer struct {
	buffer nvim.Buffer
	vim    *nvim.Nvim
}

func newBuffer(vim *nvim.Nvim, buffer nvim.Buffer) *Buffer {
	return &Buffer{
		buffer: buffer,
		vim:    vim,
	}
}

// splitLines splits p by newlines. A trailing newline does not produce an empty line.
// Long lines (e.g. compact JSON) are kept whole.
func splitLines(p []byte) [][]byte {
	p = bytes.TrimSuffix(p, []byte("\n"))
	if len(p) < 1 {
		return [][]byte{}
	}

	lines := bytes.Split(p, []byte("\n"))
	for i, line := range lines {
		lines[i] = bytes.TrimSuffix(line, []byte("\r"))
	}
	return lines
}

func (b *Buffer) Write(p []byte) (int, error) {
	lines := splitLines(p)

	isModifiable := false
	err := b.vim.BufferOption(b.buffer, modifiableOptionName, &isModifiable)
	if err != nil {
		return 0, fmt.Errorf("b.vim.BufferOption: %w", err)
	}

	if !isModifiable {
		err = b.vim.SetBufferOption(b.buffer, modifiableOptionName, true)
		if err != nil {
			return 0, fmt.Errorf("b.vim.SetBufferOption: %w", err)
		}
		defer func() { _ = b.vim.SetBufferOption(b.buffer, modifiableOptionName, false) }()
	}

	err = b.vim.SetBufferLines(b.buffer, 0, -1, true, lines)
	if err != nil {
		return 0, fmt.Errorf("b.vim.SetBufferLines: %w", err)
	}

	return len(p), nil
}

// YankRegister stores every write into a vim register
type YankRegister struct {
	vim      *nvim.Nvim
	register string
}

func newYankRegister(vim *nvim.Nvim, register string) *YankRegister {
	return &YankRegister{
		vim:      vim,
		register: register,
	}
}

func (yr *YankRegister) Write(p []byte) (int, error) {
	err := yr.vim.Call("setreg", nil, yr.register, string(p))
	if err != nil {
		return 0, fmt.Errorf("yr.vim.Call: %w", err)
	}

	return len(p), nil
}
