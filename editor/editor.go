// Package editor is the text-side surface of the sync loop: a
// document the user types into, with line-range decorations for
// highlighting. The in-memory Buffer stands in for a real editor;
// anything that can satisfy Editor can be driven the same way.
package editor

import (
	"go.lsp.dev/protocol"
)

// ChangeFunc observes user edits. Programmatic writes through
// SetContent never fire it; that distinction is what keeps
// generated text from re-triggering a parse.
type ChangeFunc func(text string)

// Editor is the contract the sync controller drives.
type Editor interface {
	Content() string

	// SetContent replaces the document without firing change
	// observers. Used for generated text.
	SetContent(text string)

	Decorate(r protocol.Range)
	ClearDecorations()
	OnChange(fn ChangeFunc)
}

// Buffer is an in-memory Editor.
type Buffer struct {
	text        string
	decorations []protocol.Range
	onChange    []ChangeFunc
}

var _ Editor = (*Buffer)(nil)

func NewBuffer(text string) *Buffer {
	return &Buffer{text: text}
}

func (b *Buffer) Content() string {
	return b.text
}

func (b *Buffer) SetContent(text string) {
	b.text = text
}

// Edit is a user keystroke: the new document content, observers told.
func (b *Buffer) Edit(text string) {
	b.text = text
	for _, fn := range b.onChange {
		fn(text)
	}
}

func (b *Buffer) Decorate(r protocol.Range) {
	b.decorations = append(b.decorations, r)
}

func (b *Buffer) ClearDecorations() {
	b.decorations = nil
}

// Decorations returns the active decorations, oldest first.
func (b *Buffer) Decorations() []protocol.Range {
	return b.decorations
}

func (b *Buffer) OnChange(fn ChangeFunc) {
	b.onChange = append(b.onChange, fn)
}
