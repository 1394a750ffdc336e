package convert

import (
	"fmt"

	"github.com/alnah/go-html2doc/document"
)

// mode is what an accumulation frame collects.
type mode uint8

const (
	collectBlocks mode = iota + 1
	collectInlines
	collectListItems
)

func (m mode) String() string {
	switch m {
	case collectBlocks:
		return "CollectingBlocks"
	case collectInlines:
		return "CollectingInlines"
	case collectListItems:
		return "CollectingListItems"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ContractError reports a routine invoked on a frame of the wrong mode.
// It is raised with panic: it means the walker itself is broken, not that the
// input was unexpected.
type ContractError struct {
	Op   string
	Want mode
	Got  mode
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("convert: %s: expected %s frame, got %s", e.Op, e.Want, e.Got)
}

// frame is one level of the accumulation stack. Each recursive descent owns a
// fresh frame in a local variable; the caller's frame is never swapped out.
type frame struct {
	mode    mode
	blocks  []document.Block
	inlines []document.Inline
	items   []document.ListItem
}

func newFrame(m mode) *frame {
	return &frame{mode: m}
}

func (f *frame) expect(op string, m mode) {
	if f.mode != m {
		panic(&ContractError{Op: op, Want: m, Got: f.mode})
	}
}

func (f *frame) appendBlock(b document.Block) {
	f.expect("append block", collectBlocks)
	f.blocks = append(f.blocks, b)
}

func (f *frame) appendInlines(in ...document.Inline) {
	f.expect("append inline", collectInlines)
	f.inlines = append(f.inlines, in...)
}

func (f *frame) appendItem(item document.ListItem) {
	f.expect("append list item", collectListItems)
	f.items = append(f.items, item)
}

// takeBlocks, takeInlines and takeItems hand the accumulated values to the
// caller once the frame's children have been walked.
func (f *frame) takeBlocks() []document.Block {
	f.expect("take blocks", collectBlocks)
	return f.blocks
}

func (f *frame) takeInlines() []document.Inline {
	f.expect("take inlines", collectInlines)
	return f.inlines
}

func (f *frame) takeItems() []document.ListItem {
	f.expect("take list items", collectListItems)
	return f.items
}
