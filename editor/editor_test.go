package editor

import (
	"testing"

	"go.lsp.dev/protocol"
)

func TestBufferEditFiresObservers(t *testing.T) {
	b := NewBuffer("x = 1")
	var seen []string
	b.OnChange(func(text string) { seen = append(seen, text) })

	b.Edit("x = 2")
	if len(seen) != 1 || seen[0] != "x = 2" {
		t.Fatalf("observed = %v, want [x = 2]", seen)
	}
	if b.Content() != "x = 2" {
		t.Fatalf("content = %q", b.Content())
	}
}

func TestBufferSetContentIsSilent(t *testing.T) {
	b := NewBuffer("")
	fired := 0
	b.OnChange(func(string) { fired++ })

	b.SetContent("generated")
	if fired != 0 {
		t.Fatalf("SetContent fired %d observers, want 0", fired)
	}
	if b.Content() != "generated" {
		t.Fatalf("content = %q", b.Content())
	}
}

func TestBufferDecorations(t *testing.T) {
	b := NewBuffer("")
	r1 := protocol.Range{Start: protocol.Position{Line: 1}, End: protocol.Position{Line: 2}}
	r2 := protocol.Range{Start: protocol.Position{Line: 4}, End: protocol.Position{Line: 5}}
	b.Decorate(r1)
	b.Decorate(r2)
	if got := b.Decorations(); len(got) != 2 || got[0] != r1 || got[1] != r2 {
		t.Fatalf("decorations = %v", got)
	}
	b.ClearDecorations()
	if got := b.Decorations(); len(got) != 0 {
		t.Fatalf("decorations after clear = %v", got)
	}
}

func TestChangedRange(t *testing.T) {
	cases := []struct {
		name string
		from string
		to   string
		want protocol.Range
		ok   bool
	}{
		{
			name: "equal",
			from: "x = 1\n",
			to:   "x = 1\n",
			ok:   false,
		},
		{
			name: "append on one line",
			from: "x = 1",
			to:   "x = 12",
			want: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 5},
				End:   protocol.Position{Line: 0, Character: 6},
			},
			ok: true,
		},
		{
			name: "edit on second line",
			from: "x = 1\ny = 2\nz = 3\n",
			to:   "x = 1\ny = 9\nz = 3\n",
			want: protocol.Range{
				Start: protocol.Position{Line: 1, Character: 4},
				End:   protocol.Position{Line: 1, Character: 5},
			},
			ok: true,
		},
		{
			name: "deletion collapses to a point",
			from: "abcdef",
			to:   "abef",
			want: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 2},
				End:   protocol.Position{Line: 0, Character: 2},
			},
			ok: true,
		},
		{
			name: "inserted line",
			from: "a\nc\n",
			to:   "a\nb\nc\n",
			want: protocol.Range{
				Start: protocol.Position{Line: 1, Character: 0},
				End:   protocol.Position{Line: 2, Character: 0},
			},
			ok: true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := ChangedRange(c.from, c.to)
			if ok != c.ok {
				t.Fatalf("ok = %v, want %v", ok, c.ok)
			}
			if ok && got != c.want {
				t.Fatalf("range = %v, want %v", got, c.want)
			}
		})
	}
}

func TestPositionOffsets(t *testing.T) {
	text := "ab\ncd\n"
	cases := []struct {
		off  int
		want protocol.Position
	}{
		{0, protocol.Position{Line: 0, Character: 0}},
		{2, protocol.Position{Line: 0, Character: 2}},
		{3, protocol.Position{Line: 1, Character: 0}},
		{5, protocol.Position{Line: 1, Character: 2}},
	}
	for _, c := range cases {
		if got := position(text, c.off); got != c.want {
			t.Errorf("position(%d) = %v, want %v", c.off, got, c.want)
		}
	}
}
