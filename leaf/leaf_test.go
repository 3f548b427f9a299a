// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package leaf_test

import (
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go4.org/mem"

	"github.com/creachadair/parsec"
	"github.com/creachadair/parsec/fold"
	"github.com/creachadair/parsec/leaf"
)

func byteSrc(s string) parsec.Source[byte] {
	i := 0
	return parsec.SourceFunc[byte](func() (byte, error) {
		if i >= len(s) {
			return 0, io.EOF
		}
		b := s[i]
		i++
		return b, nil
	})
}

func byteSliceSource(xs []byte) parsec.Source[byte] {
	i := 0
	return parsec.SourceFunc[byte](func() (byte, error) {
		if i >= len(xs) {
			return 0, io.EOF
		}
		v := xs[i]
		i++
		return v, nil
	})
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// rest drains whatever a Driver has left (buffered and unread) to the end
// of input, as plain bytes, so a test can confirm no input was silently
// dropped even when a leaf parser's own leftover only reports what it had
// already pulled into the buffer.
func rest(t *testing.T, d *parsec.Driver[byte, []byte]) []byte {
	t.Helper()
	got, _, err := d.Parse(leaf.TakeGE[byte](0))
	if err != nil {
		t.Fatalf("draining remaining input failed: %v", err)
	}
	return got
}

func TestSatisfy(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"5", true},
		{"a", false},
		{"", false},
	}
	for _, test := range tests {
		d := parsec.NewDriver[byte, byte](byteSrc(test.input))
		got, _, err := d.Parse(leaf.Satisfy(isDigit))
		if test.ok {
			if err != nil || got != test.input[0] {
				t.Errorf("Satisfy(%q) = %v, %v; want %c, nil", test.input, got, err, test.input[0])
			}
		} else if err == nil {
			t.Errorf("Satisfy(%q) = %v, nil; want error", test.input, got)
		}
	}
}

func TestEOF(t *testing.T) {
	d1 := parsec.NewDriver[byte, struct{}](byteSrc(""))
	if _, _, err := d1.Parse(leaf.EOF[byte]()); err != nil {
		t.Errorf("EOF on empty input: %v, want nil", err)
	}
	d2 := parsec.NewDriver[byte, struct{}](byteSrc("x"))
	if _, _, err := d2.Parse(leaf.EOF[byte]()); err == nil {
		t.Errorf("EOF on non-empty input: nil, want error")
	}
}

func TestTake(t *testing.T) {
	d1 := parsec.NewDriver[byte, []byte](byteSrc("hello"))
	got, _, err := d1.Parse(leaf.Take[byte](3))
	if err != nil {
		t.Fatalf("Take(3) failed: %v", err)
	}
	if diff := cmp.Diff([]byte("hel"), got); diff != "" {
		t.Errorf("Result (-want, +got):\n%s", diff)
	}

	// Short input: Take succeeds with whatever prefix it collected.
	d2 := parsec.NewDriver[byte, []byte](byteSrc("hi"))
	got2, _, err := d2.Parse(leaf.Take[byte](5))
	if err != nil {
		t.Fatalf("Take(5) on short input failed: %v", err)
	}
	if diff := cmp.Diff([]byte("hi"), got2); diff != "" {
		t.Errorf("Short-input result (-want, +got):\n%s", diff)
	}
}

func TestTakeEQ(t *testing.T) {
	d1 := parsec.NewDriver[byte, []byte](byteSrc("hello"))
	got, _, err := d1.Parse(leaf.TakeEQ[byte](3))
	if err != nil {
		t.Fatalf("TakeEQ(3) failed: %v", err)
	}
	if diff := cmp.Diff([]byte("hel"), got); diff != "" {
		t.Errorf("Result (-want, +got):\n%s", diff)
	}
	// TakeEQ never looks past the n it needs, so the remaining "lo" is
	// still sitting unread in the source rather than in this call's
	// leftover; confirm it is still there.
	if diff := cmp.Diff([]byte("lo"), rest(t, d1)); diff != "" {
		t.Errorf("Remaining input (-want, +got):\n%s", diff)
	}

	d2 := parsec.NewDriver[byte, []byte](byteSrc("hi"))
	if _, _, err := d2.Parse(leaf.TakeEQ[byte](5)); err == nil {
		t.Error("TakeEQ(5) on short input succeeded, want error")
	}
}

func TestTakeGE(t *testing.T) {
	d1 := parsec.NewDriver[byte, []byte](byteSrc("abcde"))
	got, _, err := d1.Parse(leaf.TakeGE[byte](3))
	if err != nil || string(got) != "abcde" {
		t.Errorf("TakeGE(3) on 5 bytes = %q, %v; want abcde, nil", got, err)
	}

	d2 := parsec.NewDriver[byte, []byte](byteSrc("ab"))
	if _, _, err := d2.Parse(leaf.TakeGE[byte](3)); err == nil {
		t.Error("TakeGE(3) on 2 bytes succeeded, want error")
	}
}

func TestTakeWhile(t *testing.T) {
	d := parsec.NewDriver[byte, []byte](byteSrc("123abc"))
	got, leftover, err := d.Parse(leaf.TakeWhile(isDigit))
	if err != nil {
		t.Fatalf("TakeWhile failed: %v", err)
	}
	if diff := cmp.Diff([]byte("123"), got); diff != "" {
		t.Errorf("Result (-want, +got):\n%s", diff)
	}
	// TakeWhile reports only the one token that failed the predicate as
	// leftover (it stops as soon as it sees it); "bc" is still unread. The
	// driver queues the leftover "a", so the remaining input is "abc".
	if diff := cmp.Diff([]byte("a"), leftover); diff != "" {
		t.Errorf("Leftover (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]byte("abc"), rest(t, d)); diff != "" {
		t.Errorf("Remaining input (-want, +got):\n%s", diff)
	}

	// TakeWhile succeeds even with zero matching tokens.
	d2 := parsec.NewDriver[byte, []byte](byteSrc("abc"))
	got2, _, err := d2.Parse(leaf.TakeWhile(isDigit))
	if err != nil || len(got2) != 0 {
		t.Errorf("TakeWhile on no digits = %q, %v; want empty, nil", got2, err)
	}
}

func TestTakeWhile1(t *testing.T) {
	d := parsec.NewDriver[byte, []byte](byteSrc("abc"))
	if _, _, err := d.Parse(leaf.TakeWhile1(isDigit)); err == nil {
		t.Error("TakeWhile1 on no digits succeeded, want error")
	}
}

// LookAhead idempotence: parsing via lookahead twice gives the same result
// both times, and together they hand back exactly what they looked at so
// nothing is lost off the front of the stream.
func TestLookAheadIdempotent(t *testing.T) {
	d := parsec.NewDriver[byte, []byte](byteSrc("123rest"))
	p := leaf.LookAhead(leaf.TakeWhile1(isDigit))

	a, leftoverA, err := d.Parse(p)
	if err != nil {
		t.Fatalf("First lookahead failed: %v", err)
	}
	// TakeWhile1 looked at the "r" as well before stopping, so it is handed
	// back too.
	if diff := cmp.Diff([]byte("123r"), leftoverA); diff != "" {
		t.Errorf("Leftover after first lookahead (-want, +got):\n%s", diff)
	}

	b, leftoverB, err := d.Parse(p)
	if err != nil {
		t.Fatalf("Second lookahead failed: %v", err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Repeated lookahead disagreed (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(leftoverA, leftoverB); diff != "" {
		t.Errorf("Leftover differed between repeated lookaheads (-want, +got):\n%s", diff)
	}

	// Nothing was consumed: the whole original stream is still there.
	if diff := cmp.Diff([]byte("123rest"), rest(t, d)); diff != "" {
		t.Errorf("Remaining input (-want, +got):\n%s", diff)
	}
}

// S6: sliceSepBy.
func TestSliceSepBy(t *testing.T) {
	isOne := func(b byte) bool { return b == 1 }
	p := leaf.SliceSepBy(isOne, fold.ToSlice[byte]())

	d := parsec.NewDriver[byte, []byte](byteSliceSource([]byte{0, 0, 1, 0}))
	got, leftover, err := d.Parse(p)
	if err != nil {
		t.Fatalf("SliceSepBy failed: %v", err)
	}
	if diff := cmp.Diff([]byte{0, 0}, got); diff != "" {
		t.Errorf("Result (-want, +got):\n%s", diff)
	}
	// The separator itself is consumed (Stop n=0); the trailing 0 after it
	// was never pulled off the source.
	if len(leftover) != 0 {
		t.Errorf("Leftover: got %v, want none", leftover)
	}
	if diff := cmp.Diff([]byte{0}, rest(t, d)); diff != "" {
		t.Errorf("Remaining input (-want, +got):\n%s", diff)
	}
}

// SliceSepBy folds in everything if the separator never appears.
func TestSliceSepByNoSeparator(t *testing.T) {
	isOne := func(b byte) bool { return b == 1 }
	p := leaf.SliceSepBy(isOne, fold.ToSlice[byte]())
	d := parsec.NewDriver[byte, []byte](byteSliceSource([]byte{0, 0, 0}))
	got, _, err := d.Parse(p)
	if err != nil {
		t.Fatalf("SliceSepBy failed: %v", err)
	}
	if diff := cmp.Diff([]byte{0, 0, 0}, got); diff != "" {
		t.Errorf("Result (-want, +got):\n%s", diff)
	}
}

// TakeWhileMem/SliceSepByMem report the same bytes as their []byte
// counterparts, wrapped in a mem.RO view.
func TestTakeWhileMem(t *testing.T) {
	d := parsec.NewDriver[byte, mem.RO](byteSrc("123xyz"))
	got, leftover, err := d.Parse(leaf.TakeWhileMem(isDigit))
	if err != nil {
		t.Fatalf("TakeWhileMem failed: %v", err)
	}
	if got.StringCopy() != "123" {
		t.Errorf("TakeWhileMem result: got %q, want 123", got.StringCopy())
	}
	if diff := cmp.Diff([]byte("x"), leftover); diff != "" {
		t.Errorf("Leftover (-want, +got):\n%s", diff)
	}
}

func TestSliceSepByMem(t *testing.T) {
	d := parsec.NewDriver[byte, mem.RO](byteSrc("ab,cd"))
	got, leftover, err := d.Parse(leaf.SliceSepByMem(func(b byte) bool { return b == ',' }))
	if err != nil {
		t.Fatalf("SliceSepByMem failed: %v", err)
	}
	if got.StringCopy() != "ab" {
		t.Errorf("SliceSepByMem result: got %q, want ab", got.StringCopy())
	}
	if len(leftover) != 0 {
		t.Errorf("Leftover: got %v, want none", leftover)
	}
}
