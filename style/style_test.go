package style

import (
	"reflect"
	"testing"
)

func TestNamedColorSGR(t *testing.T) {
	if got, want := Red.FgSGR(), "31"; got != want {
		t.Errorf("Red.FgSGR() = %q, want %q", got, want)
	}
	if got, want := Red.BgSGR(), "41"; got != want {
		t.Errorf("Red.BgSGR() = %q, want %q", got, want)
	}
	if got, want := LightRed.FgSGR(), "91"; got != want {
		t.Errorf("LightRed.FgSGR() = %q, want %q", got, want)
	}
}

func TestResetSGR(t *testing.T) {
	if got, want := Reset.FgSGR(), "39"; got != want {
		t.Errorf("Reset.FgSGR() = %q, want %q", got, want)
	}
	if got, want := Reset.BgSGR(), "49"; got != want {
		t.Errorf("Reset.BgSGR() = %q, want %q", got, want)
	}
	if !Reset.IsReset() {
		t.Error("Reset.IsReset() = false, want true")
	}
	if Red.IsReset() {
		t.Error("Red.IsReset() = true, want false")
	}
}

func TestRGBAndAnsi256SGR(t *testing.T) {
	if got, want := RGB(10, 20, 30).FgSGR(), "38;2;10;20;30"; got != want {
		t.Errorf("RGB(...).FgSGR() = %q, want %q", got, want)
	}
	if got, want := Ansi256(200).BgSGR(), "48;5;200"; got != want {
		t.Errorf("Ansi256(200).BgSGR() = %q, want %q", got, want)
	}
}

func TestAttributesDiff(t *testing.T) {
	d := (Bold | Italic).Diff(Italic | Underlined)
	if d.ToAdd != Underlined {
		t.Errorf("ToAdd = %v, want Underlined", d.ToAdd)
	}
	if d.ToRemove != Bold {
		t.Errorf("ToRemove = %v, want Bold", d.ToRemove)
	}
}

func TestAttributesSGRCodes(t *testing.T) {
	a := Bold | Underlined
	if got, want := a.SGRSetCodes(), []string{"1", "4"}; !reflect.DeepEqual(got, want) {
		t.Errorf("SGRSetCodes() = %v, want %v", got, want)
	}
	if got, want := a.SGRUnsetCodes(), []string{"22", "24"}; !reflect.DeepEqual(got, want) {
		t.Errorf("SGRUnsetCodes() = %v, want %v", got, want)
	}
}

func TestAttributesHas(t *testing.T) {
	a := Bold | Dim
	if !a.Has(Bold) {
		t.Error("expected Bold to be set")
	}
	if a.Has(Italic) {
		t.Error("did not expect Italic to be set")
	}
}

type recordingWriter struct {
	written []byte
	calls   []string
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	w.written = append(w.written, p...)
	return len(p), nil
}

func (w *recordingWriter) SetFg(c Color) error {
	w.calls = append(w.calls, "fg:"+c.FgSGR())
	return nil
}

func (w *recordingWriter) SetBg(c Color) error {
	w.calls = append(w.calls, "bg:"+c.BgSGR())
	return nil
}

func (w *recordingWriter) SetAttributes(a Attributes) error {
	if a == 0 {
		w.calls = append(w.calls, "attrs:reset")
	} else {
		w.calls = append(w.calls, "attrs:set")
	}
	return nil
}

func TestStyledWriteSetsAndResets(t *testing.T) {
	s := NewString("hi").WithFg(Cyan).Bold()
	w := &recordingWriter{}
	if err := s.Write(w); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if string(w.written) != "hi" {
		t.Errorf("content written = %q, want %q", w.written, "hi")
	}
	want := []string{"fg:" + Cyan.FgSGR(), "attrs:set", "fg:" + Reset.FgSGR(), "attrs:reset"}
	if !reflect.DeepEqual(w.calls, want) {
		t.Errorf("calls = %v, want %v", w.calls, want)
	}
}

func TestStyledWriteNoStylingIsNoop(t *testing.T) {
	s := NewString("plain")
	w := &recordingWriter{}
	if err := s.Write(w); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(w.calls) != 0 {
		t.Errorf("calls = %v, want none for unstyled content", w.calls)
	}
}

func TestFluentBuilders(t *testing.T) {
	s := NewString("x").Red().Bold().Underlined()
	if !s.hasFg || s.Fg != Red {
		t.Errorf("Fg = %+v, want Red", s.Fg)
	}
	if !s.Attributes.Has(Bold | Underlined) {
		t.Errorf("Attributes = %v, want Bold|Underlined set", s.Attributes)
	}
}
