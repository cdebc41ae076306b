package subtitles

import "testing"

func TestCanonicalColor(t *testing.T) {
	cases := map[string]string{
		"F0A":      "#ff00aa",
		"00ff00":   "#00ff00",
		"#FFF":     "#ffffff",
		"#ffffff":  "#ffffff",
		"#AbCdEf":  "#abcdef",
		" Red ":    "red",
		"FA0237":   "#fa0237",
		"darkblue": "darkblue",
		"#12":      "#12",
	}
	for input, want := range cases {
		if got := CanonicalColor(input); got != want {
			t.Fatalf("CanonicalColor(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestCanonicalColorIdempotent(t *testing.T) {
	for _, value := range []string{"#00ff00", "#abcdef", "red", "F0A", "00FF00"} {
		once := CanonicalColor(value)
		if twice := CanonicalColor(once); twice != once {
			t.Fatalf("CanonicalColor not idempotent for %q: %q then %q", value, once, twice)
		}
	}
}

func TestColorRegistryStableIDs(t *testing.T) {
	registry := NewColorRegistry()
	text := `<font color=red>a</font> <font color='#FFF'>b</font> <font color=red>c</font> <font color="#ffffff">d</font>`

	got := registry.Rewrite(text)
	want := `<c.color1>a</c> <c.color2>b</c> <c.color1>c</c> <c.color2>d</c>`
	if got != want {
		t.Fatalf("unexpected rewrite:\n got %q\nwant %q", got, want)
	}

	classes := registry.Classes()
	if len(classes) != 2 {
		t.Fatalf("expected 2 classes, got %d (%v)", len(classes), classes)
	}
	if classes[0] != (ColorClass{Color: "red", Class: "color1"}) {
		t.Fatalf("unexpected first class: %+v", classes[0])
	}
	if classes[1] != (ColorClass{Color: "#ffffff", Class: "color2"}) {
		t.Fatalf("unexpected second class: %+v", classes[1])
	}
}

func TestColorRegistrySharedAcrossBlocks(t *testing.T) {
	registry := NewColorRegistry()
	first := registry.Rewrite(`<FONT COLOR="#00FF00">go</FONT>`)
	second := registry.Rewrite(`<font color=blue>stop</font><font color=00ff00>go</font>`)

	if first != "<c.color1>go</c>" {
		t.Fatalf("unexpected first rewrite %q", first)
	}
	if second != "<c.color2>stop</c><c.color1>go</c>" {
		t.Fatalf("unexpected second rewrite %q", second)
	}
	want := "video::cue(.color1) { color: #00ff00; }\nvideo::cue(.color2) { color: blue; }\n"
	if got := registry.Stylesheet(); got != want {
		t.Fatalf("unexpected stylesheet:\n got %q\nwant %q", got, want)
	}
}

func TestColorRegistryLeavesPlainText(t *testing.T) {
	registry := NewColorRegistry()
	text := `<font face="Gulim">no color</font> plain`
	if got := registry.Rewrite(text); got != text {
		t.Fatalf("expected text unchanged, got %q", got)
	}
	if registry.Len() != 0 || registry.Stylesheet() != "" {
		t.Fatalf("expected empty registry, got %d classes", registry.Len())
	}
}
