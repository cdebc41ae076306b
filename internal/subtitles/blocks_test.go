package subtitles

import "testing"

func TestParseSyncBlocksInfersEndTimes(t *testing.T) {
	doc := `<SAMI><BODY>
<SYNC Start=1000><P Class=KRCC>Hello</P>
<SYNC Start=5000><P Class=KRCC>World</P>
</BODY></SAMI>`
	blocks := ParseSyncBlocks(doc)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].StartMS != 1000 || blocks[0].EndMS != 5000 {
		t.Fatalf("unexpected first block timing: %+v", blocks[0])
	}
	if blocks[1].StartMS != 5000 || blocks[1].EndMS != 8000 {
		t.Fatalf("unexpected last block timing: %+v", blocks[1])
	}
	if blocks[0].Payload != "Hello" || blocks[1].Payload != "World" {
		t.Fatalf("unexpected payloads: %q %q", blocks[0].Payload, blocks[1].Payload)
	}
}

func TestParseSyncBlocksCaseInsensitive(t *testing.T) {
	doc := `<sync start=1500><p class=x>lower</p>`
	blocks := ParseSyncBlocks(doc)
	if len(blocks) != 1 || blocks[0].Payload != "lower" || blocks[0].StartMS != 1500 {
		t.Fatalf("unexpected blocks: %+v", blocks)
	}
}

func TestParseSyncBlocksParagraphWithoutClass(t *testing.T) {
	blocks := ParseSyncBlocks(`<SYNC Start=10><P>plain</P>`)
	if len(blocks) != 1 || blocks[0].Payload != "plain" {
		t.Fatalf("unexpected blocks: %+v", blocks)
	}
}

func TestParseSyncBlocksUnclosedParagraphStopsAtNextSync(t *testing.T) {
	blocks := ParseSyncBlocks(`<SYNC Start=0><P Class=KRCC>first<SYNC Start=900><P Class=KRCC>second`)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Payload != "first" || blocks[1].Payload != "second" {
		t.Fatalf("unexpected payloads: %q %q", blocks[0].Payload, blocks[1].Payload)
	}
}

func TestParseSyncBlocksDropsSpanWithoutParagraph(t *testing.T) {
	doc := `<SYNC Start=10>no paragraph here<SYNC Start=20><P>kept</P>`
	blocks, dropped := parseSyncBlocks(doc, 3000)
	if dropped != 1 {
		t.Fatalf("expected 1 dropped block, got %d", dropped)
	}
	if len(blocks) != 1 || blocks[0].StartMS != 20 || blocks[0].EndMS != 3020 {
		t.Fatalf("unexpected blocks: %+v", blocks)
	}
}

func TestParseSyncBlocksBorrowsEndFromDroppedSpan(t *testing.T) {
	blocks, dropped := parseSyncBlocks(`<SYNC Start=0><P>a</P><SYNC Start=2000>&nbsp;`, 3000)
	if dropped != 1 || len(blocks) != 1 {
		t.Fatalf("expected one block and one dropped span, got %d and %d", len(blocks), dropped)
	}
	if blocks[0].EndMS != 2000 {
		t.Fatalf("expected end borrowed from next SYNC tag, got %d", blocks[0].EndMS)
	}
}

func TestParseSyncBlocksIgnoresNonNumericStart(t *testing.T) {
	blocks := ParseSyncBlocks(`<SYNC Start=abc><P>skip</P><SYNC Start=100><P>ok</P>`)
	if len(blocks) != 1 || blocks[0].StartMS != 100 || blocks[0].Payload != "ok" {
		t.Fatalf("unexpected blocks: %+v", blocks)
	}
}

func TestParseSyncBlocksClampsOutOfOrderEnd(t *testing.T) {
	blocks := ParseSyncBlocks(`<SYNC Start=5000><P>a</P><SYNC Start=1000><P>b</P>`)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].EndMS != 5000 {
		t.Fatalf("expected end clamped to start, got %d", blocks[0].EndMS)
	}
	if blocks[1].StartMS != 1000 || blocks[1].EndMS != 4000 {
		t.Fatalf("unexpected second block: %+v", blocks[1])
	}
}

func TestParseSyncBlocksEmptyDocument(t *testing.T) {
	if blocks := ParseSyncBlocks("<SAMI><BODY></BODY></SAMI>"); len(blocks) != 0 {
		t.Fatalf("expected no blocks, got %+v", blocks)
	}
}

func TestExtractPayloadPrefersClassParagraph(t *testing.T) {
	payload, matcher, ok := extractPayload(`<P ID=x>ignored</P><P Class=KRCC>wanted</P>`)
	if !ok || matcher != "class" || payload != "wanted" {
		t.Fatalf("got payload=%q matcher=%q ok=%v", payload, matcher, ok)
	}
	payload, matcher, ok = extractPayload(`<P ID=x>only</P>`)
	if !ok || matcher != "paragraph" || payload != "only" {
		t.Fatalf("got payload=%q matcher=%q ok=%v", payload, matcher, ok)
	}
}

func TestScanParagraph(t *testing.T) {
	if got, ok := scanParagraph(`junk<P Class=A>one<P>two`); !ok || got != "one" {
		t.Fatalf("scanParagraph = %q, %v", got, ok)
	}
	if _, ok := scanParagraph(`no tags`); ok {
		t.Fatal("expected scanParagraph to miss without a paragraph tag")
	}
}
