package watch

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestBody_PadsShortOutput(t *testing.T) {
	rows, err := Body([]string{"only\n"}, 60, 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 5 {
		t.Fatalf("len(rows) = %d, want 5", len(rows))
	}
	if rows[0] != "only"+clearEOL+"\n" {
		t.Errorf("rows[0] = %q", rows[0])
	}
	for i, r := range rows[1:] {
		if r != PaddingRow {
			t.Errorf("rows[%d] = %q, want padding", i+1, r)
		}
	}
}

func TestBody_NoOutput(t *testing.T) {
	rows, err := Body(nil, 48, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Errorf("len(rows) = %d, want 3", len(rows))
	}
}

func TestBody_CapsExcessLines(t *testing.T) {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "line\n"
	}
	rows, err := Body(lines, 48, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Errorf("len(rows) = %d, want 3", len(rows))
	}
}

func TestBody_LastRowIsNarrower(t *testing.T) {
	full := strings.Repeat("x", 48)
	rows, err := Body([]string{full, full, full}, 48, 4)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []int{48, 48, 47} {
		if got := strings.Count(rows[i], "x"); got != want {
			t.Errorf("row %d has %d columns, want %d", i, got, want)
		}
	}
}

func TestFrame_StripsOnlyFinalNewline(t *testing.T) {
	body := []string{"  indented" + clearEOL + "\n", PaddingRow}
	got := string(Frame("status", 0, body, 48, 3))
	want := home + gray + "status" + "\033[39m" + "  indented" + clearEOL + "\n" +
		strings.TrimSuffix(PaddingRow, "\n") + "\033[3;48H"
	if got != want {
		t.Errorf("Frame =\n%q\nwant\n%q", got, want)
	}
}

func TestStatusLine_FillsWidth(t *testing.T) {
	got := StatusLine("left", " 10:00:00", 48)
	if n := utf8.RuneCountInString(got); n != 48 {
		t.Errorf("width = %d, want 48", n)
	}
	if !strings.HasPrefix(got, "left ") || !strings.HasSuffix(got, " 10:00:00") {
		t.Errorf("StatusLine = %q", got)
	}
}

func TestStatusLine_ExactFitHasNoPadding(t *testing.T) {
	left := strings.Repeat("a", 39)
	if got := StatusLine(left, " 10:00:00", 48); got != left+" 10:00:00" {
		t.Errorf("StatusLine = %q", got)
	}
}

func TestStatusLine_TruncatesLeft(t *testing.T) {
	left := strings.Repeat("a", 60)
	got := StatusLine(left, " 10:00:00", 48)
	want := strings.Repeat("a", 38) + "…" + " 10:00:00"
	if got != want {
		t.Errorf("StatusLine = %q, want %q", got, want)
	}
	if strings.Count(got, "…") != 1 {
		t.Errorf("want a single ellipsis in %q", got)
	}
}

func TestStatusLine_RightTooWide(t *testing.T) {
	right := strings.Repeat("d", 60) + " 10:00:00"
	got := StatusLine("left", right, 48)
	if n := utf8.RuneCountInString(got); n != 48 {
		t.Errorf("width = %d, want 48", n)
	}
	if !strings.HasPrefix(got, "…") || !strings.HasSuffix(got, " 10:00:00") {
		t.Errorf("StatusLine = %q", got)
	}
}

func TestStatusLine_AlwaysWidthColumns(t *testing.T) {
	for l := 0; l < 80; l += 7 {
		for _, debug := range []string{"", "<<w=48,h=4 B:100->10 0.010s+0.001s>>"} {
			left := strings.Repeat("é", l)
			right := statusRight(debug, clockBase)
			if got := utf8.RuneCountInString(StatusLine(left, right, 48)); got != 48 {
				t.Errorf("left=%d debug=%q: width = %d, want 48", l, debug, got)
			}
		}
	}
}

func TestStatusLeft(t *testing.T) {
	got := statusLeft("kubectl get pod", time.Second/3, -1)
	if want := "Every 0.3s: kubectl get pod (exit status: -1)"; got != want {
		t.Errorf("statusLeft = %q, want %q", got, want)
	}
}

func TestSleepFor(t *testing.T) {
	phases := Timings{Execution: 100 * time.Millisecond, Processing: 200 * time.Millisecond, Write: 300 * time.Millisecond}
	long := Timings{Execution: 2100 * time.Millisecond, Processing: 200 * time.Millisecond, Write: 300 * time.Millisecond}
	tests := []struct {
		name     string
		interval time.Duration
		precise  bool
		t        Timings
		want     time.Duration
	}{
		{"default ignores phases", 2 * time.Second, false, long, 2 * time.Second},
		{"precise subtracts", 2 * time.Second, true, phases, 1400 * time.Millisecond},
		{"precise clamps at zero", 2 * time.Second, true, long, 0},
		{"zero interval", 0, true, phases, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sleepFor(tt.interval, tt.precise, tt.t); got != tt.want {
				t.Errorf("sleepFor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSleepContext(t *testing.T) {
	if err := sleepContext(context.Background(), time.Millisecond); err != nil {
		t.Errorf("sleepContext = %v, want nil", err)
	}
	if err := sleepContext(context.Background(), 0); err != nil {
		t.Errorf("sleepContext(0) = %v, want nil", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	if err := sleepContext(ctx, time.Hour); err == nil {
		t.Error("expected error from cancelled sleep")
	}
	if time.Since(start) > time.Second {
		t.Error("cancelled sleep did not return promptly")
	}
}
