package vector

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"
)

func TestSimilarityFromDistance_Monotonic(t *testing.T) {
	// Cosine distances for vectors progressively further from the query.
	distances := []float64{0.0, 0.25, 0.5, 1.0, 2.0}

	prev := math.Inf(1)
	for _, d := range distances {
		sim := SimilarityFromDistance(d)
		if sim >= prev {
			t.Fatalf("similarity must shrink as distance grows: d=%v sim=%v prev=%v", d, sim, prev)
		}
		prev = sim
	}

	if SimilarityFromDistance(0) != 1 {
		t.Fatalf("identical vectors must score 1")
	}
}

func TestEncodeFloat32(t *testing.T) {
	vec := []float32{1.5, -2.25, 0}
	buf := encodeFloat32(vec)

	if len(buf) != 12 {
		t.Fatalf("expected 12 bytes, got %d", len(buf))
	}
	for i, want := range vec {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		if got != want {
			t.Fatalf("value %d = %v, want %v", i, got, want)
		}
	}
}

func TestEscapeTag(t *testing.T) {
	got := escapeTag("123e4567-e89b-12d3-a456-426614174000")
	if strings.Contains(strings.ReplaceAll(got, `\-`, ""), "-") {
		t.Fatalf("unescaped hyphen in %q", got)
	}
	if escapeTag("plain") != "plain" {
		t.Fatalf("plain tags must pass through")
	}
}
