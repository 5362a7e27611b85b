package hash

import (
	"errors"
	"testing"
)

var xxx = []byte("1.0000000000,2.0000000000,3.0000000000")

func TestMurmur3MatchesReference(t *testing.T) {
	murmurTests := []struct {
		in   string
		seed uint64
		want int64
	}{
		{"foo", 0, -156908512},
		{"1,2,3", 1, 1023909052},
		{"4,5,6", 1, 1788799606},
		{"1.0000000000,2.0000000000,3.0000000000", 1, -1178550618},
	}

	for _, tt := range murmurTests {
		h, err := New(Murmur3, tt.seed)
		if err != nil {
			t.Fatal(err)
		}
		if got := int64(h.Hash64([]byte(tt.in))); got != tt.want {
			t.Errorf("murmur3(%q, %d): want: %d, got: %d", tt.in, tt.seed, tt.want, got)
		}
	}
}

func TestModFloored(t *testing.T) {
	h, _ := New(Murmur3, 1)
	modTests := []struct {
		in   string
		n    uint64
		want uint64
	}{
		{"1,2,3", 100, 52},
		{"4,5,6", 1000, 606},
		// negative sums wrap like a floored modulo
		{"1.0000000000,2.0000000000,3.0000000000", 100, 82},
		{"0.5000000000,-1.2500000000", 1000, 127},
	}

	for _, tt := range modTests {
		if got := Mod(h, []byte(tt.in), tt.n); got != tt.want {
			t.Errorf("Mod(%q, %d): want: %d, got: %d", tt.in, tt.n, tt.want, got)
		}
	}
}

func TestModInRange(t *testing.T) {
	for _, name := range []string{"murmur3", "murmur3x64", "metro", "highway", "xxhash", "xxh3"} {
		typ, err := Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		if got := Name(typ); got != name {
			t.Errorf("Name(Lookup(%q)): got %q", name, got)
		}
		h, err := New(typ, 42)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 100; i++ {
			p := []byte{byte(i), byte(i >> 8), 'x'}
			if got := Mod(h, p, 7); got >= 7 {
				t.Fatalf("%s: Mod out of range: %d", name, got)
			}
			if Mod(h, p, 1000) != Mod(h, p, 1000) {
				t.Fatalf("%s: Mod is not deterministic", name)
			}
		}
	}
}

func TestSeedChangesOutput(t *testing.T) {
	for _, typ := range []int{Murmur3, Murmur3x64, Metro, Highway, XXHash, XXH3} {
		a, _ := New(typ, 1)
		b, _ := New(typ, 2)
		if a.Hash64(xxx) == b.Hash64(xxx) {
			t.Errorf("%s: seeds 1 and 2 produced the same hash", Name(typ))
		}
	}
}

func TestDigestReference(t *testing.T) {
	d, err := NewDigest(MD5)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(d.Sum(xxx)); got != 16 {
		t.Errorf("md5: want 16 bytes, got %d", got)
	}
	for _, name := range []string{"blake3", "blake2b"} {
		typ, err := LookupDigest(name)
		if err != nil {
			t.Fatal(err)
		}
		d, _ := NewDigest(typ)
		if got := len(d.Sum(xxx)); got != 32 {
			t.Errorf("%s: want 32 bytes, got %d", name, got)
		}
		if got := DigestName(typ); got != name {
			t.Errorf("DigestName(%d): want %q, got %q", typ, name, got)
		}
	}
}

func TestUnknownHasher(t *testing.T) {
	if h, err := New(666, 0); err != ErrUnknownHash {
		t.Fatalf("requested impossible hasher and got %v", h)
	}
	if d, err := NewDigest(666); err != ErrUnknownDigest {
		t.Fatalf("requested impossible digest and got %v", d)
	}
	if _, err := Lookup("sha1"); !errors.Is(err, ErrUnknownHash) {
		t.Fatalf("want ErrUnknownHash, got %v", err)
	}
	if _, err := LookupDigest("crc32"); !errors.Is(err, ErrUnknownDigest) {
		t.Fatalf("want ErrUnknownDigest, got %v", err)
	}
}

func benchmarkHasher(b *testing.B, t int) {
	h, _ := New(t, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Hash64(xxx)
	}
}

func BenchmarkMurmur3(b *testing.B)    { benchmarkHasher(b, Murmur3) }
func BenchmarkMurmur3x64(b *testing.B) { benchmarkHasher(b, Murmur3x64) }
func BenchmarkMetro(b *testing.B)      { benchmarkHasher(b, Metro) }
func BenchmarkHighway(b *testing.B)    { benchmarkHasher(b, Highway) }
func BenchmarkXXHash(b *testing.B)     { benchmarkHasher(b, XXHash) }
func BenchmarkXXH3(b *testing.B)       { benchmarkHasher(b, XXH3) }

func BenchmarkMD5(b *testing.B) {
	d, _ := NewDigest(MD5)
	for i := 0; i < b.N; i++ {
		d.Sum(xxx)
	}
}
