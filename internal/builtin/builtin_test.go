package builtin

import (
	"testing"

	"github.com/sboxscope/sboxscope/pkg/types"
)

func TestAES_KnownEntries(t *testing.T) {
	s := AES()

	// FIPS-197 figure 7
	known := map[int]byte{
		0x00: 0x63,
		0x01: 0x7C,
		0x10: 0xCA,
		0x53: 0xED,
		0x9A: 0xB8,
		0xFF: 0x16,
	}
	for x, want := range known {
		if s[x] != want {
			t.Errorf("S[%#02x]: expected %#02x, got %#02x", x, want, s[x])
		}
	}
}

func TestInverseAES(t *testing.T) {
	fwd := AES()
	inv := InverseAES()

	for x := 0; x < types.Size; x++ {
		if inv[fwd[x]] != byte(x) {
			t.Fatalf("Expected inverse to undo S at %#02x", x)
		}
	}
	if inv[0x63] != 0x00 {
		t.Errorf("Expected InvS[0x63]=0x00, got %#02x", inv[0x63])
	}
}

func TestGFInverse(t *testing.T) {
	if gfInverse(0) != 0 {
		t.Error("Expected 0 to map to 0")
	}
	for a := 1; a < types.Size; a++ {
		if gfMul(byte(a), gfInverse(byte(a))) != 1 {
			t.Fatalf("Expected a*a^-1 = 1 for a=%#02x", a)
		}
	}
	// 0x53 * 0xCA = 1 is the FIPS-197 worked example
	if gfInverse(0x53) != 0xCA {
		t.Errorf("Expected inverse of 0x53 to be 0xCA, got %#02x", gfInverse(0x53))
	}
}

func TestLookup(t *testing.T) {
	e, ok := Lookup(" AES ")
	if !ok {
		t.Fatal("Expected aes to be registered")
	}
	if e.Table()[0] != 0x63 {
		t.Errorf("Expected AES table, got S[0]=%#02x", e.Table()[0])
	}

	if _, ok := Lookup("serpent"); ok {
		t.Error("Expected unknown name to miss")
	}
}

func TestAll_Sorted(t *testing.T) {
	entries := All()
	if len(entries) != 4 {
		t.Fatalf("Expected 4 entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Name >= entries[i].Name {
			t.Errorf("Entries not sorted: %s before %s", entries[i-1].Name, entries[i].Name)
		}
	}
}
