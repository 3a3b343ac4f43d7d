package memory

import "testing"

func TestUnmappedReadsZero(t *testing.T) {
	m := New()
	if got := m.ReadByte(0x12345678); got != 0 {
		t.Errorf("ReadByte of unmapped address = %#x, want 0", got)
	}
	w, err := m.ReadWord(0x12345678)
	if err != nil {
		t.Fatalf("ReadWord: unexpected error: %v", err)
	}
	if w != 0 {
		t.Errorf("ReadWord of unmapped address = %#x, want 0", w)
	}
}

func TestWordRoundTripLittleEndian(t *testing.T) {
	m := New()
	const addr = 0x00400000
	if err := m.WriteWord(addr, 0xAABBCCDD); err != nil {
		t.Fatalf("WriteWord: %v", err)
	}
	if got := m.ReadByte(addr); got != 0xDD {
		t.Errorf("byte 0 = %#x, want 0xDD", got)
	}
	if got := m.ReadByte(addr + 3); got != 0xAA {
		t.Errorf("byte 3 = %#x, want 0xAA", got)
	}
	got, err := m.ReadWord(addr)
	if err != nil {
		t.Fatalf("ReadWord: %v", err)
	}
	if got != 0xAABBCCDD {
		t.Errorf("ReadWord = %#x, want 0xAABBCCDD", got)
	}
}

func TestUnalignedWordAccessFails(t *testing.T) {
	m := New()
	if _, err := m.ReadWord(1); err == nil {
		t.Errorf("ReadWord at unaligned address: expected error, got nil")
	}
	if err := m.WriteWord(2, 0); err == nil {
		t.Errorf("WriteWord at unaligned address: expected error, got nil")
	}
}

func TestByteWritesComposeIntoWord(t *testing.T) {
	m := New()
	const base = 0x10010000
	m.WriteByte(base, 0x01)
	m.WriteByte(base+1, 0x02)
	m.WriteByte(base+2, 0x03)
	m.WriteByte(base+3, 0x04)
	got, err := m.ReadWord(base)
	if err != nil {
		t.Fatalf("ReadWord: %v", err)
	}
	if want := uint32(0x04030201); got != want {
		t.Errorf("ReadWord = %#x, want %#x", got, want)
	}
}

func TestPagesAcrossBoundary(t *testing.T) {
	m := New()
	if err := m.WriteWord(0x00400FFC, 42); err != nil {
		t.Fatalf("WriteWord: %v", err)
	}
	if err := m.WriteWord(0x00401000, 99); err != nil {
		t.Fatalf("WriteWord: %v", err)
	}
	a, _ := m.ReadWord(0x00400FFC)
	b, _ := m.ReadWord(0x00401000)
	if a != 42 || b != 99 {
		t.Errorf("cross-page words = %d, %d, want 42, 99", a, b)
	}
}
