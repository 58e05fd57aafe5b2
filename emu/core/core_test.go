package core

import (
	"testing"

	"github.com/edvacsim/edvac/emu/console"
	"github.com/edvacsim/edvac/emu/memory"
	"github.com/edvacsim/edvac/emu/orders"
	"github.com/edvacsim/edvac/emu/wire"
	"github.com/edvacsim/edvac/emu/word"
)

func inst(mnemonic string, a1, a2, a3, a4 int) word.Word {
	kind, ok := orders.KindFromMnemonic(mnemonic)
	if !ok {
		panic("core_test: unknown mnemonic " + mnemonic)
	}
	return orders.Encode(orders.Order{Kind: kind, Addresses: [4]int{a1, a2, a3, a4}})
}

func TestExecuteAddOverflowHalts(t *testing.T) {
	c := New()
	c.LoadMemory([]memory.AddressedWord{
		{Address: 0, Word: inst("A", 1, 2, 3, 4)},
		{Address: 1, Word: word.MustFromInt64(int64(word.U43Max))},
		{Address: 2, Word: word.MustFromInt64(1)},
	})
	c.InitiatePressed()
	c.StepOnce()

	if c.Status.Running {
		t.Fatalf("add overflow with default ExcessCapacityAction (Halt) should halt")
	}
	if c.Status.ResumeAddr != 4 {
		t.Errorf("resume addr = %o, want 4", c.Status.ResumeAddr)
	}
}

func TestExecuteAddOverflowIgnore(t *testing.T) {
	c := New()
	c.State.ExcessCapacityActionAdd = console.Ignore
	c.LoadMemory([]memory.AddressedWord{
		{Address: 0, Word: inst("A", 1, 2, 3, 4)},
		{Address: 1, Word: word.MustFromInt64(int64(word.U43Max))},
		{Address: 2, Word: word.MustFromInt64(1)},
		{Address: 4, Word: inst("H", 0, 0, 0, 4)},
	})
	c.InitiatePressed()
	c.StepOnce()

	if c.State.InitialAddressRegister != 4 {
		t.Errorf("IAR after ignored overflow = %o, want 4", c.State.InitialAddressRegister)
	}
}

func TestExecuteCompareBranchesOnSign(t *testing.T) {
	c := New()
	c.LoadMemory([]memory.AddressedWord{
		{Address: 0, Word: inst("C", 1, 2, 3, 4)},
		{Address: 1, Word: word.MustFromInt64(5)},
		{Address: 2, Word: word.MustFromInt64(10)},
	})
	c.InitiatePressed()
	c.StepOnce()
	if c.State.InitialAddressRegister != 3 {
		t.Errorf("5 compared to 10: IAR = %o, want 3 (negative branch)", c.State.InitialAddressRegister)
	}
}

func TestExecuteSpecialOrderRestoresIARThenHaltsAtExecutedNext(t *testing.T) {
	c := New()
	c.LoadMemory([]memory.AddressedWord{
		{Address: 5, Word: word.MustFromInt64(1)},
		{Address: 6, Word: word.MustFromInt64(2)},
	})
	c.State.InitialAddressRegister = 100
	c.State.SpecialOrderSwitches = inst("A", 5, 6, 7, 42)

	c.ExecuteSpecialOrder()

	if c.State.InitialAddressRegister != 100 {
		t.Errorf("IAR after special order = %o, want 100 (restored)", c.State.InitialAddressRegister)
	}
	if c.Status.Running {
		t.Fatalf("special order execution should leave the machine halted")
	}
	if c.Status.ResumeAddr != 42 {
		t.Errorf("resume addr = %o, want 42 (the special order's own next address)", c.Status.ResumeAddr)
	}
}

func TestExecuteMulExactWritesBothWords(t *testing.T) {
	c := New()
	c.LoadMemory([]memory.AddressedWord{
		{Address: 0, Word: inst("m", 1, 2, 3, 4)},
		{Address: 1, Word: word.MustFromInt64(7)},
		{Address: 2, Word: word.MustFromInt64(-3)},
	})
	c.InitiatePressed()
	c.StepOnce()

	dump := c.DumpMemory()
	// 7*3 = 21 fits entirely in the low word, so the high word comes back
	// zero magnitude; IsNegative is always false for a zero-magnitude word
	// (the +0/-0 convention), so the stamped sign only shows on the bits.
	if dump[3].Bits()&1 == 0 {
		t.Errorf("high word of 7*-3 should have its sign bit set")
	}
	if dump[4].Int64() != -21 {
		t.Errorf("low word of 7*-3 = %d, want -21", dump[4].Int64())
	}
}

func TestExecuteWireRecordAndRead(t *testing.T) {
	c := New()
	// sub-order: forward, operation=1 (record mem->wire), spool=One(1)
	subOrder := 0o0101
	c.LoadMemory([]memory.AddressedWord{
		{Address: 0, Word: inst("W", 10, subOrder, 10, 99)},
		{Address: 10, Word: word.MustFromInt64(123)},
	})
	c.InitiatePressed()
	c.StepOnce()

	if c.State.InitialAddressRegister != 99 {
		t.Fatalf("IAR after single-word wire record = %o, want 99", c.State.InitialAddressRegister)
	}

	w := c.Wire(wire.One)
	w.Translate(wire.Backward, word.BitWidth)
	if got := w.ReadWord(); got.Int64() != 123 {
		t.Errorf("word recorded to wire = %d, want 123", got.Int64())
	}
}

// TestDecToBin replays the program from the worked decimal-to-binary
// conversion example: loading 0.1 in binary-coded decimal on wire spool
// Two and converting it to a binary fraction in high-speed memory.
func TestDecToBin(t *testing.T) {
	c := New()
	c.LoadMemory([]memory.AddressedWord{
		{Address: 0o0000, Word: inst("E", 0o1001, 0o0003, 0o1003, 0o1003)},
		{Address: 0o1003, Word: inst("W", 0o0001, 0o0202, 0o0000, 0o1002)},
		{Address: 0o1002, Word: inst("E", 0o1003, 0o0241, 0o1006, 0o1007)},
		{Address: 0o1007, Word: inst("E", 0o1003, 0o0003, 0o1055, 0o1006)},
		{Address: 0o1006, Word: inst("E", 0o0000, 0o0007, 0o1054, 0o1005)},
		{Address: 0o1005, Word: inst("E", 0o1006, 0o1243, 0o1050, 0o1011)},
		{Address: 0o1011, Word: inst("E", 0o1054, 0o0447, 0o1047, 0o1004)},
		{Address: 0o1004, Word: inst("M", 0o1016, 0o1047, 0o1052, 0o1013)},
		{Address: 0o1013, Word: inst("E", 0o1054, 0o0407, 0o1056, 0o1010)},
		{Address: 0o1010, Word: inst("A", 0o1052, 0o1056, 0o1047, 0o1012)},
		{Address: 0o1012, Word: inst("M", 0o1016, 0o1047, 0o1052, 0o1023)},
		{Address: 0o1023, Word: inst("E", 0o1054, 0o0347, 0o1056, 0o1017)},
		{Address: 0o1017, Word: inst("A", 0o1052, 0o1056, 0o1047, 0o1014)},
		{Address: 0o1014, Word: inst("M", 0o1016, 0o1047, 0o1052, 0o1033)},
		{Address: 0o1033, Word: inst("E", 0o1054, 0o0307, 0o1056, 0o1020)},
		{Address: 0o1020, Word: inst("A", 0o1052, 0o1056, 0o1047, 0o1015)},
		{Address: 0o1015, Word: inst("M", 0o1016, 0o1047, 0o1052, 0o1043)},
		{Address: 0o1043, Word: inst("E", 0o1054, 0o0247, 0o1056, 0o1021)},
		{Address: 0o1021, Word: inst("A", 0o1052, 0o1056, 0o1047, 0o1022)},
		{Address: 0o1022, Word: inst("M", 0o1016, 0o1047, 0o1052, 0o1053)},
		{Address: 0o1053, Word: inst("E", 0o1054, 0o0207, 0o1056, 0o1027)},
		{Address: 0o1027, Word: inst("A", 0o1052, 0o1056, 0o1047, 0o1024)},
		{Address: 0o1024, Word: inst("M", 0o1016, 0o1047, 0o1052, 0o1063)},
		{Address: 0o1063, Word: inst("E", 0o1054, 0o0147, 0o1056, 0o1030)},
		{Address: 0o1030, Word: inst("A", 0o1052, 0o1056, 0o1047, 0o1025)},
		{Address: 0o1025, Word: inst("M", 0o1016, 0o1047, 0o1052, 0o1073)},
		{Address: 0o1073, Word: inst("E", 0o1054, 0o0107, 0o1056, 0o1031)},
		{Address: 0o1031, Word: inst("A", 0o1052, 0o1056, 0o1047, 0o1032)},
		{Address: 0o1032, Word: inst("M", 0o1016, 0o1047, 0o1052, 0o1103)},
		{Address: 0o1103, Word: inst("E", 0o1054, 0o0047, 0o1056, 0o1041)},
		{Address: 0o1041, Word: inst("A", 0o1052, 0o1056, 0o1047, 0o1051)},
		{Address: 0o1051, Word: inst("M", 0o1026, 0o1047, 0o1052, 0o1113)},
		{Address: 0o1113, Word: inst("A", 0o1054, 0o1052, 0o1044, 0o1050)},
		{Address: 0o1050, Word: inst("d", 0o1044, 0o1035, 0o0000, 0o1045)},
		{Address: 0o1045, Word: inst("S", 0o1006, 0o1042, 0o1006, 0o1037)},
		{Address: 0o1037, Word: inst("C", 0o1006, 0o1042, 0o1055, 0o1006)},
		{Address: 0o1055, Word: inst("W", 0o0001, 0o0103, 0o0000, 0o1040)},
		{Address: 0o1040, Word: inst("C", 0o1001, 0o1042, 0o1034, 0o1036)},
		{Address: 0o1036, Word: inst("S", 0o1001, 0o1042, 0o1001, 0o1046)},
		{Address: 0o1046, Word: inst("E", 0o1042, 0o1133, 0o1003, 0o1003)},
		{Address: 0o1034, Word: inst("H", 0, 0, 0, 0)},
		// constants
		{Address: 0o1016, Word: word.FromBits(0o014_6314_6314_6315 << 1)}, // +1/10
		{Address: 0o1026, Word: word.FromBits(0o004_6314_6314_6315 << 1)}, // +3/80
		{Address: 0o1035, Word: word.FromBits(0o120_0000_0000_0000 << 1)}, // +5/8
		{Address: 0o1042, Word: word.FromBits(0o000_1000_0000_0000 << 1)}, // +2^-10
		{Address: 0o1001, Word: word.MustFromInt64(1 << 13)},
	})

	c.Wire(wire.Two).WriteWord(word.FromBits(0b0010_0010_0010_0010_0010_0010_0010_0010_0010_0010_0000))

	c.InitiatePressed()
	c.ContinueToCompletion()

	dump := c.DumpMemory()
	want := word.FromBits(0b00111000111000111000111000111000110010110000)
	if dump[1].Bits() != want.Bits() {
		t.Errorf("mem[0o0001] = %044b, want %044b", dump[1].Bits(), want.Bits())
	}
}
