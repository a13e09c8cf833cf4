package linkframe

import "testing"

func TestCRC16Vectors(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want uint16
	}{
		{"A", []byte("A"), 0xB915},
		{"digits", []byte("123456789"), 0xE5CC},
		{"ACP", []byte("ACP"), 0x6C7F},
		{"empty", []byte{}, 0xFFFF},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CRC16(tc.in)
			if got != tc.want {
				t.Fatalf("CRC16(%q) = 0x%04X, want 0x%04X", tc.in, got, tc.want)
			}
		})
	}
}

func TestCRC16DetectsSingleBitFlip(t *testing.T) {
	orig := []byte{0x01, 0x10, 0x00, 0x00, 0x00, 0x05, 'H', 'E', 'L', 'L', 'O'}
	want := CRC16(orig)

	for i := range orig {
		for bit := 0; bit < 8; bit++ {
			flipped := append([]byte(nil), orig...)
			flipped[i] ^= 1 << bit
			if CRC16(flipped) == want {
				t.Fatalf("single-bit flip at byte %d bit %d went undetected", i, bit)
			}
		}
	}
}
