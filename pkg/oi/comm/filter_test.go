package comm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func join(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestFilterBanners(t *testing.T) {
	flash := FlashBanner.Render(0)
	wake := WakeBanner.Render(3600)
	hello := []byte("Hello")

	testCases := []struct {
		name   string
		in     []byte
		expect []byte
	}{
		{"no banner", []byte{1, 2, 3, 0x0d, 0x0a}, []byte{1, 2, 3, 0x0d, 0x0a}},
		{"empty", nil, []byte{}},
		{"leading banners", join(flash, flash, flash, hello), hello},
		{"surrounding banners", join(flash, hello, flash, flash), hello},
		{"only banner", flash, []byte{}},
		{"wake banner", join([]byte{0x10}, wake, []byte{0x20}), []byte{0x10, 0x20}},
		{"mixed banners", join(wake, flash, hello, WakeBanner.Render(7)), hello},
		{"wake without digits", []byte("Woke after seconds\r\nX"), []byte("Woke aX")},
		{"partial flash", join([]byte{1, 2, 3}, []byte("1234567(0x0)\n\r"), []byte{4}), []byte{1, 2, 3, 4}},
		{"partial at start", join([]byte("567(0x0)\n\r"), hello), hello},
		{"payload looks like terminator", join([]byte{9, 8, 7, 6, 5, 4, 3, 2, 1}, []byte("conds\r\n")), []byte{9, 8}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := append([]byte(nil), tc.in...)
			require.Equal(t, tc.expect, FilterBanners(tc.in))
			require.Equal(t, in, tc.in, "input modified")
		})
	}
}

func TestBannerRender(t *testing.T) {
	require.Equal(t, "    Flash CRC successful 0x0 (0x0)\n\r", string(FlashBanner.Render(12)))
	require.Equal(t, "Woke after 12 seconds\r\n", string(WakeBanner.Render(12)))
}

func TestStripBannersCustom(t *testing.T) {
	banners := []Banner{{Name: "boot", Text: "BOOT\n", Terminator: "T\n"}}
	require.Equal(t, []byte("ab"), StripBanners([]byte("aBOOT\nBOOT\nb"), banners))
	require.Equal(t, []byte("abcde"), StripBanners([]byte("abcdefghijOOT\n"), banners))
}
