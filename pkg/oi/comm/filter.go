package comm

import (
	"bytes"
	"strconv"

	"github.com/golang/glog"
)

// Banner describes diagnostic text the robot may print into the byte stream.
//
// A banner is Text, or when Numbered is set, Text followed by one or more
// decimal digits and Suffix. Terminator is the trailing bytes used to guess
// the position of a banner that doesn't match exactly.
type Banner struct {
	Name       string
	Text       string
	Numbered   bool
	Suffix     string
	Terminator string
}

// Known banners.
var (
	FlashBanner = Banner{
		Name:       "flash",
		Text:       "    Flash CRC successful 0x0 (0x0)\n\r",
		Terminator: "(0x0)\n\r",
	}
	WakeBanner = Banner{
		Name:       "wake",
		Text:       "Woke after ",
		Numbered:   true,
		Suffix:     " seconds\r\n",
		Terminator: "conds\r\n",
	}

	// Banners is the list FilterBanners removes.
	Banners = []Banner{FlashBanner, WakeBanner}
)

// partialBannerGuess is how many bytes before a terminator are assumed to
// belong to a banner that didn't match exactly.
const partialBannerGuess = 7

// Render returns the banner text, using n for numbered banners.
func (b Banner) Render(n int) []byte {
	if !b.Numbered {
		return []byte(b.Text)
	}
	var buf bytes.Buffer
	buf.WriteString(b.Text)
	buf.WriteString(strconv.Itoa(n))
	buf.WriteString(b.Suffix)
	return buf.Bytes()
}

// find locates the first exact occurrence of the banner.
func (b Banner) find(buf []byte) (start, end int) {
	text := []byte(b.Text)
	for offset := 0; offset < len(buf); {
		pos := bytes.Index(buf[offset:], text)
		if pos < 0 {
			break
		}
		start = offset + pos
		end = start + len(text)
		if !b.Numbered {
			return start, end
		}
		digits := end
		for digits < len(buf) && buf[digits] >= '0' && buf[digits] <= '9' {
			digits++
		}
		if digits > end && bytes.HasPrefix(buf[digits:], []byte(b.Suffix)) {
			return start, digits + len(b.Suffix)
		}
		offset = start + 1
	}
	return -1, -1
}

// FilterBanners removes the known banners from buf.
func FilterBanners(buf []byte) []byte {
	return StripBanners(buf, Banners)
}

// StripBanners returns buf without any exact occurrence of banners, one
// removal at a time until none is left. When nothing matches exactly but
// a terminator is present, the terminator and up to 7 bytes before it are
// removed instead. This is a guess: payload bytes that happen to contain a
// terminator are dropped. buf itself is not modified.
func StripBanners(buf []byte, banners []Banner) []byte {
	out := append([]byte{}, buf...)
	// every pass removes at least one byte
	for pass := 0; pass < len(buf); pass++ {
		start, end, name := firstExact(out, banners)
		if start >= 0 {
			glog.Infof("filtered %s banner: %q", name, out[start:end])
			out = append(out[:start], out[end:]...)
			continue
		}
		start, end, name = firstTerminator(out, banners)
		if start < 0 {
			break
		}
		if start -= partialBannerGuess; start < 0 {
			start = 0
		}
		glog.Warningf("filtered partial %s banner: %q", name, out[start:end])
		out = append(out[:start], out[end:]...)
	}
	return out
}

func firstExact(buf []byte, banners []Banner) (start, end int, name string) {
	start, end = -1, -1
	for _, b := range banners {
		if s, e := b.find(buf); s >= 0 && (start < 0 || s < start) {
			start, end, name = s, e, b.Name
		}
	}
	return
}

func firstTerminator(buf []byte, banners []Banner) (start, end int, name string) {
	start, end = -1, -1
	for _, b := range banners {
		if b.Terminator == "" {
			continue
		}
		if s := bytes.Index(buf, []byte(b.Terminator)); s >= 0 && (start < 0 || s < start) {
			start, end, name = s, s+len(b.Terminator), b.Name
		}
	}
	return
}
