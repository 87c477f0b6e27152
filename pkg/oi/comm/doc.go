// Package comm reads Open Interface responses off a serial channel.
package comm

// The robot answers a query with a fixed number of bytes and nothing else:
// there is no header, length or checksum. The only way to frame a response
// is to know in advance how many bytes it has and read exactly that many.
//
// Two things get in the way. The serial driver hands bytes over in chunks
// of arbitrary size and timing, and the robot firmware prints diagnostic
// text (banners) into the same stream, e.g. after a flash check or when
// it wakes up from sleep. Reader copes with both: it keeps polling until
// enough bytes arrived, strips banners from every chunk, and carries bytes
// beyond the current response over to the next read.
//
// A banner split across two chunks can't be recognized and will corrupt
// the read it lands in. There is no checksum to detect this.
