package oi

import (
	"fmt"
	"strconv"
	"strings"
)

// Note is a MIDI note number used by SONG. The robot plays G1 (31) to
// G9 (127); Rest is silence.
type Note uint8

// Playable notes.
const (
	Rest    Note = 0
	MinNote Note = 31
	MaxNote Note = 127
)

// Named notes of the middle octaves.
const (
	C4 Note = 60 + iota
	CS4
	D4
	DS4
	E4
	F4
	FS4
	G4
	GS4
	A4
	AS4
	B4
	C5
)

var noteNames = [12]string{"C", "CS", "D", "DS", "E", "F", "FS", "G", "GS", "A", "AS", "B"}

// Playable reports whether the robot can play n.
func (n Note) Playable() bool {
	return n == Rest || (n >= MinNote && n <= MaxNote)
}

func (n Note) String() string {
	if n == Rest {
		return "REST"
	}
	return noteNames[n%12] + strconv.Itoa(int(n)/12-1)
}

// ParseNote parses a note name like "C4", "FS5", "F#5" or "REST".
func ParseNote(name string) (Note, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	switch name {
	case "REST", "PAUSE", "R":
		return Rest, nil
	}
	name = strings.Replace(name, "#", "S", 1)
	split := strings.IndexAny(name, "0123456789")
	if split <= 0 {
		return 0, fmt.Errorf("invalid note %q", name)
	}
	octave, err := strconv.Atoi(name[split:])
	if err != nil {
		return 0, fmt.Errorf("invalid note %q", name)
	}
	for semitone, prefix := range noteNames {
		if prefix != name[:split] {
			continue
		}
		v := 12*(octave+1) + semitone
		if v < int(MinNote) || v > int(MaxNote) {
			return 0, fmt.Errorf("note %q out of range", name)
		}
		return Note(v), nil
	}
	return 0, fmt.Errorf("invalid note %q", name)
}
