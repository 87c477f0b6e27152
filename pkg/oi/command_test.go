package oi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCommand(t *testing.T) {
	testCases := []struct {
		name   string
		op     Opcode
		params []byte
		wire   []byte
		valid  bool
	}{
		{"start", Start, nil, []byte{128}, true},
		{"start with params", Start, []byte{1}, nil, false},
		{"drive", Drive, []byte{0x00, 0xc8, 0x80, 0x00}, []byte{137, 0x00, 0xc8, 0x80, 0x00}, true},
		{"drive short", Drive, []byte{0x00, 0xc8}, nil, false},
		{"sensors", Sensors, []byte{100}, []byte{142, 100}, true},
		{"query list", QueryList, []byte{2, 7, 34}, []byte{149, 2, 7, 34}, true},
		{"query list short", QueryList, []byte{3, 7, 34}, nil, false},
		{"query list no length", QueryList, nil, nil, false},
		{"song", Song, []byte{0, 2, 60, 32, 62, 32}, []byte{140, 0, 2, 60, 32, 62, 32}, true},
		{"song missing note", Song, []byte{0, 2, 60, 32}, nil, false},
		{"stream", Stream, []byte{1, 100}, []byte{148, 1, 100}, true},
		{"digits", DigitLEDASCII, []byte("ABCD"), []byte{164, 'A', 'B', 'C', 'D'}, true},
		{"unknown", Opcode(200), nil, nil, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := NewCommand(tc.op, tc.params...)
			if !tc.valid {
				var cmdErr *CommandError
				require.True(t, errors.As(err, &cmdErr), "%v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wire, cmd.Bytes())

			parsed, err := ParseCommand(tc.wire)
			require.NoError(t, err)
			require.Equal(t, tc.op, parsed.Op)
		})
	}
}

func TestParseCommandEmpty(t *testing.T) {
	_, err := ParseCommand(nil)
	require.EqualError(t, err, "invalid command: empty command")
}

func TestOpcodeNames(t *testing.T) {
	require.Equal(t, "DRIVE_DIRECT", DriveDirect.String())
	require.Equal(t, "OPCODE(200)", Opcode(200).String())
	for op := range opcodes {
		parsed, ok := ParseOpcode(op.String())
		require.True(t, ok)
		require.Equal(t, op, parsed)
	}
	_, ok := ParseOpcode("JUMP")
	require.False(t, ok)
}

func TestEnums(t *testing.T) {
	require.Equal(t, "safe", ModeSafe.String())
	m, ok := ParseMode("full")
	require.True(t, ok)
	require.Equal(t, ModeFull, m)
	require.Equal(t, "mode(9)", Mode(9).String())
	require.Equal(t, "trickle charging", TrickleCharging.String())

	code, ok := BaudCodeOf(115200)
	require.True(t, ok)
	require.Equal(t, Baud115200, code)
	require.Equal(t, 19200, Baud19200.Rate())
	_, ok = BaudCodeOf(1000)
	require.False(t, ok)
}

func TestParseNote(t *testing.T) {
	testCases := []struct {
		name string
		note Note
		ok   bool
	}{
		{"C4", C4, true},
		{"c4", C4, true},
		{"FS5", 78, true},
		{"F#5", 78, true},
		{"G1", MinNote, true},
		{"G9", MaxNote, true},
		{"REST", Rest, true},
		{"F1", 0, false},
		{"GS9", 0, false},
		{"H4", 0, false},
		{"C", 0, false},
		{"4", 0, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := ParseNote(tc.name)
			if !tc.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.note, n)
			require.True(t, n.Playable())
		})
	}
	require.Equal(t, "AS4", AS4.String())
	require.Equal(t, "G9", MaxNote.String())
	require.Equal(t, "REST", Rest.String())
	require.False(t, Note(30).Playable())
}
