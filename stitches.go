package main

// bitDelta is the contribution of one flag bit to a record's delta.
type bitDelta struct {
	mask   byte
	dx, dy int
}

// recordBits maps each of the three record bytes to its flag deltas.
var recordBits = [recordSize][]bitDelta{
	{
		{0x01, 1, 0}, {0x02, -1, 0}, {0x04, 9, 0}, {0x08, -9, 0},
		{0x10, 0, -9}, {0x20, 0, 9}, {0x40, 0, -1}, {0x80, 0, 1},
	},
	{
		{0x01, 3, 0}, {0x02, -3, 0}, {0x04, 27, 0}, {0x08, -27, 0},
		{0x10, 0, -27}, {0x20, 0, 27}, {0x40, 0, -3}, {0x80, 0, 3},
	},
	{
		{0x04, 81, 0}, {0x08, -81, 0}, {0x10, 0, -81}, {0x20, 0, 81},
	},
}

func isEndRecord(b0, b1, b2 byte) bool {
	return b0 == 0x00 && b1 == 0x00 && b2 == 0xF3
}

// decodeRecord decodes one 3-byte record. Every bit pattern yields a command.
func decodeRecord(rec [recordSize]byte) StitchCommand {
	var cmd StitchCommand
	for i, bits := range recordBits {
		for _, b := range bits {
			if rec[i]&b.mask != 0 {
				cmd.DX += b.dx
				cmd.DY += b.dy
			}
		}
	}
	switch rec[2] & 0xC0 {
	case 0xC0:
		cmd.Type = StitchColorChange
	case 0x80:
		cmd.Type = StitchJump
	default:
		cmd.Type = StitchNormal
	}
	return cmd
}

// decodeStitches decodes the body that follows the header. Decoding stops at
// the end marker, which is emitted as a StitchEnd command, or when fewer than
// three bytes remain.
func decodeStitches(buf []byte) []StitchCommand {
	if len(buf) <= headerSize {
		return nil
	}
	body := buf[headerSize:]
	cmds := make([]StitchCommand, 0, len(body)/recordSize+1)
	for i := 0; i+recordSize <= len(body); i += recordSize {
		if isEndRecord(body[i], body[i+1], body[i+2]) {
			cmds = append(cmds, StitchCommand{Type: StitchEnd})
			break
		}
		cmds = append(cmds, decodeRecord([recordSize]byte{body[i], body[i+1], body[i+2]}))
	}
	return cmds
}
