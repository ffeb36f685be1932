// Package rf1a models the register record of the CC430 RF1A radio core.
//
// A record is a fixed sequence of single-byte fields:
//
//	[0x00..0x2E]  47 burst registers (IOCFG2 .. TEST0)
//	[47..54]      PATABLE0 .. PATABLE7
//	[55..57]      PARTNUM, VERSION, padding
//
// The layout is exactly RecordLength bytes and serializes to HexLength
// upper-case hex characters with no separators:
//
//	cfg, err := rf1a.FromHexString(rf1a.PowerUpHex)
//	if err != nil {
//	    return err
//	}
//	_ = cfg.Set("channr", 0x05)
//	fmt.Println(cfg.Hex())
//
// Fields are addressed by their lower-case register mnemonic. Reserved
// registers carry a leading underscore (_rcctrl1, _rcctrl0, _padding).
// The hardware status registers (FREQEST, LQI, RSSI, MARCSTATE, WORTIME1,
// WORTIME0, PKTSTATUS, VCO_VC_DAC) only exist on a live device and have no
// slot in the record.
//
// # Comparing Records
//
// [Diff] yields the fields that differ between two records, in layout
// order:
//
//	for d := range rf1a.Diff(a, b) {
//	    fmt.Printf("%-15s: %02X %02X\n", strings.ToUpper(d.Name), d.A, d.B)
//	}
//
// # Radio Parameters
//
// [Config.Params] decodes frequency, channel spacing, data rate, filter
// bandwidth, deviation and packet settings from the modem registers, the
// same values SmartRF Studio prints in its exported headers.
package rf1a
