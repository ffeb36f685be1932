package rf1a

import "fmt"

// Group identifies which part of the record a field belongs to.
type Group uint8

const (
	// GroupBurst fields map 1:1 onto the register block at address 0x00.
	GroupBurst Group = iota
	// GroupPATable fields hold the 8-entry PA power table.
	GroupPATable
	// GroupAux fields trail the record: identification and padding.
	GroupAux
)

// String returns the group name.
func (g Group) String() string {
	switch g {
	case GroupBurst:
		return "burst"
	case GroupPATable:
		return "patable"
	case GroupAux:
		return "aux"
	default:
		return fmt.Sprintf("unknown(%d)", g)
	}
}

// Access describes informational write restrictions of a register.
// Nothing in this package enforces them.
type Access uint8

// AccessNormal registers may be written freely.
const AccessNormal Access = 0

const (
	// AccessReserved registers must not be used (leading underscore in name).
	AccessReserved Access = 1 << iota
	// AccessNoWrite registers are production/test registers.
	AccessNoWrite
	// AccessStatus registers are read-only identification values.
	AccessStatus
)

// Has reports whether all bits of flag are set.
func (a Access) Has(flag Access) bool {
	return a&flag == flag && flag != 0
}

// NoAddress marks a field that does not correspond to a register.
const NoAddress = -1

// Field describes one single-byte slot of the register record.
type Field struct {
	// Name is the canonical lower-case field name.
	Name string

	// Address is the register address, or NoAddress.
	Address int

	// Group is the layout group.
	Group Group

	// Access holds informational write restrictions.
	Access Access

	// Description is the register mnemonic and a short summary.
	Description string
}

// Index bounds of the layout groups.
const (
	// BurstLength is the number of registers read by a burst read from 0x00 (through TEST0).
	BurstLength = 47

	// BurstWriteLength is the number of registers a burst write covers (through FSCAL0).
	BurstWriteLength = 39

	// PATableLength is the number of PA table entries.
	PATableLength = 8

	// AuxLength is the number of trailing fields.
	AuxLength = 3

	// RecordLength is the size of a serialized Config in bytes.
	RecordLength = BurstLength + PATableLength + AuxLength

	// HexLength is the length of the canonical hex encoding.
	HexLength = 2 * RecordLength
)

// PATableAddress is the register address of the PA table.
const PATableAddress = 0x3E

var burstFields = []Field{
	{Name: "iocfg2", Address: 0x00, Description: "IOCFG2 - GDO2 output pin configuration"},
	{Name: "iocfg1", Address: 0x01, Description: "IOCFG1 - GDO1 output pin configuration"},
	{Name: "iocfg0", Address: 0x02, Description: "IOCFG0 - GDO0 output pin configuration"},
	{Name: "fifothr", Address: 0x03, Description: "FIFOTHR - RX FIFO and TX FIFO thresholds"},
	{Name: "sync1", Address: 0x04, Description: "SYNC1 - Sync word, high byte"},
	{Name: "sync0", Address: 0x05, Description: "SYNC0 - Sync word, low byte"},
	{Name: "pktlen", Address: 0x06, Description: "PKTLEN - Packet length"},
	{Name: "pktctrl1", Address: 0x07, Description: "PKTCTRL1 - Packet automation control"},
	{Name: "pktctrl0", Address: 0x08, Description: "PKTCTRL0 - Packet automation control"},
	{Name: "addr", Address: 0x09, Description: "ADDR - Device address"},
	{Name: "channr", Address: 0x0A, Description: "CHANNR - Channel number"},
	{Name: "fsctrl1", Address: 0x0B, Description: "FSCTRL1 - Frequency synthesizer control"},
	{Name: "fsctrl0", Address: 0x0C, Description: "FSCTRL0 - Frequency synthesizer control"},
	{Name: "freq2", Address: 0x0D, Description: "FREQ2 - Frequency control word, high byte"},
	{Name: "freq1", Address: 0x0E, Description: "FREQ1 - Frequency control word, middle byte"},
	{Name: "freq0", Address: 0x0F, Description: "FREQ0 - Frequency control word, low byte"},
	{Name: "mdmcfg4", Address: 0x10, Description: "MDMCFG4 - Modem configuration"},
	{Name: "mdmcfg3", Address: 0x11, Description: "MDMCFG3 - Modem configuration"},
	{Name: "mdmcfg2", Address: 0x12, Description: "MDMCFG2 - Modem configuration"},
	{Name: "mdmcfg1", Address: 0x13, Description: "MDMCFG1 - Modem configuration"},
	{Name: "mdmcfg0", Address: 0x14, Description: "MDMCFG0 - Modem configuration"},
	{Name: "deviatn", Address: 0x15, Description: "DEVIATN - Modem deviation setting"},
	{Name: "mcsm2", Address: 0x16, Description: "MCSM2 - Main Radio Control State Machine configuration"},
	{Name: "mcsm1", Address: 0x17, Description: "MCSM1 - Main Radio Control State Machine configuration"},
	{Name: "mcsm0", Address: 0x18, Description: "MCSM0 - Main Radio Control State Machine configuration"},
	{Name: "foccfg", Address: 0x19, Description: "FOCCFG - Frequency Offset Compensation configuration"},
	{Name: "bscfg", Address: 0x1A, Description: "BSCFG - Bit Synchronization configuration"},
	{Name: "agcctrl2", Address: 0x1B, Description: "AGCCTRL2 - AGC control"},
	{Name: "agcctrl1", Address: 0x1C, Description: "AGCCTRL1 - AGC control"},
	{Name: "agcctrl0", Address: 0x1D, Description: "AGCCTRL0 - AGC control"},
	{Name: "worevt1", Address: 0x1E, Description: "WOREVT1 - High byte Event0 timeout"},
	{Name: "worevt0", Address: 0x1F, Description: "WOREVT0 - Low byte Event0 timeout"},
	{Name: "worctrl", Address: 0x20, Description: "WORCTRL - Wake On Radio control"},
	{Name: "frend1", Address: 0x21, Description: "FREND1 - Front end RX configuration"},
	{Name: "frend0", Address: 0x22, Description: "FREND0 - Front end TX configuration"},
	{Name: "fscal3", Address: 0x23, Description: "FSCAL3 - Frequency synthesizer calibration"},
	{Name: "fscal2", Address: 0x24, Description: "FSCAL2 - Frequency synthesizer calibration"},
	{Name: "fscal1", Address: 0x25, Description: "FSCAL1 - Frequency synthesizer calibration"},
	{Name: "fscal0", Address: 0x26, Description: "FSCAL0 - Frequency synthesizer calibration"},
	{Name: "_rcctrl1", Address: 0x27, Access: AccessReserved, Description: "RCCTRL1 - RC oscillator configuration"},
	{Name: "_rcctrl0", Address: 0x28, Access: AccessReserved, Description: "RCCTRL0 - RC oscillator configuration"},
	{Name: "fstest", Address: 0x29, Description: "FSTEST - Frequency synthesizer calibration control"},
	{Name: "ptest", Address: 0x2A, Access: AccessNoWrite, Description: "PTEST - Production test"},
	{Name: "agctest", Address: 0x2B, Access: AccessNoWrite, Description: "AGCTEST - AGC test"},
	{Name: "test2", Address: 0x2C, Description: "TEST2 - Various test settings"},
	{Name: "test1", Address: 0x2D, Description: "TEST1 - Various test settings"},
	{Name: "test0", Address: 0x2E, Description: "TEST0 - Various test settings"},
}

// The status registers FREQEST (0x32) through VCO_VC_DAC (0x39) are only
// ever filled by a live register read and have no slot in the record.
var auxFields = []Field{
	{Name: "partnum", Address: 0x30, Group: GroupAux, Access: AccessStatus, Description: "PARTNUM - Part number"},
	{Name: "version", Address: 0x31, Group: GroupAux, Access: AccessStatus, Description: "VERSION - Current version number"},
	{Name: "_padding", Address: NoAddress, Group: GroupAux, Access: AccessReserved, Description: "alignment padding"},
}

var (
	fieldTable = buildFieldTable()
	fieldIndex = buildFieldIndex(fieldTable)
)

func buildFieldTable() []Field {
	table := make([]Field, 0, RecordLength)
	table = append(table, burstFields...)
	for i := 0; i < PATableLength; i++ {
		table = append(table, Field{
			Name:        fmt.Sprintf("patable%d", i),
			Address:     PATableAddress,
			Group:       GroupPATable,
			Description: fmt.Sprintf("PATABLE[%d] - Output power level", i),
		})
	}
	table = append(table, auxFields...)
	if len(table) != RecordLength {
		panic(fmt.Sprintf("rf1a: field table has %d entries, want %d", len(table), RecordLength))
	}
	return table
}

func buildFieldIndex(table []Field) map[string]int {
	idx := make(map[string]int, len(table))
	for i, f := range table {
		if _, dup := idx[f.Name]; dup {
			panic("rf1a: duplicate field name " + f.Name)
		}
		idx[f.Name] = i
	}
	return idx
}

// Fields returns a copy of the field table in layout order.
func Fields() []Field {
	out := make([]Field, len(fieldTable))
	copy(out, fieldTable)
	return out
}

// FieldNames returns the field names in layout order.
func FieldNames() []string {
	names := make([]string, len(fieldTable))
	for i, f := range fieldTable {
		names[i] = f.Name
	}
	return names
}

// FieldIndex returns the layout position of the named field.
func FieldIndex(name string) (int, error) {
	i, ok := fieldIndex[name]
	if !ok {
		return 0, &UnknownFieldError{Name: name}
	}
	return i, nil
}

// FieldByName returns the descriptor of the named field.
func FieldByName(name string) (Field, error) {
	i, err := FieldIndex(name)
	if err != nil {
		return Field{}, err
	}
	return fieldTable[i], nil
}
