package rf1a

import "fmt"

// XOSC is the crystal frequency of the CC430 RF1A core in Hz.
const XOSC = 26_000_000

// Modulation is the MOD_FORMAT field of MDMCFG2.
type Modulation uint8

const (
	Modulation2FSK  Modulation = 0
	Modulation2GFSK Modulation = 1
	ModulationASK   Modulation = 3
	Modulation4FSK  Modulation = 4
	ModulationMSK   Modulation = 7
)

// String returns the modulation name as SmartRF Studio prints it.
func (m Modulation) String() string {
	switch m {
	case Modulation2FSK:
		return "2-FSK"
	case Modulation2GFSK:
		return "2-GFSK"
	case ModulationASK:
		return "ASK/OOK"
	case Modulation4FSK:
		return "4-FSK"
	case ModulationMSK:
		return "MSK"
	default:
		return fmt.Sprintf("reserved(%d)", uint8(m))
	}
}

// MarshalText encodes the modulation by name.
func (m Modulation) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// LengthConfig is the LENGTH_CONFIG field of PKTCTRL0.
type LengthConfig uint8

const (
	LengthFixed    LengthConfig = 0
	LengthVariable LengthConfig = 1
	LengthInfinite LengthConfig = 2
)

// String returns a short description of the packet length mode.
func (l LengthConfig) String() string {
	switch l {
	case LengthFixed:
		return "fixed"
	case LengthVariable:
		return "variable"
	case LengthInfinite:
		return "infinite"
	default:
		return "reserved"
	}
}

// MarshalText encodes the length mode by name.
func (l LengthConfig) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// syncModes indexes SYNC_MODE of MDMCFG2.
var syncModes = [8]string{
	"no preamble/sync",
	"15/16 sync word bits detected",
	"16/16 sync word bits detected",
	"30/32 sync word bits detected",
	"no preamble/sync, carrier-sense above threshold",
	"15/16 + carrier-sense above threshold",
	"16/16 + carrier-sense above threshold",
	"30/32 + carrier-sense above threshold",
}

// preambleBytes indexes NUM_PREAMBLE of MDMCFG1.
var preambleBytes = [8]int{2, 3, 4, 6, 8, 12, 16, 24}

// addressChecks indexes ADR_CHK of PKTCTRL1.
var addressChecks = [4]string{
	"no address check",
	"address check, no broadcast",
	"address check and 0 (0x00) broadcast",
	"address check and 0 (0x00) and 255 (0xFF) broadcast",
}

// Params are the radio characteristics a register record encodes.
// Frequencies and rates are in Hz and baud.
type Params struct {
	BaseFrequency    float64 `json:"base_frequency_hz" yaml:"base_frequency_hz"`
	CarrierFrequency float64 `json:"carrier_frequency_hz" yaml:"carrier_frequency_hz"`
	ChannelSpacing   float64 `json:"channel_spacing_hz" yaml:"channel_spacing_hz"`
	Channel          uint8   `json:"channel" yaml:"channel"`
	DataRate         float64 `json:"data_rate_baud" yaml:"data_rate_baud"`
	RXFilterBW       float64 `json:"rx_filter_bw_hz" yaml:"rx_filter_bw_hz"`
	Deviation        float64 `json:"deviation_hz" yaml:"deviation_hz"`

	Modulation   Modulation   `json:"modulation" yaml:"modulation"`
	Manchester   bool         `json:"manchester" yaml:"manchester"`
	SyncMode     string       `json:"sync_mode" yaml:"sync_mode"`
	Preamble     int          `json:"preamble_bytes" yaml:"preamble_bytes"`
	CRC          bool         `json:"crc" yaml:"crc"`
	LengthConfig LengthConfig `json:"length_config" yaml:"length_config"`
	PacketLength uint8        `json:"packet_length" yaml:"packet_length"`
	AddressCheck string       `json:"address_check" yaml:"address_check"`
	Address      uint8        `json:"address" yaml:"address"`
}

// Params decodes the radio characteristics of c for a crystal of xosc Hz.
// A non-positive xosc selects XOSC.
func (c Config) Params(xosc float64) Params {
	if xosc <= 0 {
		xosc = XOSC
	}
	reg := func(name string) uint8 {
		return c.data[fieldIndex[name]]
	}

	freq := uint32(reg("freq2"))<<16 | uint32(reg("freq1"))<<8 | uint32(reg("freq0"))
	mdmcfg4 := reg("mdmcfg4")
	mdmcfg2 := reg("mdmcfg2")
	mdmcfg1 := reg("mdmcfg1")
	deviatn := reg("deviatn")
	pktctrl0 := reg("pktctrl0")

	chanspcE := uint(mdmcfg1 & 0x03)
	chanspcM := float64(reg("mdmcfg0"))
	drateE := uint(mdmcfg4 & 0x0F)
	drateM := float64(reg("mdmcfg3"))
	chanbwE := uint(mdmcfg4>>6) & 0x03
	chanbwM := float64((mdmcfg4 >> 4) & 0x03)
	devE := uint(deviatn>>4) & 0x07
	devM := float64(deviatn & 0x07)

	p := Params{
		BaseFrequency:  xosc / (1 << 16) * float64(freq),
		ChannelSpacing: xosc / (1 << 18) * (256 + chanspcM) * float64(uint32(1)<<chanspcE),
		Channel:        reg("channr"),
		DataRate:       (256 + drateM) * float64(uint32(1)<<drateE) / (1 << 28) * xosc,
		RXFilterBW:     xosc / (8 * (4 + chanbwM) * float64(uint32(1)<<chanbwE)),
		Deviation:      xosc / (1 << 17) * (8 + devM) * float64(uint32(1)<<devE),
		Modulation:     Modulation((mdmcfg2 >> 4) & 0x07),
		Manchester:     mdmcfg2&0x08 != 0,
		SyncMode:       syncModes[mdmcfg2&0x07],
		Preamble:       preambleBytes[(mdmcfg1>>4)&0x07],
		CRC:            pktctrl0&0x04 != 0,
		LengthConfig:   LengthConfig(pktctrl0 & 0x03),
		PacketLength:   reg("pktlen"),
		AddressCheck:   addressChecks[reg("pktctrl1")&0x03],
		Address:        reg("addr"),
	}
	p.CarrierFrequency = p.BaseFrequency + float64(p.Channel)*p.ChannelSpacing
	return p
}
