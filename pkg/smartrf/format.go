package smartrf

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mash-protocol/rf1a-go/pkg/rf1a"
)

// WriteHeader writes cfg as a SmartRF Studio style header: a comment block
// with the derived radio parameters, the PA table and one setting per
// field. Reading the output back yields cfg whatever the options.
func WriteHeader(w io.Writer, cfg rf1a.Config) error {
	bw := bufio.NewWriter(w)
	p := cfg.Params(0)

	fmt.Fprintf(bw, "/* Deviation = %f */\n", p.Deviation/1e3)
	fmt.Fprintf(bw, "/* Base frequency = %f */\n", p.BaseFrequency/1e6)
	fmt.Fprintf(bw, "/* Carrier frequency = %f */\n", p.CarrierFrequency/1e6)
	fmt.Fprintf(bw, "/* Channel number = %d */\n", p.Channel)
	fmt.Fprintf(bw, "/* Modulation format = %s */\n", p.Modulation)
	fmt.Fprintf(bw, "/* Manchester enable = %t */\n", p.Manchester)
	fmt.Fprintf(bw, "/* Sync word qualifier mode = %s */\n", p.SyncMode)
	fmt.Fprintf(bw, "/* Preamble count = %d */\n", p.Preamble)
	fmt.Fprintf(bw, "/* Channel spacing = %f */\n", p.ChannelSpacing/1e3)
	fmt.Fprintf(bw, "/* Data rate = %g */\n", p.DataRate/1e3)
	fmt.Fprintf(bw, "/* RX filter BW = %f */\n", p.RXFilterBW/1e3)
	fmt.Fprintf(bw, "/* Length config = %s */\n", p.LengthConfig)
	fmt.Fprintf(bw, "/* CRC enable = %t */\n", p.CRC)
	fmt.Fprintf(bw, "/* Packet length = %d */\n", p.PacketLength)
	fmt.Fprintf(bw, "/* Device address = %d */\n", p.Address)
	fmt.Fprintf(bw, "/* Address config = %s */\n", p.AddressCheck)

	pa := cfg.PATable()
	entries := make([]string, len(pa))
	for i, v := range pa {
		entries[i] = fmt.Sprintf("0x%02x", v)
	}
	fmt.Fprintf(bw, "\n/* PA table */\n#define PA_TABLE {%s}\n\n", strings.Join(entries, ","))

	for i, f := range rf1a.Fields() {
		fmt.Fprintf(bw, "#define %-30s 0x%02X\n", Marker+strings.ToUpper(f.Name), cfg.At(i))
	}
	return bw.Flush()
}

// WriteYAML writes cfg as a YAML register profile listing every field in
// record order. An empty label is omitted.
func WriteYAML(w io.Writer, label string, cfg rf1a.Config) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	if label != "" {
		doc.Content = append(doc.Content, scalar("source"), scalar(label))
	}

	regs := &yaml.Node{Kind: yaml.MappingNode}
	for i, f := range rf1a.Fields() {
		regs.Content = append(regs.Content,
			scalar(f.Name),
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprintf("0x%02X", cfg.At(i))},
		)
	}
	doc.Content = append(doc.Content, scalar("registers"), regs)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// WriteHex writes the canonical hex record followed by a newline.
func WriteHex(w io.Writer, cfg rf1a.Config) error {
	_, err := io.WriteString(w, cfg.Hex()+"\n")
	return err
}
