package smartrf

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mash-protocol/rf1a-go/pkg/log"
	"github.com/mash-protocol/rf1a-go/pkg/rf1a"
)

// Marker prefixes every register setting SmartRF Studio exports.
const Marker = "SMARTRF_SETTING_"

// aliases maps setting names that do not match the register mnemonic.
// Early SmartRF Studio versions wrote IOCFG0D; the TinyOS headers spell
// WORCTRL as WORCTL.
var aliases = map[string]string{
	"iocfg0d": "iocfg0",
	"worctl":  "worctrl",
}

// CanonicalName lower-cases a setting name (with or without Marker) and
// applies the alias table. It reports whether an alias was used.
func CanonicalName(name string) (string, bool) {
	name = strings.ToLower(strings.TrimPrefix(name, Marker))
	if canon, ok := aliases[name]; ok {
		return canon, true
	}
	return name, false
}

// paTableRegex matches the PA table definition SmartRF Studio writes.
var paTableRegex = regexp.MustCompile(`^\s*#\s*define\s+PA_TABLE\s*\{([^}]*)\}`)

// detectFormat examines the data to determine its format.
func detectFormat(data []byte) Format {
	if len(bytes.TrimSpace(data)) == 0 {
		return FormatHeader // Empty yields the baseline
	}
	if bytes.Contains(data, []byte(Marker)) {
		return FormatHeader
	}

	var digits int
	hexOnly := true
	for _, line := range bytes.Split(data, []byte("\n")) {
		trimmed := bytes.TrimSpace(line)

		// Skip empty lines and comments
		if len(trimmed) == 0 || trimmed[0] == '#' {
			continue
		}

		// YAML indicators: known top-level keys or "key: value"
		if bytes.HasPrefix(trimmed, []byte("registers:")) ||
			bytes.HasPrefix(trimmed, []byte("baseline:")) ||
			bytes.HasPrefix(trimmed, []byte("source:")) {
			return FormatYAML
		}

		for _, c := range trimmed {
			switch {
			case isHexDigit(c):
				digits++
			case c == ' ' || c == '\t' || c == '\r':
			default:
				hexOnly = false
			}
		}
	}

	if hexOnly && digits == rf1a.HexLength {
		return FormatHex
	}

	// Lines without the marker are inert, so anything else is a header
	// that sets nothing.
	return FormatHeader
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// formatFromPath guesses the format from a file extension.
func formatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".hex":
		return FormatHex
	case ".h":
		return FormatHeader
	default:
		return FormatAuto
	}
}

// Parser parses register configuration sources.
type Parser struct {
	Options Options
}

// NewParser creates a new Parser with the given options.
func NewParser(opts Options) *Parser {
	return &Parser{Options: opts}
}

// ParseFile parses a configuration source from the filesystem. When the
// format is FormatAuto the file extension is consulted before the content.
func (p *Parser) ParseFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	opts := p.Options
	if opts.Format == FormatAuto {
		opts.Format = formatFromPath(path)
	}
	prof, err := parse(data, path, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	prof.SourceFile = path
	return prof, nil
}

// Parse parses a configuration source from a reader.
func (p *Parser) Parse(r io.Reader) (*Profile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	return p.ParseBytes(data)
}

// ParseBytes parses a configuration source held in memory.
func (p *Parser) ParseBytes(data []byte) (*Profile, error) {
	return parse(data, "-", p.Options)
}

// ParseString parses a configuration source from a string.
func (p *Parser) ParseString(s string) (*Profile, error) {
	return p.ParseBytes([]byte(s))
}

func parse(data []byte, source string, opts Options) (*Profile, error) {
	format := opts.Format
	if format == FormatAuto {
		format = detectFormat(data)
	}

	st := &state{
		source: source,
		opts:   opts,
		logger: log.OrNoop(opts.Logger),
	}

	var err error
	switch format {
	case FormatYAML:
		err = st.parseYAML(data)
	case FormatHex:
		err = st.parseHex(data)
	case FormatHeader:
		err = st.parseHeader(data)
	default:
		err = fmt.Errorf("unsupported format %s", format)
	}
	if err != nil {
		return nil, err
	}
	st.profile.Format = format
	return &st.profile, nil
}

// state carries one parse in progress.
type state struct {
	source  string
	opts    Options
	logger  log.Logger
	profile Profile
}

func (st *state) seed(named string) error {
	switch {
	case st.opts.Baseline != nil:
		st.profile.Config = *st.opts.Baseline
	case named != "":
		cfg, err := rf1a.Baseline(named)
		if err != nil {
			return err
		}
		st.profile.Config = cfg
		st.profile.Baseline = strings.ToLower(named)
	default:
		st.profile.Config = rf1a.PowerUp()
		st.profile.Baseline = "powerup"
	}
	return nil
}

func (st *state) emit(e log.Event) {
	e.Time = time.Now()
	e.Source = st.source
	st.logger.Log(e)
}

// assign applies one named setting, resolving aliases.
func (st *state) assign(raw string, value int, line int) error {
	name, aliased := CanonicalName(raw)
	if aliased {
		st.emit(log.Event{Line: line, Kind: log.KindAlias, Field: name, Detail: strings.ToLower(strings.TrimPrefix(raw, Marker))})
	}
	if err := st.profile.Config.Set(name, value); err != nil {
		return err
	}
	st.profile.Assigned = append(st.profile.Assigned, Assignment{Field: name, Value: uint8(value), Line: line, Raw: raw})
	st.emit(log.Event{Line: line, Kind: log.KindAssign, Field: name, Value: uint8(value)})
	return nil
}

// malformed fails, or in lenient mode records a skip.
func (st *state) malformed(perr *ParseError) error {
	if !st.opts.Lenient {
		return perr
	}
	reason := perr.Reason
	if perr.Err != nil {
		reason += ": " + perr.Err.Error()
	}
	st.emit(log.Event{Line: perr.Line, Kind: log.KindSkip, Detail: reason})
	return nil
}

// parseHeader parses a SmartRF Studio header.
func (st *state) parseHeader(data []byte) error {
	if err := st.seed(""); err != nil {
		return err
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNum := 0
	inComment := false

	for scanner.Scan() {
		lineNum++
		raw := scanner.Text()

		var line string
		line, inComment = stripComments(raw, inComment)

		if st.opts.PATable {
			if m := paTableRegex.FindStringSubmatch(line); m != nil {
				if err := st.applyPATable(m[1], lineNum, raw); err != nil {
					return err
				}
				continue
			}
		}

		if err := st.parseSettingLine(line, lineNum, raw); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read data: %w", err)
	}
	return nil
}

// parseSettingLine handles one comment-free header line. A setting is
// exactly "<MARKER><NAME> <VALUE>"; "NAME = VALUE" has three tokens and
// is malformed.
func (st *state) parseSettingLine(line string, lineNum int, raw string) error {
	tokens := strings.Fields(line)
	start := -1
	for i, tok := range tokens {
		if strings.HasPrefix(tok, Marker) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil // Not a setting
	}

	// Anything before the marker (normally "#define") is ignored.
	sig := tokens[start:]
	if len(sig) != 2 {
		return st.malformed(&ParseError{
			Line:   lineNum,
			Text:   strings.TrimSpace(raw),
			Reason: fmt.Sprintf("expected name and value, got %d tokens", len(sig)),
		})
	}
	if sig[0] == Marker {
		return st.malformed(&ParseError{Line: lineNum, Text: strings.TrimSpace(raw), Reason: "empty setting name"})
	}

	value, err := parseInt(sig[1])
	if err != nil {
		return st.malformed(&ParseError{Line: lineNum, Text: strings.TrimSpace(raw), Reason: "invalid value", Err: err})
	}

	if err := st.assign(sig[0], value, lineNum); err != nil {
		return rejected(lineNum, raw, err)
	}
	return nil
}

// rejected wraps a well-formed setting the record refused. Lenient mode
// never hides these.
func rejected(lineNum int, raw string, err error) error {
	return &ParseError{Line: lineNum, Text: strings.TrimSpace(raw), Reason: "rejected setting", Err: err}
}

// applyPATable writes the entries of a PA_TABLE initializer.
func (st *state) applyPATable(list string, lineNum int, raw string) error {
	var entries []string
	for _, part := range strings.Split(list, ",") {
		if part = strings.TrimSpace(part); part != "" {
			entries = append(entries, part)
		}
	}
	if len(entries) > rf1a.PATableLength {
		return st.malformed(&ParseError{
			Line:   lineNum,
			Text:   strings.TrimSpace(raw),
			Reason: fmt.Sprintf("PA table has %d entries, max %d", len(entries), rf1a.PATableLength),
		})
	}

	for i, entry := range entries {
		value, err := parseInt(entry)
		if err != nil {
			return st.malformed(&ParseError{Line: lineNum, Text: strings.TrimSpace(raw), Reason: "invalid PA table entry", Err: err})
		}
		field := fmt.Sprintf("patable%d", i)
		if err := st.profile.Config.Set(field, value); err != nil {
			return rejected(lineNum, raw, err)
		}
		st.profile.Assigned = append(st.profile.Assigned, Assignment{Field: field, Value: uint8(value), Line: lineNum, Raw: "PA_TABLE"})
		st.emit(log.Event{Line: lineNum, Kind: log.KindPATable, Field: field, Value: uint8(value)})
	}
	return nil
}

// parseInt parses a C integer literal: 0x hex, leading-0 octal, decimal.
// Go-only forms (0b, 0o, digit separators) are rejected.
func parseInt(s string) (int, error) {
	digits := strings.TrimLeft(s, "+-")
	if strings.ContainsRune(digits, '_') || hasPrefixFold(digits, "0b") || hasPrefixFold(digits, "0o") {
		return 0, fmt.Errorf("%q is not a C integer literal", s)
	}
	v, err := strconv.ParseInt(s, 0, strconv.IntSize)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// stripComments removes C comments from a line. inComment reports whether
// the line starts inside a block comment; the returned flag reports
// whether the next line does.
func stripComments(line string, inComment bool) (string, bool) {
	var sb strings.Builder
	for len(line) > 0 {
		if inComment {
			end := strings.Index(line, "*/")
			if end < 0 {
				return sb.String(), true
			}
			line = line[end+2:]
			inComment = false
			sb.WriteByte(' ')
			continue
		}

		block := strings.Index(line, "/*")
		lineC := strings.Index(line, "//")
		switch {
		case lineC >= 0 && (block < 0 || lineC < block):
			sb.WriteString(line[:lineC])
			return sb.String(), false
		case block >= 0:
			sb.WriteString(line[:block])
			line = line[block+2:]
			inComment = true
		default:
			sb.WriteString(line)
			line = ""
		}
	}
	return sb.String(), inComment
}

// parseHex parses a bare canonical hex record.
func (st *state) parseHex(data []byte) error {
	var sb strings.Builder
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		for _, f := range strings.Fields(trimmed) {
			sb.WriteString(f)
		}
	}

	cfg, err := rf1a.FromHexString(sb.String())
	if err != nil {
		return err
	}
	st.profile.Config = cfg
	return nil
}

// ParseFile is a convenience function to parse a file with default options.
func ParseFile(path string) (*Profile, error) {
	return NewParser(Options{}).ParseFile(path)
}

// ParseString is a convenience function to parse a string with default options.
func ParseString(s string) (*Profile, error) {
	return NewParser(Options{}).ParseString(s)
}

// ParseBytes is a convenience function to parse bytes with default options.
func ParseBytes(data []byte) (*Profile, error) {
	return NewParser(Options{}).ParseBytes(data)
}

// ParseBytesWithOptions parses bytes with the given options.
func ParseBytesWithOptions(data []byte, opts Options) (*Profile, error) {
	return NewParser(opts).ParseBytes(data)
}
