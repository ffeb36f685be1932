// Package smartrf loads RF1A register records from the text formats
// radio configurations are exchanged in.
//
// # SmartRF Studio Headers
//
// SmartRF Studio exports one C preprocessor definition per register:
//
//	/* Base frequency = 901.999969 */
//	#define PA_TABLE {0xc0,0x00,0x00,0x00,0x00,0x00,0x00,0x00}
//	#define SMARTRF_SETTING_IOCFG2     0x2E
//	#define SMARTRF_SETTING_CHANNR     0x0A
//
// Only lines with a SMARTRF_SETTING_ token are read. Settings are applied
// on top of a baseline record (the power-up values unless
// [Options.Baseline] says otherwise), so a header that mentions a handful
// of registers still yields a complete record. Names are matched
// case-insensitively and the historical spellings IOCFG0D and WORCTL are
// accepted.
//
// Values are C integer literals (0x hex, leading-0 octal, decimal). A
// setting is the marker token followed by exactly one value token, so
// "SMARTRF_SETTING_CHANNR = 0x05" is rejected as malformed.
//
// The PA_TABLE line is ignored unless [Options.PATable] is set.
//
// # Register Profiles
//
// A YAML profile names a baseline and overrides registers by name:
//
//	source: tinyos-ch5
//	baseline: tinyos
//	registers:
//	  channr: 0x05
//
// A file holding nothing but the 116 hex digits of a record is read as is.
//
// # Writing
//
// [WriteHeader], [WriteYAML] and [WriteHex] emit a record in each format.
// Every writer lists all fields, so output reads back to the same record.
package smartrf
