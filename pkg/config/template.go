package config

import (
	"fmt"
	"strings"
)

// Format is a configuration file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FileName returns the project file name written for the format.
func (f Format) FileName() string {
	if f == FormatTOML {
		return "gosmap.toml"
	}
	return ".gosmap.yml"
}

// GenerateTemplate renders a commented default configuration.
func GenerateTemplate(format Format) ([]byte, error) {
	defaults := NewConfig()

	var body []byte
	var err error
	switch format {
	case FormatYAML, "":
		body, err = defaults.ToYAML()
	case FormatTOML:
		body, err = defaults.ToTOML()
	default:
		return nil, fmt.Errorf("unknown config format %q", format)
	}
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString("# gosmap configuration\n")
	sb.WriteString("#\n")
	sb.WriteString("# indent_unit      text of one indentation level\n")
	sb.WriteString("# line_only        one mapping per generated line\n")
	sb.WriteString("# sources_content  embed original sources in written maps\n")
	sb.WriteString("# pretty           indent written map JSON\n")
	sb.WriteString("# comment_style    auto, line or block\n")
	sb.WriteString("# cache            parsed map cache (enabled, dir)\n")
	sb.WriteString("# log_level        debug, info, warn or error\n\n")
	sb.Write(body)
	return []byte(sb.String()), nil
}
