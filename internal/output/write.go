package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// Write renders the selected parts of variables in view. A single part in
// the text view is written as the bare value.
func Write(w io.Writer, view View, variables map[string]string, parts []string) error {
	parts, err := ResolveParts(parts)
	if err != nil {
		return err
	}
	selected := make(map[string]string, len(parts))
	for _, p := range parts {
		selected[p] = variables[p]
	}

	switch view {
	case ViewJSON:
		return WriteJSON(w, selected)
	case ViewYAML:
		return WriteYAML(w, selected)
	default:
		if len(parts) == 1 {
			return WriteVariable(w, selected, parts[0])
		}
		return WriteAll(w, selected)
	}
}

// WriteJSON writes all variables as pretty-printed JSON to the writer.
func WriteJSON(w io.Writer, variables map[string]string) error {
	data, err := json.MarshalIndent(variables, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling variables to JSON: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing JSON output: %w", err)
	}
	_, err = w.Write([]byte("\n"))
	return err
}

// WriteYAML writes all variables as a YAML mapping sorted by key.
func WriteYAML(w io.Writer, variables map[string]string) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(variables); err != nil {
		return fmt.Errorf("writing YAML output: %w", err)
	}
	return enc.Close()
}

// WriteVariable writes a single variable value to the writer.
func WriteVariable(w io.Writer, variables map[string]string, name string) error {
	val, ok := variables[name]
	if !ok {
		return fmt.Errorf("unknown variable %q", name)
	}
	_, err := fmt.Fprintln(w, val)
	return err
}

// WriteAll writes all variables as key=value pairs to the writer, sorted by key.
func WriteAll(w io.Writer, variables map[string]string) error {
	keys := make([]string, 0, len(variables))
	for k := range variables {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s=%s\n", k, variables[k]); err != nil {
			return err
		}
	}
	return nil
}
