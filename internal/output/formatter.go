package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/termenv"
)

// Formatter is the interface for output formatting
type Formatter interface {
	Print(data any) error
	PrintList(items any, columns []Column) error
	PrintError(err error)
	PrintHint(msg string)
	PrintWarning(msg string)
	PrintSuccess(msg string)
}

// Column defines a column for table/list output
type Column struct {
	Name  string // Display name
	Key   string // Struct field name or map key
	Width int    // Width for rich mode (0 = auto)
}

// New creates a formatter for the specified mode writing to stdout/stderr
func New(mode string) Formatter {
	return NewWithWriters(mode, os.Stdout, os.Stderr)
}

// NewWithWriters creates a formatter for the specified mode
func NewWithWriters(mode string, out, errOut io.Writer) Formatter {
	switch mode {
	case "json":
		return &jsonFormatter{out: out, err: errOut}
	case "plain":
		return &plainFormatter{out: out, err: errOut}
	case "rich":
		profile := termenv.ColorProfile()
		return &richFormatter{out: out, err: errOut, profile: profile}
	default:
		return &plainFormatter{out: out, err: errOut}
	}
}

// jsonFormatter outputs JSON to stdout
type jsonFormatter struct {
	out, err io.Writer
}

func (f *jsonFormatter) Print(data any) error {
	enc := json.NewEncoder(f.out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (f *jsonFormatter) PrintList(items any, columns []Column) error {
	// Wrap in envelope with metadata
	v := reflect.ValueOf(items)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	count := 0
	if v.Kind() == reflect.Slice {
		count = v.Len()
	}

	envelope := map[string]any{
		"data":  items,
		"count": count,
	}

	return f.Print(envelope)
}

func (f *jsonFormatter) PrintError(err error) {
	f.printMessage("error", err.Error())
}

// Hints are skipped in JSON mode
func (f *jsonFormatter) PrintHint(msg string) {}

func (f *jsonFormatter) PrintWarning(msg string) {
	f.printMessage("warning", msg)
}

func (f *jsonFormatter) PrintSuccess(msg string) {
	f.printMessage("message", msg)
}

func (f *jsonFormatter) printMessage(key, msg string) {
	enc := json.NewEncoder(f.err)
	enc.SetIndent("", "  ")
	enc.Encode(map[string]string{key: msg})
}

// plainFormatter outputs tab-separated values
type plainFormatter struct {
	out, err io.Writer
}

func (f *plainFormatter) Print(data any) error {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() == reflect.Struct {
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			fmt.Fprintf(f.out, "%s\t%v\n", field.Name, v.Field(i).Interface())
		}
		return nil
	}

	// For non-struct types, just print the value
	fmt.Fprintf(f.out, "%v\n", data)
	return nil
}

func (f *plainFormatter) PrintList(items any, columns []Column) error {
	rows, err := extractRows(items, columns)
	if err != nil {
		return err
	}

	// Print header
	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Name
	}
	fmt.Fprintf(f.out, "%s\n", strings.Join(headers, "\t"))

	// Print rows
	for _, row := range rows {
		values := make([]string, len(columns))
		for j, col := range columns {
			values[j] = row[col.Key]
		}
		fmt.Fprintf(f.out, "%s\n", strings.Join(values, "\t"))
	}

	return nil
}

func (f *plainFormatter) PrintError(err error) {
	fmt.Fprintf(f.err, "error: %v\n", err)
}

func (f *plainFormatter) PrintHint(msg string) {
	fmt.Fprintf(f.err, "hint: %v\n", msg)
}

func (f *plainFormatter) PrintWarning(msg string) {
	fmt.Fprintf(f.err, "warning: %v\n", msg)
}

func (f *plainFormatter) PrintSuccess(msg string) {
	fmt.Fprintf(f.err, "%v\n", msg)
}

// richFormatter outputs styled content for terminal
type richFormatter struct {
	out, err io.Writer
	profile  termenv.Profile
}

func (f *richFormatter) render(style lipgloss.Style, s string) string {
	if f.profile == termenv.Ascii {
		return s
	}
	return style.Render(s)
}

func (f *richFormatter) Print(data any) error {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() == reflect.Struct {
		keyStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
		valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15"))

		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			fmt.Fprintf(f.out, "%s: %s\n",
				f.render(keyStyle, field.Name),
				f.render(valueStyle, fmt.Sprintf("%v", v.Field(i).Interface())),
			)
		}
		return nil
	}

	// For non-struct types, just print the value
	fmt.Fprintf(f.out, "%v\n", data)
	return nil
}

func (f *richFormatter) PrintList(items any, columns []Column) error {
	rows, err := extractRows(items, columns)
	if err != nil {
		return err
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("33"))
	RenderTable(f.out, columns, rows, func(s string) string {
		return f.render(headerStyle, s)
	})
	return nil
}

func (f *richFormatter) PrintError(err error) {
	errorStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("9"))

	fmt.Fprintf(f.err, "%s\n", f.render(errorStyle, "error: "+err.Error()))
}

func (f *richFormatter) PrintHint(msg string) {
	hintStyle := lipgloss.NewStyle().
		Faint(true).
		Foreground(lipgloss.Color("8"))

	fmt.Fprintf(f.err, "%s\n", f.render(hintStyle, "hint: "+msg))
}

func (f *richFormatter) PrintWarning(msg string) {
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	fmt.Fprintf(f.err, "%s\n", f.render(warnStyle, "warning: "+msg))
}

func (f *richFormatter) PrintSuccess(msg string) {
	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	fmt.Fprintf(f.err, "%s\n", f.render(okStyle, msg))
}

// extractRows flattens a slice of structs or maps into column-keyed strings
func extractRows(items any, columns []Column) ([]map[string]string, error) {
	v := reflect.ValueOf(items)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Slice {
		return nil, fmt.Errorf("PrintList requires a slice")
	}

	rows := make([]map[string]string, v.Len())
	for i := 0; i < v.Len(); i++ {
		item := v.Index(i)
		if item.Kind() == reflect.Ptr {
			item = item.Elem()
		}

		row := make(map[string]string)
		for _, col := range columns {
			if item.Kind() == reflect.Map {
				mapVal := item.MapIndex(reflect.ValueOf(col.Key))
				if mapVal.IsValid() {
					row[col.Key] = fmt.Sprintf("%v", mapVal.Interface())
				}
			} else if item.Kind() == reflect.Struct {
				field := item.FieldByName(col.Key)
				if field.IsValid() {
					row[col.Key] = fmt.Sprintf("%v", field.Interface())
				}
			}
		}
		rows[i] = row
	}
	return rows, nil
}
