package utils

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/iancoleman/orderedmap"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

/**
 * Convert a struct into an ordered map keyed by its json tags
 * @param {interface{}} v - Struct or pointer to struct
 * @returns {(*orderedmap.OrderedMap, error)} Fields in declaration order
 * @description
 * - Goes through encoding/json so json tags and omitempty are honoured
 * - orderedmap keeps the key order of the encoded object
 */
func StructToOrderedMap(v interface{}) (*orderedmap.OrderedMap, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	m := orderedmap.New()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, err
	}
	return m, nil
}

/**
 * Print rows as a table
 * @param {[]*orderedmap.OrderedMap} rows - Rows sharing the same keys
 * @description
 * - Header is taken from the keys of the first row
 * - Prints nothing but a notice when rows is empty
 */
func PrintFormat(rows []*orderedmap.OrderedMap) {
	if len(rows) == 0 {
		fmt.Println("No data")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(headerRow(rows[0]))
	for _, row := range rows {
		t.AppendRow(valueRow(rows[0].Keys(), row))
	}
	t.Render()
}

// RenderTable renders rows to a string, used where output is not stdout
func RenderTable(rows []*orderedmap.OrderedMap) string {
	if len(rows) == 0 {
		return ""
	}
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(headerRow(rows[0]))
	for _, row := range rows {
		t.AppendRow(valueRow(rows[0].Keys(), row))
	}
	return t.Render()
}

func headerRow(m *orderedmap.OrderedMap) table.Row {
	var header table.Row
	for _, k := range m.Keys() {
		header = append(header, k)
	}
	return header
}

func valueRow(keys []string, m *orderedmap.OrderedMap) table.Row {
	var row table.Row
	for _, k := range keys {
		v, _ := m.Get(k)
		row = append(row, v)
	}
	return row
}

// PrintYaml prints v as YAML
func PrintYaml(v interface{}) {
	data, err := yaml.Marshal(v)
	if err != nil {
		fmt.Printf("failed to marshal yaml: %v\n", err)
		return
	}
	fmt.Print(string(data))
}
