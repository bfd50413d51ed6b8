package utils

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

/**
 * Render a command and its arguments from templates
 * @param {string} command - Command template, e.g. "{{.Binary}}"
 * @param {[]string} args - Argument templates, rendered one by one
 * @param {interface{}} data - Template data
 * @returns {(string, []string, error)} Rendered command and arguments
 * @description
 * - Each argument is rendered independently so an argument containing spaces stays one argument
 * - Surrounding whitespace of rendered arguments is trimmed
 * - Arguments rendering to an empty string are kept
 * @example
 * cmd, args, err := GetCommandLine("docker", []string{"compose", "-f", "{{.Manifest}}", "ps"}, data)
 */
func GetCommandLine(command string, args []string, data interface{}) (string, []string, error) {
	cmdTemplate, err := template.New("command").Option("missingkey=error").Parse(command)
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse command template: %w", err)
	}

	var cmdBuf bytes.Buffer
	if err := cmdTemplate.Execute(&cmdBuf, data); err != nil {
		return "", nil, fmt.Errorf("failed to execute command template: %w", err)
	}

	// 处理Args模板
	processedArgs := make([]string, 0, len(args))
	for _, arg := range args {
		if !strings.Contains(arg, "{{") {
			processedArgs = append(processedArgs, arg)
			continue
		}
		argTemplate, err := template.New("arg").Option("missingkey=error").Parse(arg)
		if err != nil {
			return "", nil, fmt.Errorf("failed to parse arg template '%s': %w", arg, err)
		}

		var argBuf bytes.Buffer
		if err := argTemplate.Execute(&argBuf, data); err != nil {
			return "", nil, fmt.Errorf("failed to execute arg template '%s': %w", arg, err)
		}

		processedArgs = append(processedArgs, strings.TrimSpace(argBuf.String()))
	}

	return strings.TrimSpace(cmdBuf.String()), processedArgs, nil
}
