package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
)

func notEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("path is required")
	}
	return nil
}

// promptPaths 询问观测文件和导航文件路径
func promptPaths(in io.Reader, out io.Writer, interactive bool) (string, string, error) {
	var obsPath, navPath string
	if interactive {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Observation file").Value(&obsPath).Validate(notEmpty),
			huh.NewInput().Title("Navigation file").Value(&navPath).Validate(notEmpty),
		)).WithOutput(out)
		if err := form.Run(); err != nil {
			return "", "", err
		}
		return strings.TrimSpace(obsPath), strings.TrimSpace(navPath), nil
	}

	r := bufio.NewReader(in)
	var err error
	if obsPath, err = readPath(r, out, "Observation file: "); err != nil {
		return "", "", err
	}
	if navPath, err = readPath(r, out, "Navigation file: "); err != nil {
		return "", "", err
	}
	return obsPath, navPath, nil
}

func readPath(r *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	line = strings.TrimSpace(line)
	if err := notEmpty(line); err != nil {
		return "", fmt.Errorf("%s%w", label, err)
	}
	return line, nil
}
