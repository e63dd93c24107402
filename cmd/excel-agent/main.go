// Command excel-agent is an interactive REPL around the formula engine:
// assign cells with "A1 = 10", then evaluate formulas like "=SUM(A1:B2)"
// against them.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/wewei/excel-agent/formula"
	"github.com/wewei/excel-agent/sheet"
)

const (
	historyFile = ".excel_agent_history"
	prompt      = "fx> "
)

const helpText = `Input:
  A1 = 10           assign a cell (numbers are parsed, anything else is text)
  =SUM(A1:B2)       evaluate a formula against the current cells
  hello             non-formula input echoes back unchanged

Commands:
  :cells            list non-empty cells
  :clear            remove all cells
  :load <file.csv>  replace the sheet with a CSV file
  :save <file.csv>  write the sheet to a CSV file
  :help             show this help
  :quit             exit
`

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [file.csv]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	s := sheet.New()
	if flag.NArg() > 0 {
		loaded, err := sheet.LoadCSV(flag.Arg(0))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		s = loaded
		fmt.Printf("loaded %d cells from %s\n", s.Len(), flag.Arg(0))
	}

	fmt.Println("excel-agent formula REPL. Ctrl+C cancels input, Ctrl+D exits. Type :help for help.")
	os.Exit(repl(s))
}

func repl(s *sheet.Sheet) int {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			fmt.Println()
			return 0
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		ln.AppendHistory(input)

		if strings.HasPrefix(input, ":") {
			if quit := command(s, input); quit {
				return 0
			}
			continue
		}

		if id, raw, ok := splitAssignment(input); ok {
			if err := s.Set(id, parseLiteral(raw)); err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			fmt.Printf("%s = %s\n", strings.ToUpper(id), formula.FormatValue(s.GetCellValue(id)))
			continue
		}

		fmt.Println(formula.FormatValue(formula.Evaluate(input, s)))
	}
}

// command handles ':'-prefixed REPL commands. returns true on :quit.
func command(s *sheet.Sheet, input string) bool {
	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Print(helpText)
	case ":cells":
		for _, id := range s.Cells() {
			fmt.Printf("%-6s %s\n", id, formula.FormatValue(s.GetCellValue(id)))
		}
	case ":clear":
		for _, id := range s.Cells() {
			_ = s.Remove(id)
		}
	case ":load":
		if arg == "" {
			fmt.Fprintln(os.Stderr, "usage: :load <file.csv>")
			break
		}
		loaded, err := sheet.LoadCSV(arg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			break
		}
		*s = *loaded
		fmt.Printf("loaded %d cells\n", s.Len())
	case ":save":
		if arg == "" {
			fmt.Fprintln(os.Stderr, "usage: :save <file.csv>")
			break
		}
		if err := sheet.SaveCSV(s, arg); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %s. Type :help for help.\n", name)
	}
	return false
}

// splitAssignment recognizes "A1 = value" lines: the left side of the
// first '=' must look like a cell ID. formulas ("=...") never match.
func splitAssignment(input string) (cellID, raw string, ok bool) {
	idx := strings.Index(input, "=")
	if idx <= 0 {
		return "", "", false
	}
	id := strings.TrimSpace(input[:idx])
	if _, _, err := formula.ParseCellID(id); err != nil {
		return "", "", false
	}
	return id, strings.TrimSpace(input[idx+1:]), true
}

// parseLiteral interprets assignment input: numbers become numbers,
// TRUE/FALSE become booleans, everything else stays text.
func parseLiteral(raw string) formula.Value {
	if raw == "" {
		return nil
	}
	if num, err := strconv.ParseFloat(raw, 64); err == nil {
		return num
	}
	switch strings.ToUpper(raw) {
	case "TRUE":
		return true
	case "FALSE":
		return false
	}
	return raw
}
