package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/goliatone/go-logger/glog"

	forge "github.com/goliatone/go-forge"
	"github.com/goliatone/go-forge/export"
	"github.com/goliatone/go-forge/simulate"
	"github.com/goliatone/go-forge/validate"
)

var cli struct {
	Validate   ValidateCmd   `cmd:"" help:"Validate a graph file and print errors and warnings."`
	Export     ExportCmd     `cmd:"" help:"Compile a graph file to an export target."`
	Simulate   SimulateCmd   `cmd:"" help:"Dry-run a graph file and print the execution log."`
	Components ComponentsCmd `cmd:"" help:"List the component catalog."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("forge"),
		kong.Description("Build, validate, and dry-run AI agent graphs."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}

func loadGraph(path string) (*forge.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read graph file: %w", err)
	}
	g, err := forge.ParseGraph(data, nil)
	if err != nil {
		return nil, fmt.Errorf("parse graph file: %w", err)
	}
	return g, nil
}

type ValidateCmd struct {
	File string `arg:"" type:"existingfile" help:"Graph payload (YAML or JSON)."`
	JSON bool   `help:"Print the result as JSON."`
}

func (c *ValidateCmd) Run() error {
	g, err := loadGraph(c.File)
	if err != nil {
		return err
	}
	res := validate.Graph(g)

	if c.JSON {
		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	} else {
		for _, e := range res.Errors {
			fmt.Printf("error: %s\n", e)
		}
		for _, w := range res.Warnings {
			fmt.Printf("warning: %s\n", w)
		}
		fmt.Printf("%d node(s), %d connection(s): ", res.Stats.Nodes, res.Stats.Connections)
		if res.Valid {
			fmt.Println("valid")
		} else {
			fmt.Println("invalid")
		}
	}

	if !res.Valid {
		os.Exit(1)
	}
	return nil
}

type ExportCmd struct {
	File   string `arg:"" type:"existingfile" help:"Graph payload (YAML or JSON)."`
	Target string `default:"yaml" enum:"yaml,json,json_compact,n8n,mcp" help:"Export target."`
	Out    string `short:"o" help:"Write to a directory instead of stdout."`
}

func (c *ExportCmd) Run() error {
	g, err := loadGraph(c.File)
	if err != nil {
		return err
	}
	target, err := export.ParseTarget(c.Target)
	if err != nil {
		return err
	}

	if c.Out != "" {
		path, err := export.Save(g, target, c.Out)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	}

	out, err := export.Compile(g, target)
	if err != nil {
		return err
	}
	_, err = os.Stdout.WriteString(out)
	return err
}

type SimulateCmd struct {
	File    string        `arg:"" type:"existingfile" help:"Graph payload (YAML or JSON)."`
	Input   string        `help:"Test input passed to the simulated run."`
	Delay   time.Duration `default:"500ms" help:"Simulated agent execution delay."`
	JSON    bool          `help:"Print the report as JSON."`
	Verbose bool          `short:"v" help:"Stream the trace to stderr as it is produced."`
	Timeout time.Duration `default:"30s" help:"Abort the simulation after this long."`
}

func (c *SimulateCmd) Run() error {
	g, err := loadGraph(c.File)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	opts := []simulate.Option{simulate.WithAgentDelay(c.Delay)}
	if c.Verbose {
		opts = append(opts, simulate.WithLogger(glog.NewLogger(
			glog.WithWriter(os.Stderr),
			glog.WithLevel("debug"),
		)))
	}
	engine := simulate.New(opts...)
	report := engine.Run(ctx, g, c.Input)

	if c.JSON {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	} else {
		for _, entry := range report.Log {
			fmt.Printf("[%-7s] %s\n", entry.Level, entry.Message)
		}
		fmt.Printf("status: %s (%d entries, %d error(s), %d warning(s))\n",
			report.Summary.Status, report.Summary.Total,
			report.Summary.Errors, report.Summary.Warnings)
	}

	if !report.Success {
		os.Exit(1)
	}
	return nil
}

type ComponentsCmd struct {
	Category string `help:"Only list components in this category."`
	JSON     bool   `help:"Print the catalog as JSON."`
}

func (c *ComponentsCmd) Run() error {
	catalog := forge.DefaultCatalog()

	components := catalog.Components()
	if c.Category != "" {
		cat := forge.Category(c.Category)
		if !cat.Valid() {
			names := make([]string, 0, len(catalog.Categories()))
			for _, known := range catalog.Categories() {
				names = append(names, string(known))
			}
			sort.Strings(names)
			return fmt.Errorf("unknown category %q (known: %s)", c.Category, strings.Join(names, ", "))
		}
		components = catalog.ByCategory(cat)
	}

	if c.JSON {
		out, err := json.MarshalIndent(components, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	sort.SliceStable(components, func(i, j int) bool {
		if components[i].Category != components[j].Category {
			return components[i].Category < components[j].Category
		}
		return components[i].TypeID < components[j].TypeID
	})
	for _, comp := range components {
		fmt.Printf("%-16s %-20s %s\n", comp.Category, comp.TypeID, comp.Name)
	}
	return nil
}
