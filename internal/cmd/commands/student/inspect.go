package student

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hashicorp-forge/canvas-mcp/internal/cmd/base"
	"github.com/hashicorp-forge/canvas-mcp/pkg/canvas"
)

// Kinds of records shown by inspect.
const (
	inspectMe          = "me"
	inspectCourses     = "courses"
	inspectAssignments = "assignments"
	inspectModules     = "modules"
	inspectGraphQL     = "test_graphql"
)

var inspectKinds = []string{inspectMe, inspectCourses, inspectAssignments, inspectModules, inspectGraphQL}

type InspectCommand struct {
	*base.Command

	config base.ConfigFlags

	flagID     string
	flagFormat string
	flagKeys   bool
}

func (c *InspectCommand) Synopsis() string {
	return "Show the raw records returned by Canvas"
}

func (c *InspectCommand) Help() string {
	return `Usage: canvas-mcp inspect [options] <kind>

  Show the raw records returned by the Canvas API, as they are received before
  normalization. Kind is one of:

    me             the current user
    courses        the active courses
    assignments    the assignments of the course given by -id
    modules        the modules of the course given by -id
    test_graphql   a minimal GraphQL query` + c.Flags().Help()
}

func (c *InspectCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("inspect", flag.ContinueOnError))
	c.config.Register(f)
	f.StringVar(
		&c.flagID, "id", "",
		"Course ID (required for assignments and modules)",
	)
	f.StringVar(
		&c.flagFormat, "format", "json",
		"Output format: json or yaml",
	)
	f.BoolVar(
		&c.flagKeys, "keys", false,
		"Only print the top-level keys of the (first) record",
	)
	return f
}

func (c *InspectCommand) Run(args []string) int {
	ui := c.UI

	f := c.Flags()
	if err := f.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	// Flags may also follow the kind.
	if f.NArg() > 0 {
		kind := f.Arg(0)
		if err := f.Parse(f.Args()[1:]); err != nil {
			ui.Error(fmt.Sprintf("error parsing flags: %v", err))
			return 1
		}
		args = append([]string{kind}, f.Args()...)
	} else {
		args = nil
	}

	if len(args) != 1 {
		ui.Error(fmt.Sprintf("exactly one kind is required: %s", strings.Join(inspectKinds, ", ")))
		return 1
	}
	kind := args[0]
	if c.flagFormat != "json" && c.flagFormat != "yaml" {
		ui.Error(fmt.Sprintf("unknown format %q: must be json or yaml", c.flagFormat))
		return 1
	}
	if (kind == inspectAssignments || kind == inspectModules) && c.flagID == "" {
		ui.Error(fmt.Sprintf("-id is required to inspect %s", kind))
		return 1
	}

	client, _, ok := setup(c.Command, &c.config)
	if !ok {
		return 1
	}

	value, err := c.fetch(context.Background(), client, kind)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	if c.flagKeys {
		ui.Output(strings.Join(topLevelKeys(value), "\n"))
		return 0
	}

	out, err := encode(value, c.flagFormat)
	if err != nil {
		ui.Error(fmt.Sprintf("error encoding %s: %v", kind, err))
		return 1
	}
	ui.Output(out)
	return 0
}

func (c *InspectCommand) fetch(ctx context.Context, client *canvas.Client, kind string) (any, error) {
	switch kind {
	case inspectMe:
		return client.GetSelf(ctx)
	case inspectCourses:
		return client.ListActiveCourses(ctx)
	case inspectAssignments:
		return client.ListAssignments(ctx, c.flagID, &canvas.ListAssignmentsOptions{
			Include: []string{"submission"},
		})
	case inspectModules:
		return client.ListModules(ctx, c.flagID, "items")
	case inspectGraphQL:
		if client.GraphQL == nil {
			return nil, fmt.Errorf("GraphQL client is not configured")
		}
		return client.GraphQL.Query(ctx, canvas.PingQuery, nil)
	default:
		return nil, fmt.Errorf("unknown kind %q: must be one of %s", kind, strings.Join(inspectKinds, ", "))
	}
}

// topLevelKeys returns the sorted keys of a record, or of the first record of
// a list.
func topLevelKeys(value any) []string {
	var record map[string]any
	switch v := value.(type) {
	case canvas.Record:
		record = v
	case map[string]any:
		record = v
	case []canvas.Record:
		if len(v) > 0 {
			record = v[0]
		}
	}

	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func encode(value any, format string) (string, error) {
	if format == "yaml" {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return "", err
		}
		if err := enc.Close(); err != nil {
			return "", err
		}
		return strings.TrimSuffix(buf.String(), "\n"), nil
	}

	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
