package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/willowkit/texture"
)

var groupsJSON bool

func init() {
	cmd := newGroupsCmd()
	cmd.Flags().BoolVar(&groupsJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(cmd)
}

func newGroupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "Print the texture groups",
		Long: `The groups command scans the texture directory and prints every group
under the current grouping options, with its textures by directory.

Example:
  texmgr groups --group-by type,maxsize
  texmgr groups --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.closeDB()

			items, err := texture.Collect(cmd.Context(), e.src)
			if err != nil {
				return err
			}
			p := texture.Build(items, e.opts)
			if groupsJSON {
				return printGroupsJSON(p)
			}
			printGroups(p)
			return nil
		},
	}
}

func printGroups(p *texture.Partition) {
	if p.Len() == 0 {
		fmt.Println("No textures found.")
		return
	}
	for _, g := range p.Groups() {
		fmt.Printf("%s (%d)\n", g.Key, g.Len())
		for _, d := range g.Directories() {
			fmt.Printf("  %s/\n", d.Dir)
			for _, path := range d.Paths {
				fmt.Printf("    %s\n", path)
			}
		}
	}
}

type groupJSON struct {
	Key   string   `json:"key"`
	Paths []string `json:"paths"`
}

func printGroupsJSON(p *texture.Partition) error {
	out := make([]groupJSON, 0, p.Len())
	for _, g := range p.Groups() {
		out = append(out, groupJSON{Key: g.Key.String(), Paths: g.Paths})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
