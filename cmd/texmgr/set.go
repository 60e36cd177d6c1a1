package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/willowkit/texture"
)

func init() {
	rootCmd.AddCommand(newSetCmd())
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <path> <field=value>...",
		Short: "Change the import settings of one texture",
		Long: `The set command changes import settings of a texture and reimports it.
Fields: ` + strings.Join(texture.FieldNames, ", ") + `.

Example:
  texmgr set ui/button.png type=sprite max_size=512 mipmaps=off`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.closeDB()

			ctx := cmd.Context()
			path := args[0]
			s, err := e.src.Settings(ctx, path)
			if err != nil {
				return err
			}
			s, err = applyAssignments(s, args[1:])
			if err != nil {
				return err
			}
			if err := s.Validate(); err != nil {
				return err
			}
			if err := e.src.WriteBack(ctx, path, s); err != nil {
				return err
			}
			fmt.Printf("%s: %s\n", path, texture.NewKey(s, texture.GroupAll))
			return nil
		},
	}
}

func applyAssignments(s texture.ImportSettings, kvs []string) (texture.ImportSettings, error) {
	for _, kv := range kvs {
		field, value, ok := strings.Cut(kv, "=")
		if !ok {
			return s, fmt.Errorf("expected field=value, got %q", kv)
		}
		if err := s.Set(field, value); err != nil {
			return s, err
		}
	}
	return s, nil
}
